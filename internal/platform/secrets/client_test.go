package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	out *secretsmanager.GetSecretValueOutput
	err error
	got string
}

func (f *fakeAPI) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.got = aws.ToString(in.SecretId)
	return f.out, f.err
}

const arn = "arn:aws:secretsmanager:eu-central-1:123456789012:secret:ValheimServerPassword-AbCdEf"

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		api     *fakeAPI
		want    string
		wantErr error
	}{
		{
			name: "string secret",
			api:  &fakeAPI{out: &secretsmanager.GetSecretValueOutput{SecretString: aws.String("hunter22")}},
			want: "hunter22",
		},
		{
			name:    "binary secret",
			api:     &fakeAPI{out: &secretsmanager.GetSecretValueOutput{SecretBinary: []byte{1, 2}}},
			wantErr: ErrNotAString,
		},
		{
			name:    "missing",
			api:     &fakeAPI{err: &types.ResourceNotFoundException{Message: aws.String("not found")}},
			wantErr: ErrSecretNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := New(tt.api).Value(context.Background(), arn)
			assert.Equal(t, arn, tt.api.got)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_OtherError(t *testing.T) {
	t.Parallel()

	_, err := New(&fakeAPI{err: errors.New("access denied")}).Value(context.Background(), arn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read secret "+arn)
	assert.NotErrorIs(t, err, ErrSecretNotFound)
}
