package provisioning

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/imamik/valheimctl/internal/config"
	"github.com/imamik/valheimctl/internal/gameserver"
	"github.com/imamik/valheimctl/internal/logging"
	"github.com/imamik/valheimctl/internal/platform/cloudformation"
)

type fakeStacks struct {
	mu sync.Mutex

	existing  *cloudformation.Stack
	describe  error
	deploy    *cloudformation.DeployResult
	deployErr error
	deleteErr error
	events    []cloudformation.Event
	final     *cloudformation.Stack
	waitErr   error

	deployed *cloudformation.DeployInput
	deleted  string
	waited   bool
}

func (f *fakeStacks) Describe(_ context.Context, name string) (*cloudformation.Stack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.describe != nil {
		return nil, f.describe
	}
	if f.existing == nil {
		return nil, cloudformation.ErrStackNotFound
	}
	return f.existing, nil
}

func (f *fakeStacks) Deploy(_ context.Context, in cloudformation.DeployInput) (*cloudformation.DeployResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deployed = &in
	return f.deploy, f.deployErr
}

func (f *fakeStacks) Delete(_ context.Context, name string) (*cloudformation.DeployResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = name
	return &cloudformation.DeployResult{StackID: "stack-id", Since: time.Now()}, nil
}

func (f *fakeStacks) Wait(ctx context.Context, _ string, _ time.Time, onEvent func(cloudformation.Event)) (*cloudformation.Stack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waited = true
	if _, ok := ctx.Deadline(); !ok {
		panic("wait without deadline")
	}
	for _, e := range f.events {
		onEvent(e)
	}
	return f.final, f.waitErr
}

type fakeStager struct {
	url    string
	err    error
	bucket string
	body   []byte
}

func (f *fakeStager) StageTemplate(_ context.Context, bucket, _ string, body []byte) (string, error) {
	f.bucket = bucket
	f.body = body
	return f.url, f.err
}

type fakeResolver struct {
	network *gameserver.ExistingNetwork
	err     error
	calls   int
}

func (f *fakeResolver) LookupNetwork(_ context.Context, vpcID string) (*gameserver.ExistingNetwork, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	n := *f.network
	n.ID = vpcID
	return &n, nil
}

func testConfig() *config.Config {
	return &config.Config{Name: "valheim", Region: "eu-central-1"}
}

func testContext(cfg *config.Config, clients Clients) (*Context, *bytes.Buffer) {
	var buf bytes.Buffer
	observer := NewLogObserver(logging.New(logging.Options{Output: &buf, JSON: true, Verbose: true}))
	return NewContext(context.Background(), cfg, clients, observer), &buf
}
