package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeref(t *testing.T) {
	t.Parallel()

	assert.True(t, Deref(nil, true))
	assert.False(t, Deref(Bool(false), true))
	assert.Equal(t, 0, Deref(Int(0), 1))
	assert.Equal(t, 1, Deref[int](nil, 1))
}
