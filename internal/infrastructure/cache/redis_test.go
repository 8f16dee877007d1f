package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedis_UnavailableIsNoop(t *testing.T) {
	ctx := context.Background()
	r := &Redis{logger: zap.NewNop(), ttl: time.Minute}

	var out map[string]string
	ok, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, 0))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.DeleteByPattern(ctx, "jobs:list:*"))
	n, err := r.Incr(ctx, "jobs:generation")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.GetInt(ctx, "jobs:generation")
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, r.Close())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	ok, err := r.GetJSON(context.Background(), "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, r.Ping(context.Background()))
}
