package cache

import (
	"bytes"
	"context"
	"log"
	"net"
	"testing"
	"time"

	"github.com/26nm/careerpath/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unusedPort returns a local port with nothing listening on it.
func unusedPort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())
	return port
}

func TestRedis_BypassesWhenUnavailable(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: unusedPort(t), TTL: time.Minute}, logger)
	ctx := context.Background()

	assert.False(t, r.Available())
	assert.Contains(t, buf.String(), "[Cache] Redis unavailable, bypassing cache")

	var out map[string]string
	found, err := r.GetJSON(ctx, "analysis:report:abc", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, r.SetJSON(ctx, "analysis:report:abc", map[string]string{"a": "b"}, 0))
	assert.NoError(t, r.Close())

	_, err = r.DeleteByPattern(ctx, "analysis:*")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
}

func TestRedis_NilIsSafe(t *testing.T) {
	var r *Redis
	found, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, r.SetJSON(context.Background(), "k", 1, time.Second))
	assert.False(t, r.Available())
}
