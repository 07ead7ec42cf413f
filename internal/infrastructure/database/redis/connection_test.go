package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/logger"
)

func TestNewConnection(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &config.Config{Redis: config.RedisConfig{Host: mr.Host(), Port: mr.Port(), PoolSize: 2}}
	client, err := NewConnection(cfg, logger.Discard())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Health(context.Background()))
	assert.Same(t, client.Redis, client.GetClient())

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}

func TestNewConnectionUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	cfg := &config.Config{Redis: config.RedisConfig{Host: host, Port: port}}
	_, err := NewConnection(cfg, logger.Discard())
	assert.ErrorContains(t, err, "failed to connect to Redis")
}
