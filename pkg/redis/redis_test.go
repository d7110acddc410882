package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("disabled skips checks", func(t *testing.T) {
		cfg := Config{LockTTL: "bogus"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("addr required", func(t *testing.T) {
		cfg := Config{Enabled: true}
		assert.ErrorContains(t, cfg.Validate(), "addr is required")
	})

	t.Run("invalid ttl", func(t *testing.T) {
		cfg := Config{Enabled: true, Addr: "localhost:6379", LockTTL: "bogus"}
		assert.ErrorContains(t, cfg.Validate(), "lock_ttl")
	})
}

func TestConfigTTL(t *testing.T) {
	assert.Equal(t, 30*time.Second, (&Config{}).TTL())
	assert.Equal(t, 30*time.Second, (&Config{LockTTL: "-1s"}).TTL())
	assert.Equal(t, time.Minute, (&Config{LockTTL: "1m"}).TTL())
}

func TestInitDisabled(t *testing.T) {
	assert.NoError(t, Init(Config{}))
	assert.Nil(t, Client())
	assert.NoError(t, Close())
}
