package redis

import (
	"testing"

	"github.com/printforge/configurator-backend/pkg/config"
)

func TestOptionsFromConfig_RequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address set")
	}
}

func TestOptionsFromConfig_ParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6379/2", PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("expected db 2, got %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("expected pool size from config, got %d", opts.PoolSize)
	}
}

func TestSnapshotKey(t *testing.T) {
	c := &Client{}
	key := c.SnapshotKey("7b0b2f9c", 1700000000)
	if key != "cfg:catalog:product:7b0b2f9c:1700000000" {
		t.Fatalf("unexpected key %q", key)
	}
}
