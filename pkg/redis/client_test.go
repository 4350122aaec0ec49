package redis

import (
	"testing"

	"github.com/libertycherie/storefront-backend/pkg/config"
)

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.IdempotencyKey("stripe-webhook", "evt_1"); got != "lcc:idempotency:stripe-webhook:evt_1" {
		t.Fatalf("unexpected idempotency key %q", got)
	}
	if got := c.CartKey("tok-1"); got != "lcc:cart:tok-1" {
		t.Fatalf("unexpected cart key %q", got)
	}
}

func TestOptionsFromConfigRequiresURLOrAddr(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error when neither url nor addr set")
	}
}

func TestOptionsFromConfigParsesURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:pw@localhost:6380/2", PoolSize: 5})
	if err != nil {
		t.Fatalf("optionsFromConfig: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("expected pool size fallback, got %d", opts.PoolSize)
	}
}
