package stripe

import (
	"context"
	"testing"

	"github.com/libertycherie/storefront-backend/pkg/config"
)

func TestNewClientRejectsMismatchedKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.StripeConfig{
		APIKey:        "sk_live_abc",
		WebhookSecret: "whsec_x",
		Env:           "test",
	}, nil)
	if err == nil {
		t.Fatalf("expected error for live key in test env")
	}
}

func TestNewClientRequiresSecrets(t *testing.T) {
	if _, err := NewClient(context.Background(), config.StripeConfig{}, nil); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient(context.Background(), config.StripeConfig{APIKey: "sk_test_abc"}, nil); err == nil {
		t.Fatalf("expected error for missing webhook secret")
	}
}

func TestNewClientAcceptsTestKey(t *testing.T) {
	c, err := NewClient(context.Background(), config.StripeConfig{
		APIKey:        "sk_test_abc",
		WebhookSecret: "whsec_x",
	}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Environment() != "test" {
		t.Fatalf("unexpected env %q", c.Environment())
	}
	if c.SigningSecret() != "whsec_x" {
		t.Fatalf("unexpected signing secret")
	}
}
