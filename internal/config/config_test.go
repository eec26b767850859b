package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefault(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}

func TestLoadFallsBackOnBadLoyaltyRate(t *testing.T) {
	t.Setenv("LOYALTY_EARN_RATE_CENTS", "-5")

	cfg := Load()
	if cfg.LoyaltyEarnRateCents != DefaultLoyaltyEarnRateCents {
		t.Fatalf("expected default loyalty rate, got %d", cfg.LoyaltyEarnRateCents)
	}
}
