package cache

import (
	"context"
	"time"

	"github.com/jeffreyroshan2006-crypto/Retail-BillFlow/internal/domain"
)

// DashboardCache holds the read-only dashboard rollup for a short TTL so a
// wall of dashboard refreshes does not hammer the store. Only committed data
// ever enters the cache.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*domain.DashboardStats, bool, error)
	Set(ctx context.Context, key string, value *domain.DashboardStats, ttl time.Duration) error
}

type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(_ context.Context, _ string) (*domain.DashboardStats, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(_ context.Context, _ string, _ *domain.DashboardStats, _ time.Duration) error {
	return nil
}
