package economy

import (
	"time"

	"github.com/ManuelReschke/ShellEconomy/app/repository"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/cache"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/env"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/hours"
)

// NewServiceFromEnv creates a service with worker counts and the approved-hours
// cache configured from the environment. Set APPROVED_HOURS_CACHE_TTL=0s to
// disable snapshots.
func NewServiceFromEnv(repos *repository.Repositories) *Service {
	opts := []Option{
		WithWorkers(
			env.GetEnvInt("AGGREGATE_WORKERS", hours.DefaultWorkers),
			env.GetEnvInt("RECALC_WORKERS", 4),
		),
	}

	ttl, err := time.ParseDuration(env.GetEnv("APPROVED_HOURS_CACHE_TTL", cache.DefaultApprovedHoursTTL.String()))
	if err != nil {
		ttl = cache.DefaultApprovedHoursTTL
	}
	if ttl > 0 {
		opts = append(opts, WithHoursCache(cache.NewApprovedHoursCache(ttl)))
	}

	return NewService(repos, opts...)
}
