package cache

import (
	"fmt"
	"time"

	"github.com/ManuelReschke/ShellEconomy/internal/pkg/hours"
)

const approvedHoursKeyPrefix = "economy:approved_hours:"

// DefaultApprovedHoursTTL bounds how stale a dashboard figure can get.
const DefaultApprovedHoursTTL = 5 * time.Minute

// ApprovedHoursCache stores per-user approved-hours breakdowns for reviewer
// dashboards. Rate config is never cached here.
type ApprovedHoursCache struct {
	ttl time.Duration
}

// NewApprovedHoursCache creates a cache with the given TTL (default on <= 0)
func NewApprovedHoursCache(ttl time.Duration) *ApprovedHoursCache {
	if ttl <= 0 {
		ttl = DefaultApprovedHoursTTL
	}
	return &ApprovedHoursCache{ttl: ttl}
}

// ApprovedHoursKey returns the cache key of a user's snapshot
func ApprovedHoursKey(userID uint) string {
	return fmt.Sprintf("%s%d", approvedHoursKeyPrefix, userID)
}

func (c *ApprovedHoursCache) Get(userID uint) (*hours.Result, bool) {
	var res hours.Result
	found, err := GetJSON(ApprovedHoursKey(userID), &res)
	if err != nil || !found {
		return nil, false
	}
	return &res, true
}

func (c *ApprovedHoursCache) Set(userID uint, res hours.Result) error {
	return SetJSON(ApprovedHoursKey(userID), res, c.ttl)
}

func (c *ApprovedHoursCache) Invalidate(userID uint) error {
	return Delete(ApprovedHoursKey(userID))
}
