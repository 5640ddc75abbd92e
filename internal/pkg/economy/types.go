package economy

import (
	"errors"
	"time"

	"github.com/ManuelReschke/ShellEconomy/internal/pkg/hours"
)

// ErrPersistence marks a base price that was computed but could not be stored.
var ErrPersistence = errors.New("persistence failure")

// HoursCache keeps approved-hours snapshots for dashboards.
type HoursCache interface {
	Get(userID uint) (*hours.Result, bool)
	Set(userID uint, res hours.Result) error
	Invalidate(userID uint) error
}

// Recalculation item statuses.
const (
	StatusUpdated   = "updated"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
)

// RecalcItem reports what happened to one fixed item during recalculation.
type RecalcItem struct {
	ItemID    uint   `json:"item_id"`
	OldPrice  int64  `json:"old_price"`
	BasePrice int64  `json:"base_price"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// RecalcReport summarizes one recalculation run. Failed items keep their
// previous price; rerunning converges them.
type RecalcReport struct {
	RunID          string        `json:"run_id"`
	DollarsPerHour float64       `json:"dollars_per_hour"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration_ns"`
	Updated        int           `json:"updated"`
	Unchanged      int           `json:"unchanged"`
	Failed         int           `json:"failed"`
	Items          []RecalcItem  `json:"items"`
}

// PriceQuote is the price one user sees for one item right now.
type PriceQuote struct {
	ItemID     uint      `json:"item_id"`
	UserID     uint      `json:"user_id"`
	BasePrice  int64     `json:"base_price"`
	Price      int64     `json:"price"`
	Randomized bool      `json:"randomized"`
	ValidUntil time.Time `json:"valid_until"`
}

// ApprovedHours is the dashboard view of a user's approved hours.
type ApprovedHours struct {
	UserID   uint         `json:"user_id"`
	Result   hours.Result `json:"result"`
	Degraded bool         `json:"degraded"`
	Cached   bool         `json:"cached"`
}
