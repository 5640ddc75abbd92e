package hours

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/gofiber/fiber/v2/log"
)

// ErrApprovedHoursLookup marks a failed approved-hours lookup. The affected
// user's aggregate degrades to 0.
var ErrApprovedHoursLookup = errors.New("approved hours lookup failed")

// DefaultWorkers is used when a batch is started with a non-positive worker count.
const DefaultWorkers = 4

// ApprovedHoursSource supplies the per-project approved hours produced by the
// review subsystem. Projects missing from the returned map count as 0.
type ApprovedHoursSource interface {
	ApprovedHours(ctx context.Context, projectIDs []uint) (map[uint]float64, error)
}

// UserResult is the outcome for one user of a batch run.
type UserResult struct {
	UserID uint   `json:"user_id"`
	Result Result `json:"result"`
	Err    error  `json:"-"`
}

// Annotate pairs projects with their approved hours.
func Annotate(projects []models.Project, approved map[uint]float64) []UserProject {
	out := make([]UserProject, len(projects))
	for i, p := range projects {
		out[i] = UserProject{Project: p, ApprovedHours: approved[p.ID]}
	}
	return out
}

// AggregateForUser looks up approved hours for the given projects and returns
// the user's breakdown. A lookup failure yields a zero result together with an
// error wrapping ErrApprovedHoursLookup.
func AggregateForUser(ctx context.Context, source ApprovedHoursSource, projects []models.Project) (Result, error) {
	if len(projects) == 0 {
		return Result{Contributions: []Contribution{}}, nil
	}

	ids := make([]uint, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	approved, err := source.ApprovedHours(ctx, ids)
	if err != nil {
		return Result{Contributions: []Contribution{}}, fmt.Errorf("%w: %w", ErrApprovedHoursLookup, err)
	}
	return Breakdown(Annotate(projects, approved)), nil
}

// AggregateBatch computes approved hours for many users concurrently. One
// user's failure never blocks the others: every user in the input gets an
// entry, failed ones with a zero total and Err set.
func AggregateBatch(ctx context.Context, source ApprovedHoursSource, userProjects map[uint][]models.Project, workers int) map[uint]UserResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	userIDs := make([]uint, 0, len(userProjects))
	for id := range userProjects {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	results := make(map[uint]UserResult, len(userIDs))
	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan uint)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for userID := range jobs {
				res := UserResult{UserID: userID}
				if err := ctx.Err(); err != nil {
					res.Result = Result{Contributions: []Contribution{}}
					res.Err = fmt.Errorf("%w: %w", ErrApprovedHoursLookup, err)
				} else {
					res.Result, res.Err = AggregateForUser(ctx, source, userProjects[userID])
				}
				if res.Err != nil {
					log.Warnf("[Hours] approved hours for user %d defaulted to 0: %v", userID, res.Err)
				}

				mu.Lock()
				results[userID] = res
				mu.Unlock()
			}
		}()
	}

	for _, id := range userIDs {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return results
}
