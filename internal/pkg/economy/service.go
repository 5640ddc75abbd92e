package economy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ManuelReschke/ShellEconomy/app/models"
	"github.com/ManuelReschke/ShellEconomy/app/repository"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/hours"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/metrics"
	"github.com/ManuelReschke/ShellEconomy/internal/pkg/pricing"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Service wires the pure hours and pricing engines to persistence.
type Service struct {
	projects  repository.ProjectRepository
	approvals repository.ApprovalRepository
	items     repository.ShopItemRepository
	settings  repository.SettingRepository

	hoursCache       HoursCache
	aggregateWorkers int
	recalcWorkers    int
	now              func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithHoursCache enables approved-hours snapshots.
func WithHoursCache(c HoursCache) Option {
	return func(s *Service) { s.hoursCache = c }
}

// WithWorkers sets the fan-out of batch aggregation and recalculation.
func WithWorkers(aggregate, recalc int) Option {
	return func(s *Service) {
		if aggregate > 0 {
			s.aggregateWorkers = aggregate
		}
		if recalc > 0 {
			s.recalcWorkers = recalc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an economy service from injected repositories.
func NewService(repos *repository.Repositories, opts ...Option) *Service {
	s := &Service{
		projects:         repos.Project,
		approvals:        repos.Approval,
		items:            repos.ShopItem,
		settings:         repos.Setting,
		aggregateWorkers: hours.DefaultWorkers,
		recalcWorkers:    4,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ApprovedHours returns a user's approved hours. Any lookup failure degrades
// the figure to 0; the error is returned alongside for logging.
func (s *Service) ApprovedHours(ctx context.Context, userID uint) (*ApprovedHours, error) {
	if userID == 0 {
		return nil, errors.New("user_id is required")
	}
	if s.hoursCache != nil {
		if res, ok := s.hoursCache.Get(userID); ok {
			return &ApprovedHours{UserID: userID, Result: *res, Cached: true}, nil
		}
	}

	out := &ApprovedHours{UserID: userID, Result: hours.Result{Contributions: []hours.Contribution{}}}

	projects, err := s.projects.GetByUserID(userID)
	if err != nil {
		metrics.ApprovedHoursLookups.WithLabelValues(metrics.OutcomeFailed).Inc()
		out.Degraded = true
		return out, fmt.Errorf("%w: loading projects: %w", hours.ErrApprovedHoursLookup, err)
	}

	res, err := hours.AggregateForUser(ctx, s.approvals, projects)
	out.Result = res
	if err != nil {
		metrics.ApprovedHoursLookups.WithLabelValues(metrics.OutcomeFailed).Inc()
		out.Degraded = true
		return out, err
	}

	metrics.ApprovedHoursLookups.WithLabelValues(metrics.OutcomeOK).Inc()
	s.cacheHours(userID, res)
	return out, nil
}

// ApprovedHoursBatch computes approved hours for many users. Failed users get
// a degraded zero entry; the others are unaffected.
func (s *Service) ApprovedHoursBatch(ctx context.Context, userIDs []uint) ([]ApprovedHours, error) {
	grouped, err := s.projects.GetByUserIDs(userIDs)
	if err != nil {
		log.Errorf("[Economy] loading projects for %d users failed: %v", len(userIDs), err)
		out := make([]ApprovedHours, 0, len(userIDs))
		for _, id := range uniqueSorted(userIDs) {
			metrics.ApprovedHoursLookups.WithLabelValues(metrics.OutcomeFailed).Inc()
			out = append(out, ApprovedHours{
				UserID:   id,
				Result:   hours.Result{Contributions: []hours.Contribution{}},
				Degraded: true,
			})
		}
		return out, fmt.Errorf("%w: loading projects: %w", hours.ErrApprovedHoursLookup, err)
	}

	results := hours.AggregateBatch(ctx, s.approvals, grouped, s.aggregateWorkers)

	out := make([]ApprovedHours, 0, len(results))
	for _, id := range uniqueSorted(userIDs) {
		r, ok := results[id]
		if !ok {
			continue
		}
		entry := ApprovedHours{UserID: id, Result: r.Result, Degraded: r.Err != nil}
		if r.Err != nil {
			metrics.ApprovedHoursLookups.WithLabelValues(metrics.OutcomeFailed).Inc()
		} else {
			metrics.ApprovedHoursLookups.WithLabelValues(metrics.OutcomeOK).Inc()
			s.cacheHours(id, r.Result)
		}
		out = append(out, entry)
	}
	return out, nil
}

// InvalidateApprovedHours drops a user's dashboard snapshot, e.g. after a
// reviewer changed an override. Without a cache it is a no-op.
func (s *Service) InvalidateApprovedHours(ctx context.Context, userID uint) error {
	_ = ctx
	if userID == 0 {
		return errors.New("user_id is required")
	}
	if s.hoursCache == nil {
		return nil
	}
	if err := s.hoursCache.Invalidate(userID); err != nil {
		log.Warnf("[Economy] could not invalidate approved hours of user %d: %v", userID, err)
		return err
	}
	return nil
}

func (s *Service) cacheHours(userID uint, res hours.Result) {
	if s.hoursCache == nil {
		return
	}
	if err := s.hoursCache.Set(userID, res); err != nil {
		log.Warnf("[Economy] could not cache approved hours of user %d: %v", userID, err)
	}
}

// ListItems returns all shop items.
func (s *Service) ListItems(ctx context.Context) ([]models.ShopItem, error) {
	_ = ctx
	return s.items.List()
}

// Quote returns the price a user sees for an item at this moment. The rate
// config is read fresh for every quote.
func (s *Service) Quote(ctx context.Context, itemID, userID uint) (*PriceQuote, error) {
	_ = ctx
	item, err := s.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	rate, err := s.settings.GetRateConfig()
	if err != nil {
		return nil, err
	}

	now := s.now()
	price, err := pricing.SamplePrice(*item, userID, now, rate)
	if err != nil {
		return nil, err
	}
	metrics.PriceSamples.WithLabelValues(fmt.Sprintf("%t", item.UseRandomizedPricing)).Inc()

	quote := &PriceQuote{
		ItemID:     item.ID,
		UserID:     userID,
		BasePrice:  item.BasePrice,
		Price:      price,
		Randomized: item.UseRandomizedPricing,
	}
	if item.UseRandomizedPricing {
		quote.ValidUntil = time.Unix((pricing.HourBucket(now)+1)*int64(pricing.BucketWidth/time.Second), 0).UTC()
	}
	return quote, nil
}

// CreateItem derives the base price of a new item before storing it. Config
// items with an unrecognized shape keep the entered base price.
func (s *Service) CreateItem(ctx context.Context, item *models.ShopItem) error {
	_ = ctx
	if err := item.Validate(); err != nil {
		return err
	}
	rate, err := s.settings.GetRateConfig()
	if err != nil {
		return err
	}

	price, err := pricing.ComputeBasePrice(*item, rate)
	switch {
	case errors.Is(err, pricing.ErrUnrecognizedConfigShape):
		log.Infof("[Pricing] item %q has no recognized config keys, keeping base price %d", item.Name, item.BasePrice)
	case err != nil:
		return err
	default:
		item.BasePrice = price
	}
	return s.items.Create(item)
}

// RateConfig returns the current global rate config.
func (s *Service) RateConfig(ctx context.Context) (models.GlobalRateConfig, error) {
	_ = ctx
	return s.settings.GetRateConfig()
}

// UpdateRateConfig stores a new rate config. When dollars per hour changed,
// all fixed prices are recalculated and the report is returned; otherwise the
// report is nil.
func (s *Service) UpdateRateConfig(ctx context.Context, cfg models.GlobalRateConfig) (*RecalcReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	previous, err := s.settings.GetRateConfig()
	if err != nil {
		return nil, err
	}
	if previous.DollarsPerHour == cfg.DollarsPerHour {
		return nil, s.settings.SaveRateConfig(cfg)
	}

	// Load the catalog first so a failed read leaves the old rate in place.
	items, err := s.items.ListByCostType(models.COST_TYPE_FIXED)
	if err != nil {
		return nil, err
	}
	if err := s.settings.SaveRateConfig(cfg); err != nil {
		return nil, err
	}

	log.Infof("[Pricing] dollars per hour changed %v -> %v, recalculating fixed prices", previous.DollarsPerHour, cfg.DollarsPerHour)
	return s.recalculate(ctx, cfg, items), nil
}

// UpdateDollarsPerHour changes only the global rate, keeping the randomization band.
func (s *Service) UpdateDollarsPerHour(ctx context.Context, dollarsPerHour float64) (*RecalcReport, error) {
	cfg, err := s.settings.GetRateConfig()
	if err != nil {
		return nil, err
	}
	cfg.DollarsPerHour = dollarsPerHour
	return s.UpdateRateConfig(ctx, cfg)
}

// RecalculateFixedPrices reruns recalculation with the stored rate. Operators
// use it to converge items that failed to persist earlier.
func (s *Service) RecalculateFixedPrices(ctx context.Context) (*RecalcReport, error) {
	rate, err := s.settings.GetRateConfig()
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListByCostType(models.COST_TYPE_FIXED)
	if err != nil {
		return nil, err
	}
	return s.recalculate(ctx, rate, items), nil
}

func (s *Service) recalculate(ctx context.Context, rate models.GlobalRateConfig, items []models.ShopItem) *RecalcReport {
	report := &RecalcReport{
		RunID:          uuid.New().String(),
		DollarsPerHour: rate.DollarsPerHour,
		StartedAt:      s.now(),
	}
	started := time.Now()
	defer func() {
		report.Duration = time.Since(started)
		metrics.RecalculationDuration.Observe(report.Duration.Seconds())
	}()

	results := pricing.RecalculateFixedPrices(items, rate)
	report.Items = s.persist(ctx, report.RunID, results)

	for _, it := range report.Items {
		switch it.Status {
		case StatusUpdated:
			report.Updated++
		case StatusUnchanged:
			report.Unchanged++
		default:
			report.Failed++
		}
		metrics.RecalculatedItems.WithLabelValues(it.Status).Inc()
	}
	log.Infof("[Pricing] recalculation %s done: %d updated, %d unchanged, %d failed",
		report.RunID, report.Updated, report.Unchanged, report.Failed)
	return report
}

// persist stores changed prices with a bounded number of workers. A failed
// write is logged and the item keeps its old price.
func (s *Service) persist(ctx context.Context, runID string, results map[uint]pricing.RecalcResult) []RecalcItem {
	out := make([]RecalcItem, 0, len(results))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.recalcWorkers)

	for _, r := range results {
		item := RecalcItem{ItemID: r.ItemID, OldPrice: r.OldPrice, BasePrice: r.BasePrice}

		switch {
		case r.Err != nil:
			log.Warnf("[Pricing] run %s: item %d skipped: %v", runID, r.ItemID, r.Err)
			item.Status = StatusFailed
			item.Error = r.Err.Error()
		case !r.Changed():
			item.Status = StatusUnchanged
		default:
			wg.Add(1)
			sem <- struct{}{}
			go func(item RecalcItem) {
				defer wg.Done()
				defer func() { <-sem }()

				if err := s.items.UpdateBasePrice(ctx, item.ItemID, item.BasePrice); err != nil {
					err = fmt.Errorf("%w: %w", ErrPersistence, err)
					log.Errorf("[Pricing] run %s: item %d: %v", runID, item.ItemID, err)
					item.Status = StatusFailed
					item.Error = err.Error()
					item.BasePrice = item.OldPrice
				} else {
					item.Status = StatusUpdated
				}

				mu.Lock()
				out = append(out, item)
				mu.Unlock()
			}(item)
			continue
		}

		mu.Lock()
		out = append(out, item)
		mu.Unlock()
	}
	wg.Wait()

	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func uniqueSorted(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
