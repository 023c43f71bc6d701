package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/couchcryptid/facility-safety-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// FacilityStore is the document collection a scan reads and writes back to.
type FacilityStore interface {
	// ListFacilities returns every document in the store's natural order.
	ListFacilities(ctx context.Context) ([]domain.Document, error)
	// GetFacility returns domain.ErrFacilityNotFound when id is absent.
	GetFacility(ctx context.Context, id string) (domain.Document, error)
	// UpdateFacility merges fields into an existing document.
	UpdateFacility(ctx context.Context, id string, fields map[string]any) error
	Ping(ctx context.Context) error
}

// ScorePublisher announces written scores. A nil publisher disables publishing.
type ScorePublisher interface {
	PublishScores(ctx context.Context, events []domain.ScoreEvent) error
}

// Result is the outcome of one successful scan.
type Result struct {
	ScanID   string
	ScoredAt time.Time
	// Facilities preserves the store's natural order.
	Facilities []domain.ScoredFacility
}

// Pipeline orchestrates fleet scans: read, normalize, score, write back.
type Pipeline struct {
	store     FacilityStore
	scorer    *domain.Scorer
	publisher ScorePublisher
	geocoder  domain.Geocoder
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	// mu serializes scans within the process.
	mu        sync.Mutex
	lastScan  atomic.Int64
	scanCount atomic.Int64
}

// New creates a Pipeline. publisher and geocoder may be nil.
func New(
	store FacilityStore,
	scorer *domain.Scorer,
	publisher ScorePublisher,
	geocoder domain.Geocoder,
	clock clockwork.Clock,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Pipeline {
	return &Pipeline{
		store:     store,
		scorer:    scorer,
		publisher: publisher,
		geocoder:  geocoder,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil when the facility store is reachable.
func (p *Pipeline) CheckReadiness(ctx context.Context) error {
	if err := p.store.Ping(ctx); err != nil {
		return fmt.Errorf("facility store unavailable: %w", err)
	}
	return nil
}

// ScanCount reports how many scans have completed successfully.
func (p *Pipeline) ScanCount() int64 {
	return p.scanCount.Load()
}

// LastScan returns the timestamp of the last successful scan, or the zero
// time if none has completed.
func (p *Pipeline) LastScan() time.Time {
	ns := p.lastScan.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns).UTC()
}

// GetFacility reads and decodes one stored facility without rescoring it.
func (p *Pipeline) GetFacility(ctx context.Context, id string) (domain.FacilityRecord, error) {
	doc, err := p.store.GetFacility(ctx, id)
	if err != nil {
		return domain.FacilityRecord{}, fmt.Errorf("get facility %s: %w", id, err)
	}
	return domain.DecodeFacility(doc), nil
}

// Scan performs one full scoring pass over the fleet and writes every score
// back to the store. The first failed write aborts the scan; writes made
// before it stay committed.
func (p *Pipeline) Scan(ctx context.Context) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.metrics.ScanRunning.Set(1)
	defer p.metrics.ScanRunning.Set(0)

	start := p.clock.Now()
	now := start.UTC()
	scanID := uuid.NewString()
	logger := p.logger.With("scan_id", scanID)

	results, err := p.scan(ctx, logger, start)
	p.metrics.ScanDuration.Observe(p.clock.Since(now).Seconds())
	if err != nil {
		p.metrics.ScansTotal.WithLabelValues("error").Inc()
		return Result{}, err
	}

	for i := range results {
		results[i] = domain.ResolveCoordinates(ctx, results[i], p.geocoder, logger)
	}

	p.publish(ctx, logger, scanID, results, now)

	p.metrics.ScansTotal.WithLabelValues("success").Inc()
	p.metrics.LastScanTime.Set(float64(now.Unix()))
	p.lastScan.Store(now.UnixNano())
	p.scanCount.Add(1)

	logger.Info("scan complete", "scored", len(results), "duration", p.clock.Since(now))
	return Result{ScanID: scanID, ScoredAt: now, Facilities: results}, nil
}

// scan counts maintenance days on the clock's local calendar date; the
// stored timestamp is always UTC.
func (p *Pipeline) scan(ctx context.Context, logger *slog.Logger, start time.Time) ([]domain.ScoredFacility, error) {
	scoredAt := start.UTC()
	docs, err := p.store.ListFacilities(ctx)
	if err != nil {
		logger.Error("list facilities failed", "error", err)
		return nil, fmt.Errorf("scan: list facilities: %w", err)
	}
	p.metrics.FleetSize.Set(float64(len(docs)))
	logger.Info("scan started", "facility_count", len(docs))

	records := make([]domain.FacilityRecord, len(docs))
	for i, doc := range docs {
		records[i] = domain.DecodeFacility(doc)
	}
	stats := domain.ComputeNormalizationStats(records, start)
	logger.Debug("normalization stats computed",
		"max_cctv", stats.MaxCCTV,
		"max_security_employees", stats.MaxSecurityEmployees,
		"max_days_since_maintenance", stats.MaxDaysSinceMaintenance,
		"max_facility_size", stats.MaxFacilitySize,
		"max_docks", stats.MaxDocks,
	)

	results := make([]domain.ScoredFacility, 0, len(records))
	for _, rec := range records {
		b := p.scorer.Breakdown(rec, stats, start)
		logger.Debug("facility scored",
			"facility_id", rec.ID,
			"base_index", b.BaseIndex,
			"location_adjustment", b.LocationAdjustment,
			"safety_score", b.Score,
		)

		if err := p.store.UpdateFacility(ctx, rec.ID, domain.ScoreUpdate(b.Score, scoredAt)); err != nil {
			p.metrics.StoreWriteErrors.Inc()
			logger.Error("update facility failed", "facility_id", rec.ID, "error", err, "written", len(results))
			return nil, fmt.Errorf("scan: update facility %s: %w", rec.ID, err)
		}

		p.metrics.FacilitiesScored.Inc()
		p.metrics.SafetyScore.Observe(b.Score)
		results = append(results, domain.NewScoredFacility(rec, b.Score))
	}
	return results, nil
}

// publish announces the scan's scores. The store is the source of truth, so
// a publish failure is logged and counted but never fails the scan.
func (p *Pipeline) publish(ctx context.Context, logger *slog.Logger, scanID string, results []domain.ScoredFacility, at time.Time) {
	if p.publisher == nil || len(results) == 0 {
		return
	}
	events := make([]domain.ScoreEvent, len(results))
	for i, sf := range results {
		events[i] = domain.NewScoreEvent(scanID, sf, at)
	}
	if err := p.publisher.PublishScores(ctx, events); err != nil {
		p.metrics.PublishErrors.Inc()
		logger.Warn("publish scores failed", "error", err, "count", len(events))
	}
}
