// Command seed generates a deterministic mock facility fleet, writes it as a
// JSON fixture and optionally loads it into the configured facility store.
// It scores the generated fleet with the real domain scorer so the printed
// stats can be used to update test assertions.
//
// Usage:
//
//	go run ./cmd/seed -out data/mock/facilities.json -count 50 -seed 42
//	STORE_DRIVER=bolt go run ./cmd/seed -out data/mock/facilities.json -load
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/adapter/memory"
	"github.com/couchcryptid/facility-safety-service/internal/adapter/storage"
	"github.com/couchcryptid/facility-safety-service/internal/config"
	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/couchcryptid/facility-safety-service/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// referenceTime anchors generated maintenance dates for reproducible fixtures.
var referenceTime = time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)

var (
	cities     = []string{"Austin", "Dallas", "Houston", "San Antonio", "Tulsa", "Denver", "Phoenix", "Springfield"}
	statuses   = []string{domain.StatusOperational, domain.StatusOperational, domain.StatusOperational, domain.StatusUnderMaintenance, domain.StatusInactive}
	categories = []string{"Cold Storage", "Distribution", "Cross Dock", "Fulfillment"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the JSON fixture")
	count := flag.Int("count", 50, "number of facilities to generate")
	seed := flag.Int64("seed", 42, "random seed")
	load := flag.Bool("load", false, "also load the fleet into the store selected by STORE_DRIVER")
	flag.Parse()

	if *out == "" || *count < 1 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out and a positive -count")
	}

	clock := clockwork.NewFakeClockAt(referenceTime)
	docs, err := generateFleet(rand.New(rand.NewSource(*seed)), clock, *count) //nolint:gosec // fixture data
	if err != nil {
		return err
	}

	if err := memory.WriteFixture(*out, docs); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d facilities to %s", len(docs), *out)

	if *load {
		if err := loadIntoStore(docs); err != nil {
			return err
		}
	}

	printStats(docs, clock.Now())
	return nil
}

func loadIntoStore(docs []domain.Document) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer closeStore()

	if err := memory.Seed(ctx, store, docs); err != nil {
		return err
	}
	logger.Info("fleet loaded", "driver", cfg.StoreDriver, "facilities", len(docs))
	return nil
}

// generateFleet builds count facility documents. The same rng seed and clock
// always produce the same fleet, ids included.
func generateFleet(rng *rand.Rand, clock clockwork.Clock, count int) ([]domain.Document, error) {
	now := clock.Now()
	docs := make([]domain.Document, 0, count)
	for i := 0; i < count; i++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}

		city := cities[rng.Intn(len(cities))]
		fields := map[string]any{
			domain.FieldName:              fmt.Sprintf("%s Facility %03d", city, i+1),
			domain.FieldLocation:          city,
			domain.FieldCategory:          categories[rng.Intn(len(categories))],
			domain.FieldStatus:            statuses[rng.Intn(len(statuses))],
			domain.FieldSecurityEmployees: rng.Intn(25),
			domain.FieldEfficiencyScore:   rng.Intn(101),
			domain.FieldAutomationLevel:   float64(rng.Intn(11)) / 10,
			domain.FieldSizeSqft:          20000 + rng.Intn(480001),
			domain.FieldNumberOfDocks:     rng.Intn(60),
		}
		for zone := 1; zone <= domain.CameraZones; zone++ {
			fields[domain.CameraField(zone)] = rng.Intn(8)
		}

		// Roughly one in eight facilities has never been maintained.
		if rng.Intn(8) != 0 {
			last := now.AddDate(0, 0, -rng.Intn(400))
			fields[domain.FieldLastMaintenanceDate] = last.Format(domain.DateLayout)
			fields[domain.FieldNextMaintenanceDate] = last.AddDate(0, 6, 0).Format(domain.DateLayout)
		}
		// Half the fleet ships coordinates; the rest exercise geocoding.
		if rng.Intn(2) == 0 {
			fields[domain.FieldLatitude] = 25 + rng.Float64()*20
			fields[domain.FieldLongitude] = -120 + rng.Float64()*40
		}

		docs = append(docs, domain.Document{ID: id.String(), Fields: fields})
	}
	return docs, nil
}

func printStats(docs []domain.Document, now time.Time) {
	records := make([]domain.FacilityRecord, len(docs))
	for i, doc := range docs {
		records[i] = domain.DecodeFacility(doc)
	}
	stats := domain.ComputeNormalizationStats(records, now)
	scorer := domain.NewScorer(domain.DefaultCityRanks())

	scored := make([]domain.ScoredFacility, len(records))
	statusCounts := map[string]int{}
	for i, rec := range records {
		scored[i] = domain.NewScoredFacility(rec, scorer.Score(rec, stats, now))
		statusCounts[rec.Status]++
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].SafetyScore > scored[j].SafetyScore })

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(docs))
	fmt.Printf("By status: operational=%d, maintenance=%d, inactive=%d\n",
		statusCounts[domain.StatusOperational], statusCounts[domain.StatusUnderMaintenance], statusCounts[domain.StatusInactive])
	fmt.Printf("Normalization maxima: %+v\n", stats)
	if len(scored) > 0 {
		fmt.Printf("Top: %s (%s) %.2f\n", scored[0].Name, scored[0].ID, scored[0].SafetyScore)
		last := scored[len(scored)-1]
		fmt.Printf("Bottom: %s (%s) %.2f\n", last.Name, last.ID, last.SafetyScore)
	}
}
