package service_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-checklist/internal/catalog"
	"github.com/pkordes/trip-checklist/internal/checklist"
	"github.com/pkordes/trip-checklist/internal/domain"
	"github.com/pkordes/trip-checklist/internal/repo"
	"github.com/pkordes/trip-checklist/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	load  func(ctx context.Context) ([]domain.Trip, error)
	save  func(ctx context.Context, trips []domain.Trip) error
	reset func(ctx context.Context) error
}

func (m *mockTripRepo) Load(ctx context.Context) ([]domain.Trip, error) { return m.load(ctx) }
func (m *mockTripRepo) Save(ctx context.Context, trips []domain.Trip) error {
	return m.save(ctx, trips)
}
func (m *mockTripRepo) Reset(ctx context.Context) error { return m.reset(ctx) }

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// switchableRepo wraps a real repo and fails Save/Reset while failWith is set.
type switchableRepo struct {
	repo.TripRepo
	failWith error
}

func (r *switchableRepo) Save(ctx context.Context, trips []domain.Trip) error {
	if r.failWith != nil {
		return r.failWith
	}
	return r.TripRepo.Save(ctx, trips)
}

func (r *switchableRepo) Reset(ctx context.Context) error {
	if r.failWith != nil {
		return r.failWith
	}
	return r.TripRepo.Reset(ctx)
}

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// beachCatalog is the worked example catalog: passport and tickets are
// required, beach_gear and winter_coat are tagged.
func beachCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]domain.ItemTemplate{
			{ID: "passport", Title: "Passport", CategoryID: "documents", Required: true},
			{ID: "tickets", Title: "Tickets", CategoryID: "documents", Required: true},
			{ID: "beach_gear", Title: "Beach gear", CategoryID: "outdoor", Tags: []string{"beach"}},
			{ID: "winter_coat", Title: "Winter coat", CategoryID: "clothing", Tags: []string{"cold"}},
		},
		[]domain.TravelType{
			{ID: "beach_trip", TitleKo: "휴양지", IncludeTags: []string{"beach"}},
			{ID: "ski_trip", TitleKo: "스키", IncludeTags: []string{"cold", "beach"}},
		},
		[]domain.Category{
			{ID: "documents", TitleKo: "서류"},
			{ID: "clothing", TitleKo: "의류"},
			{ID: "outdoor", TitleKo: "야외활동"},
		},
	)
	require.NoError(t, err)
	return c
}

// sequentialIDs returns an id function yielding "1", "2", ...
func sequentialIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprint(n.Add(1)) }
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture bundles a service with the blob store behind it.
type fixture struct {
	svc   *service.TripService
	store *repo.MemoryStore
	repo  *switchableRepo
}

func newFixture(t *testing.T, opts ...service.Option) fixture {
	t.Helper()
	store := repo.NewMemoryStore()
	r := &switchableRepo{TripRepo: repo.NewTripRepo(store)}
	base := []service.Option{
		service.WithIDFunc(sequentialIDs()),
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithLogger(quietLogger()),
	}
	svc := service.NewTripService(r, checklist.NewGenerator(beachCatalog(t)), append(base, opts...)...)
	svc.Load(context.Background())
	return fixture{svc: svc, store: store, repo: r}
}

func (f fixture) payload(t *testing.T) []byte {
	t.Helper()
	b, found, err := f.store.Get(context.Background(), repo.TripsKey)
	require.NoError(t, err)
	if !found {
		return nil
	}
	return b
}

func beachInput() domain.TripInput {
	return domain.TripInput{
		Title:       "Bali",
		Destination: domain.Destination{Country: "Indonesia", City: "Denpasar"},
		StartDate:   "2025-08-01",
		EndDate:     "2025-08-10",
		Type:        "beach_trip",
	}
}

func (f fixture) mustCreate(t *testing.T, in domain.TripInput) domain.Trip {
	t.Helper()
	trip, err := f.svc.CreateTrip(context.Background(), in)
	require.NoError(t, err)
	return trip
}

func itemIDs(items []domain.ChecklistItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func mustGet(t *testing.T, svc *service.TripService, id string) domain.Trip {
	t.Helper()
	trip, err := svc.Get(id)
	require.NoError(t, err)
	return trip
}

func equalPayload(a, b []byte) bool { return bytes.Equal(a, b) }
