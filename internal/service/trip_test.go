package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-checklist/internal/checklist"
	"github.com/pkordes/trip-checklist/internal/domain"
	"github.com/pkordes/trip-checklist/internal/repo"
	"github.com/pkordes/trip-checklist/internal/service"
)

// ---- Load tests ------------------------------------------------------------

func TestTripService_Load_NothingPersisted(t *testing.T) {
	f := newFixture(t)

	got := f.svc.Trips()

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_Load_ReadsPersistedCollection(t *testing.T) {
	f := newFixture(t)
	created := f.mustCreate(t, beachInput())

	// A second service over the same store sees the trip after Load.
	other := service.NewTripService(f.repo, checklist.NewGenerator(beachCatalog(t)), service.WithLogger(quietLogger()))
	other.Load(context.Background())

	got := other.Trips()
	require.Len(t, got, 1)
	assert.Equal(t, created.ID, got[0].ID)
	assert.Equal(t, created.Checklist, got[0].Checklist)
}

func TestTripService_Load_CorruptPayloadStartsEmpty(t *testing.T) {
	var logs bytes.Buffer
	store := repo.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), repo.TripsKey, []byte(`{"oops"`)))

	svc := service.NewTripService(repo.NewTripRepo(store), checklist.NewGenerator(beachCatalog(t)),
		service.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))
	svc.Load(context.Background())

	assert.Empty(t, svc.Trips())
	assert.Contains(t, logs.String(), "failed to load trips")
}

func TestTripService_Load_StoreErrorStartsEmpty(t *testing.T) {
	r := &mockTripRepo{
		load: func(context.Context) ([]domain.Trip, error) { return nil, errors.New("permission denied") },
	}
	svc := service.NewTripService(r, checklist.NewGenerator(beachCatalog(t)), service.WithLogger(quietLogger()))

	svc.Load(context.Background())

	assert.Empty(t, svc.Trips())
}

// ---- CreateTrip tests ------------------------------------------------------

func TestTripService_CreateTrip(t *testing.T) {
	f := newFixture(t)

	got, err := f.svc.CreateTrip(context.Background(), beachInput())

	require.NoError(t, err)
	assert.Equal(t, "trip_1", got.ID)
	assert.Equal(t, "Bali", got.Title)
	assert.Equal(t, domain.Destination{Country: "Indonesia", City: "Denpasar"}, got.Destination)
	assert.Equal(t, "2025-08-01", got.StartDate)
	assert.Equal(t, "2025-08-10", got.EndDate)
	assert.Equal(t, "beach_trip", got.Type)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, []string{"passport", "tickets", "beach_gear"}, itemIDs(got.Checklist))

	// Persisted in full, and reflected in memory.
	persisted, err := repo.DecodeTrips(f.payload(t))
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, got.ID, persisted[0].ID)
	assert.Len(t, f.svc.Trips(), 1)
}

func TestTripService_CreateTrip_AppendsInOrderWithUniqueIDs(t *testing.T) {
	f := newFixture(t)

	a := f.mustCreate(t, beachInput())
	b := f.mustCreate(t, beachInput())

	assert.NotEqual(t, a.ID, b.ID)
	trips := f.svc.Trips()
	require.Len(t, trips, 2)
	assert.Equal(t, a.ID, trips[0].ID)
	assert.Equal(t, b.ID, trips[1].ID)
}

func TestTripService_CreateTrip_SkipsCollidingID(t *testing.T) {
	ids := []string{"dup", "dup", "fresh"}
	next := 0
	f := newFixture(t, service.WithIDFunc(func() string {
		id := ids[next]
		next++
		return id
	}))

	first := f.mustCreate(t, beachInput())
	second := f.mustCreate(t, beachInput())

	assert.Equal(t, "trip_dup", first.ID)
	assert.Equal(t, "trip_fresh", second.ID)
}

func TestTripService_CreateTrip_UnknownTypeGetsRequiredItems(t *testing.T) {
	f := newFixture(t)
	in := beachInput()
	in.Type = "moon_trip"

	got := f.mustCreate(t, in)

	assert.Equal(t, []string{"passport", "tickets"}, itemIDs(got.Checklist))
}

func TestTripService_CreateTrip_SaveErrorLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, beachInput())
	before := f.payload(t)

	saveErr := errors.New("disk full")
	f.repo.failWith = saveErr
	_, err := f.svc.CreateTrip(context.Background(), beachInput())

	assert.ErrorIs(t, err, saveErr)
	assert.Len(t, f.svc.Trips(), 1)
	assert.Equal(t, before, f.payload(t))
}

// ---- Read accessor tests ---------------------------------------------------

func TestTripService_Trips_ReturnsCopies(t *testing.T) {
	f := newFixture(t)
	created := f.mustCreate(t, beachInput())

	trips := f.svc.Trips()
	trips[0].Title = "mutated"
	trips[0].Checklist[0].Checked = true

	got := mustGet(t, f.svc, created.ID)
	assert.Equal(t, "Bali", got.Title)
	assert.False(t, got.Checklist[0].Checked)
}

func TestTripService_Get_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get("trip_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_ListPaged(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.mustCreate(t, beachInput())
	}
	page, limit := 2, 2

	got, total := f.svc.ListPaged(domain.NewPaginationParams(&page, &limit))

	assert.Equal(t, 5, total)
	require.Len(t, got, 2)
	assert.Equal(t, "trip_3", got[0].ID)
	assert.Equal(t, "trip_4", got[1].ID)
}

// ---- UpdateTrip tests ------------------------------------------------------

func TestTripService_UpdateTrip_ShallowMerge(t *testing.T) {
	f := newFixture(t)
	target := f.mustCreate(t, beachInput())
	other := f.mustCreate(t, beachInput())

	title := "Bali and Lombok"
	end := "2025-08-14"
	require.NoError(t, f.svc.UpdateTrip(context.Background(), target.ID, domain.TripPatch{Title: &title, EndDate: &end}))

	got := mustGet(t, f.svc, target.ID)
	assert.Equal(t, "Bali and Lombok", got.Title)
	assert.Equal(t, "2025-08-14", got.EndDate)
	assert.Equal(t, target.StartDate, got.StartDate)
	assert.Equal(t, target.Checklist, got.Checklist)
	assert.Equal(t, target.CreatedAt, got.CreatedAt)

	assert.Equal(t, other, mustGet(t, f.svc, other.ID))
}

func TestTripService_UpdateTrip_UnknownIDStillPersists(t *testing.T) {
	saves := 0
	r := &mockTripRepo{
		load: func(context.Context) ([]domain.Trip, error) { return []domain.Trip{}, nil },
		save: func(context.Context, []domain.Trip) error { saves++; return nil },
	}
	svc := service.NewTripService(r, checklist.NewGenerator(beachCatalog(t)), service.WithLogger(quietLogger()))
	svc.Load(context.Background())

	title := "x"
	err := svc.UpdateTrip(context.Background(), "trip_missing", domain.TripPatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, 1, saves)
	assert.Empty(t, svc.Trips())
}

// ---- DeleteTrip tests ------------------------------------------------------

func TestTripService_DeleteTrip(t *testing.T) {
	f := newFixture(t)
	a := f.mustCreate(t, beachInput())
	b := f.mustCreate(t, beachInput())

	require.NoError(t, f.svc.DeleteTrip(context.Background(), a.ID))

	trips := f.svc.Trips()
	require.Len(t, trips, 1)
	assert.Equal(t, b.ID, trips[0].ID)
}

func TestTripService_DeleteTrip_UnknownIDLeavesPayloadIdentical(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, beachInput())
	before := f.payload(t)

	require.NoError(t, f.svc.DeleteTrip(context.Background(), "trip_missing"))

	assert.True(t, equalPayload(before, f.payload(t)), "payload changed")
}

func TestTripService_DeleteTrip_SaveError(t *testing.T) {
	f := newFixture(t)
	trip := f.mustCreate(t, beachInput())
	f.repo.failWith = errors.New("read-only filesystem")

	err := f.svc.DeleteTrip(context.Background(), trip.ID)

	assert.Error(t, err)
	assert.Len(t, f.svc.Trips(), 1)
}

// ---- Reset tests -----------------------------------------------------------

func TestTripService_Reset(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, beachInput())

	require.NoError(t, f.svc.Reset(context.Background()))

	assert.Empty(t, f.svc.Trips())
	assert.Nil(t, f.payload(t), "persisted key should be removed")
}

func TestTripService_Reset_Error(t *testing.T) {
	f := newFixture(t)
	f.mustCreate(t, beachInput())
	f.repo.failWith = errors.New("locked")

	err := f.svc.Reset(context.Background())

	assert.Error(t, err)
	assert.Len(t, f.svc.Trips(), 1)
}

// ---- Concurrency -----------------------------------------------------------

// TestTripService_ConcurrentMutationsAreNotLost runs many mutations at once
// and checks that none of them was dropped by a read-modify-write race.
func TestTripService_ConcurrentMutationsAreNotLost(t *testing.T) {
	f := newFixture(t, service.WithIDFunc(sequentialIDs()))
	trip := f.mustCreate(t, beachInput())

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddCustomItem(context.Background(), trip.ID, "etc", "item")
			assert.NoError(t, err)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.svc.Progress(trip.ID)
			_ = f.svc.Trips()
		}()
	}
	wg.Wait()

	got := mustGet(t, f.svc, trip.ID)
	assert.Len(t, got.Checklist, 3+n)

	persisted, err := repo.DecodeTrips(f.payload(t))
	require.NoError(t, err)
	assert.Equal(t, got.Checklist, persisted[0].Checklist)
}
