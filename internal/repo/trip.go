package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// TripsKey is the fixed blob store key holding the whole trip collection.
const TripsKey = "travel_checklist_trips"

// TripRepo defines the persistence operations for the trip collection.
// The collection is always read and written as a whole; there are no
// per-trip writes. The service layer depends on this interface, which allows
// it to be unit-tested with a mock.
type TripRepo interface {
	// Load returns the persisted collection. When nothing has been stored yet
	// it returns an empty, non-nil slice. A payload that cannot be decoded
	// yields an error wrapping domain.ErrCorrupt.
	Load(ctx context.Context) ([]domain.Trip, error)

	// Save replaces the persisted collection with trips.
	Save(ctx context.Context, trips []domain.Trip) error

	// Reset removes the persisted collection entirely.
	Reset(ctx context.Context) error
}

// blobTripRepo stores the collection as a JSON array under TripsKey.
type blobTripRepo struct {
	store BlobStore
}

// NewTripRepo constructs a TripRepo on top of any BlobStore backend.
func NewTripRepo(store BlobStore) TripRepo {
	return &blobTripRepo{store: store}
}

// Load reads and decodes the collection.
func (r *blobTripRepo) Load(ctx context.Context) ([]domain.Trip, error) {
	payload, found, err := r.store.Get(ctx, TripsKey)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Load: %w", err)
	}
	if !found {
		return []domain.Trip{}, nil
	}
	trips, err := DecodeTrips(payload)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Load: %w", err)
	}
	return trips, nil
}

// Save encodes and writes the collection.
func (r *blobTripRepo) Save(ctx context.Context, trips []domain.Trip) error {
	payload, err := EncodeTrips(trips)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	if err := r.store.Set(ctx, TripsKey, payload); err != nil {
		return fmt.Errorf("repo.TripRepo.Save: %w", err)
	}
	return nil
}

// Reset removes the collection key.
func (r *blobTripRepo) Reset(ctx context.Context) error {
	if err := r.store.Remove(ctx, TripsKey); err != nil {
		return fmt.Errorf("repo.TripRepo.Reset: %w", err)
	}
	return nil
}

// EncodeTrips serializes a collection. A nil collection encodes as [] so the
// payload is always a JSON array. Output is deterministic for equal input.
func EncodeTrips(trips []domain.Trip) ([]byte, error) {
	if trips == nil {
		trips = []domain.Trip{}
	}
	return json.Marshal(trips)
}

// DecodeTrips parses a payload written by EncodeTrips.
func DecodeTrips(payload []byte) ([]domain.Trip, error) {
	var trips []domain.Trip
	if err := json.Unmarshal(payload, &trips); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCorrupt, err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, nil
}
