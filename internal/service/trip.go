// Package service contains the business logic for the trip checklist service.
// TripService owns the in-memory trip collection and is its only writer; the
// repo layer only ever sees whole collections. No storage details live here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pkordes/trip-checklist/internal/domain"
	"github.com/pkordes/trip-checklist/internal/repo"
)

const tracerName = "github.com/pkordes/trip-checklist/internal/service"

// Generator produces the initial checklist of a new trip.
// *checklist.Generator satisfies it.
type Generator interface {
	Generate(travelTypeID string) []domain.ChecklistItem
}

// TripService is the trip store. It keeps the current collection in memory,
// serializes every mutation and persists the full collection after each one.
//
// A mutation builds a new collection without touching the published one,
// saves it, and only then publishes it. If the save fails the published
// collection is unchanged and the error is returned. Reads use the published
// snapshot and never block.
type TripService struct {
	repo      repo.TripRepo
	generator Generator
	log       *slog.Logger
	tracer    trace.Tracer
	newID     func() string
	now       func() time.Time

	mu    sync.Mutex // held for the whole read-modify-save-publish sequence
	trips atomic.Pointer[[]domain.Trip]
}

// Option customizes a TripService.
type Option func(*TripService)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *TripService) { s.log = l }
}

// WithTracerProvider sets the provider spans are started on. The default is
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *TripService) { s.tracer = tp.Tracer(tracerName) }
}

// WithIDFunc replaces the random part of minted trip and item ids.
// The default is a random UUID.
func WithIDFunc(f func() string) Option {
	return func(s *TripService) { s.newID = f }
}

// WithClock replaces the clock used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *TripService) { s.now = now }
}

// NewTripService constructs a TripService with an empty collection.
// Call Load once at startup to read the persisted collection.
func NewTripService(r repo.TripRepo, g Generator, opts ...Option) *TripService {
	s := &TripService{
		repo:      r,
		generator: g,
		log:       slog.Default(),
		tracer:    otel.Tracer(tracerName),
		newID:     uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	empty := []domain.Trip{}
	s.trips.Store(&empty)
	return s
}

// Load replaces the in-memory collection with the persisted one.
// Any failure (unreadable store, corrupt payload) is logged and leaves the
// collection empty so the application stays usable.
func (s *TripService) Load(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "TripService.Load")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.repo.Load(ctx)
	if err != nil {
		span.RecordError(err)
		s.log.ErrorContext(ctx, "failed to load trips, starting with an empty collection", "error", err)
		trips = []domain.Trip{}
	}
	s.trips.Store(&trips)
	s.log.InfoContext(ctx, "trips loaded", "count", len(trips))
}

// Trips returns a copy of the current collection in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) Trips() []domain.Trip {
	cur := s.snapshot()
	out := make([]domain.Trip, len(cur))
	for i, t := range cur {
		out[i] = t.Clone()
	}
	return out
}

// ListPaged returns one page of the collection and the collection size.
func (s *TripService) ListPaged(params domain.PaginationParams) ([]domain.Trip, int) {
	cur := s.snapshot()
	start, end := params.Bounds(len(cur))
	out := make([]domain.Trip, 0, end-start)
	for _, t := range cur[start:end] {
		out = append(out, t.Clone())
	}
	return out, len(cur)
}

// Get returns the trip with id, or domain.ErrNotFound.
func (s *TripService) Get(id string) (domain.Trip, error) {
	for _, t := range s.snapshot() {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrNotFound)
}

// Progress returns the completion percentage of the trip with id, or 0 when
// the trip does not exist.
func (s *TripService) Progress(id string) int {
	for _, t := range s.snapshot() {
		if t.ID == id {
			return Progress(t.Checklist)
		}
	}
	return 0
}

// CreateTrip appends a new trip whose checklist is generated from in.Type.
// The input is expected to be validated by the caller (see
// domain.ValidateTripInput); it is stored as given.
func (s *TripService) CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	ctx, span := s.tracer.Start(ctx, "TripService.CreateTrip",
		trace.WithAttributes(attribute.String("trip.type", in.Type)))
	defer span.End()

	var created domain.Trip
	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		created = domain.Trip{
			ID:          s.mintTripID(trips),
			Title:       in.Title,
			Destination: in.Destination,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Type:        in.Type,
			Checklist:   s.generator.Generate(in.Type),
			CreatedAt:   s.now().UTC(),
		}
		next := make([]domain.Trip, 0, len(trips)+1)
		next = append(next, trips...)
		return append(next, created)
	})
	if err != nil {
		return domain.Trip{}, endWithError(span, fmt.Errorf("service.TripService.CreateTrip: %w", err))
	}
	span.SetAttributes(attribute.String("trip.id", created.ID))
	s.log.InfoContext(ctx, "trip created", "trip_id", created.ID, "type", created.Type, "items", len(created.Checklist))
	return created.Clone(), nil
}

// UpdateTrip shallow-merges patch onto the trip with id. An unknown id leaves
// the collection unchanged (it is still persisted).
func (s *TripService) UpdateTrip(ctx context.Context, id string, patch domain.TripPatch) error {
	ctx, span := s.tracer.Start(ctx, "TripService.UpdateTrip",
		trace.WithAttributes(attribute.String("trip.id", id)))
	defer span.End()

	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		return mapTrip(trips, id, patch.Apply)
	})
	if err != nil {
		return endWithError(span, fmt.Errorf("service.TripService.UpdateTrip: %w", err))
	}
	return nil
}

// DeleteTrip removes the trip with id. An unknown id is a no-op.
func (s *TripService) DeleteTrip(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "TripService.DeleteTrip",
		trace.WithAttributes(attribute.String("trip.id", id)))
	defer span.End()

	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		next := make([]domain.Trip, 0, len(trips))
		for _, t := range trips {
			if t.ID != id {
				next = append(next, t)
			}
		}
		return next
	})
	if err != nil {
		return endWithError(span, fmt.Errorf("service.TripService.DeleteTrip: %w", err))
	}
	return nil
}

// Reset removes the persisted collection and empties the in-memory one.
func (s *TripService) Reset(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "TripService.Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Reset(ctx); err != nil {
		return endWithError(span, fmt.Errorf("service.TripService.Reset: %w", err))
	}
	empty := []domain.Trip{}
	s.trips.Store(&empty)
	s.log.InfoContext(ctx, "all trips cleared")
	return nil
}

// mutate runs fn against the current collection, persists its result and
// publishes it. fn must not modify the slice it receives or the trips in it.
func (s *TripService) mutate(ctx context.Context, fn func([]domain.Trip) []domain.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.snapshot())
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.ErrorContext(ctx, "failed to save trips", "error", err)
		return err
	}
	s.trips.Store(&next)
	return nil
}

func (s *TripService) snapshot() []domain.Trip {
	return *s.trips.Load()
}

func (s *TripService) mintTripID(trips []domain.Trip) string {
	for {
		id := "trip_" + s.newID()
		if !containsTrip(trips, id) {
			return id
		}
	}
}

func containsTrip(trips []domain.Trip, id string) bool {
	for _, t := range trips {
		if t.ID == id {
			return true
		}
	}
	return false
}

// mapTrip returns a new collection in which the trip with id is replaced by
// fn applied to a private copy of it. Other trips are shared, not copied.
func mapTrip(trips []domain.Trip, id string, fn func(domain.Trip) domain.Trip) []domain.Trip {
	next := make([]domain.Trip, len(trips))
	for i, t := range trips {
		if t.ID == id {
			t = fn(t.Clone())
		}
		next[i] = t
	}
	return next
}

func endWithError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
