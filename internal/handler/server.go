// Package handler implements the HTTP handlers for the trip checklist API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, item.go, catalog.go, export.go) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// TripServicer defines the trip store operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching storage or the service layer.
// *service.TripService satisfies it.
type TripServicer interface {
	ListPaged(params domain.PaginationParams) ([]domain.Trip, int)
	Get(id string) (domain.Trip, error)
	Progress(id string) int
	CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id string, patch domain.TripPatch) error
	DeleteTrip(ctx context.Context, id string) error
	Reset(ctx context.Context) error
	ToggleCheckItem(ctx context.Context, tripID, itemID string) error
	ToggleImportant(ctx context.Context, tripID, itemID string) error
	AddCustomItem(ctx context.Context, tripID, categoryID, title string) (domain.ChecklistItem, error)
	DeleteCheckItem(ctx context.Context, tripID, itemID string) error
}

// CatalogServicer exposes the reference catalogs. *service.CatalogService satisfies it.
type CatalogServicer interface {
	TravelTypes() []domain.TravelType
	Categories() []domain.Category
	Items(tag string) []domain.ItemTemplate
	CategoryProgress(items []domain.ChecklistItem) []domain.CategoryProgress
}

// Exporter produces the flat export table. *service.ExportService satisfies it.
type Exporter interface {
	Export() []domain.ExportRow
}

// Server holds the dependencies of every endpoint.
// Wire it in main.go via Register on the application router.
type Server struct {
	trips   TripServicer
	catalog CatalogServicer
	export  Exporter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, catalog CatalogServicer, export Exporter) *Server {
	return &Server{trips: trips, catalog: catalog, export: export}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil)
}

// Register mounts every endpoint on r.
func (s *Server) Register(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		notFound(w, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/travel-types", s.ListTravelTypes)
		r.Get("/categories", s.ListCategories)
		r.Get("/items", s.ListItemTemplates)
	})

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Delete("/", s.ResetTrips)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/progress", s.GetTripProgress)

			r.Post("/items", s.AddCustomItem)
			r.Post("/items/{itemId}/check", s.ToggleCheckItem)
			r.Post("/items/{itemId}/important", s.ToggleImportant)
			r.Delete("/items/{itemId}", s.DeleteCheckItem)
		})
	})

	r.Get("/export", s.GetExport)
}

// Routes returns a router with every endpoint registered and no middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}
