package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// customItemRequest is the body of POST /trips/{tripId}/items.
type customItemRequest struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
}

// AddCustomItem handles POST /trips/{tripId}/items.
// The category must exist in the catalog.
func (s *Server) AddCustomItem(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	var body customItemRequest
	if !decodeBody(w, r, &body) {
		return
	}
	title := strings.TrimSpace(body.Title)
	if err := domain.ValidateItemTitle(title); err != nil {
		validationFailed(w, err)
		return
	}
	categoryID := strings.TrimSpace(body.CategoryID)
	if !s.knownCategory(categoryID) {
		validationFailed(w, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, categoryID))
		return
	}

	item, err := s.trips.AddCustomItem(r.Context(), trip.ID, categoryID, title)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if item.ID == "" {
		notFound(w, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ToggleCheckItem handles POST /trips/{tripId}/items/{itemId}/check.
func (s *Server) ToggleCheckItem(w http.ResponseWriter, r *http.Request) {
	s.toggleItem(w, r, s.trips.ToggleCheckItem)
}

// ToggleImportant handles POST /trips/{tripId}/items/{itemId}/important.
func (s *Server) ToggleImportant(w http.ResponseWriter, r *http.Request) {
	s.toggleItem(w, r, s.trips.ToggleImportant)
}

// DeleteCheckItem handles DELETE /trips/{tripId}/items/{itemId}.
// Generated and custom items can both be removed.
func (s *Server) DeleteCheckItem(w http.ResponseWriter, r *http.Request) {
	trip, itemID, ok := s.lookupItem(w, r)
	if !ok {
		return
	}
	if err := s.trips.DeleteCheckItem(r.Context(), trip.ID, itemID); err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toggleItem runs a flag toggle and writes the item as stored afterwards.
func (s *Server) toggleItem(w http.ResponseWriter, r *http.Request,
	toggle func(ctx context.Context, tripID, itemID string) error,
) {
	trip, itemID, ok := s.lookupItem(w, r)
	if !ok {
		return
	}
	if err := toggle(r.Context(), trip.ID, itemID); err != nil {
		internalError(w, r, err)
		return
	}
	updated, err := s.trips.Get(trip.ID)
	if err != nil {
		notFound(w, "trip not found")
		return
	}
	item, found := findItem(updated.Checklist, itemID)
	if !found {
		notFound(w, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// lookupItem resolves {tripId} and {itemId}, writing a 400 or 404 when the
// trip or the item does not exist.
func (s *Server) lookupItem(w http.ResponseWriter, r *http.Request) (domain.Trip, string, bool) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return domain.Trip{}, "", false
	}
	itemID, ok := pathParam(w, r, "itemId")
	if !ok {
		return domain.Trip{}, "", false
	}
	if _, found := findItem(trip.Checklist, itemID); !found {
		notFound(w, "item not found")
		return domain.Trip{}, "", false
	}
	return trip, itemID, true
}

func (s *Server) knownCategory(id string) bool {
	for _, c := range s.catalog.Categories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

func findItem(items []domain.ChecklistItem, id string) (domain.ChecklistItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.ChecklistItem{}, false
}
