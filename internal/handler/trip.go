package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// tripRequest is the body of POST /trips.
type tripRequest struct {
	Title       string             `json:"title"`
	Destination domain.Destination `json:"destination"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Type        string             `json:"type"`
}

// tripPatchRequest is the body of PATCH /trips/{tripId}. Absent fields are
// left untouched.
type tripPatchRequest struct {
	Title       *string             `json:"title"`
	Destination *domain.Destination `json:"destination"`
	StartDate   *string             `json:"startDate"`
	EndDate     *string             `json:"endDate"`
	Type        *string             `json:"type"`
}

// tripResponse is a trip with its completion percentage.
type tripResponse struct {
	domain.Trip
	Progress int `json:"progress"`
}

// tripDetailResponse adds the per-category counters to tripResponse.
type tripDetailResponse struct {
	tripResponse
	CategoryProgress []domain.CategoryProgress `json:"categoryProgress"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type progressResponse struct {
	TripID     string                    `json:"tripId"`
	Progress   int                       `json:"progress"`
	Categories []domain.CategoryProgress `json:"categories"`
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if !queryParam(w, r, "page", &page) || !queryParam(w, r, "limit", &limit) {
		return
	}
	params := domain.NewPaginationParams(page, limit)
	trips, total := s.trips.ListPaged(params)

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = s.tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if !decodeBody(w, r, &body) {
		return
	}
	in := domain.NormalizeTripInput(domain.TripInput{
		Title:       body.Title,
		Destination: body.Destination,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		Type:        body.Type,
	})
	if err := domain.ValidateTripInput(in); err != nil {
		validationFailed(w, err)
		return
	}

	created, err := s.trips.CreateTrip(r.Context(), in)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.tripToResponse(created))
}

// ResetTrips handles DELETE /trips by clearing every stored trip.
func (s *Server) ResetTrips(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Reset(r.Context()); err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tripDetailResponse{
		tripResponse:     s.tripToResponse(trip),
		CategoryProgress: s.catalog.CategoryProgress(trip.Checklist),
	})
}

// UpdateTrip handles PATCH /trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	var body tripPatchRequest
	if !decodeBody(w, r, &body) {
		return
	}
	patch, err := requestToPatch(body)
	if err != nil {
		validationFailed(w, err)
		return
	}

	if err := s.trips.UpdateTrip(r.Context(), trip.ID, patch); err != nil {
		internalError(w, r, err)
		return
	}
	s.writeCurrentTrip(w, r, trip.ID)
}

// DeleteTrip handles DELETE /trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	if err := s.trips.DeleteTrip(r.Context(), trip.ID); err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTripProgress handles GET /trips/{tripId}/progress.
func (s *Server) GetTripProgress(w http.ResponseWriter, r *http.Request) {
	trip, ok := s.lookupTrip(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{
		TripID:     trip.ID,
		Progress:   s.trips.Progress(trip.ID),
		Categories: s.catalog.CategoryProgress(trip.Checklist),
	})
}

// --- helpers ------------------------------------------------------------------

// lookupTrip resolves the {tripId} path parameter, writing a 400 or 404 when
// it cannot. The trip store treats unknown ids as silent no-ops, so every
// trip-scoped endpoint checks existence here first.
func (s *Server) lookupTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	id, ok := pathParam(w, r, "tripId")
	if !ok {
		return domain.Trip{}, false
	}
	trip, err := s.trips.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "trip not found")
			return domain.Trip{}, false
		}
		internalError(w, r, err)
		return domain.Trip{}, false
	}
	return trip, true
}

// writeCurrentTrip writes the stored state of the trip after a mutation,
// or 404 if a concurrent delete removed it in the meantime.
func (s *Server) writeCurrentTrip(w http.ResponseWriter, r *http.Request, id string) {
	trip, err := s.trips.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "trip not found")
			return
		}
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip))
}

func (s *Server) tripToResponse(t domain.Trip) tripResponse {
	if t.Checklist == nil {
		t.Checklist = []domain.ChecklistItem{}
	}
	return tripResponse{Trip: t, Progress: s.trips.Progress(t.ID)}
}

// requestToPatch validates a PATCH body and converts it into a domain.TripPatch.
// Provided fields follow the same rules as creation: non-blank title, country
// and dates, and a blank city falls back to the country.
func requestToPatch(body tripPatchRequest) (domain.TripPatch, error) {
	var p domain.TripPatch
	var err error
	if p.Title, err = nonBlank(body.Title, "title"); err != nil {
		return p, err
	}
	if p.StartDate, err = nonBlank(body.StartDate, "startDate"); err != nil {
		return p, err
	}
	if p.EndDate, err = nonBlank(body.EndDate, "endDate"); err != nil {
		return p, err
	}
	if body.Destination != nil {
		norm := domain.NormalizeTripInput(domain.TripInput{Destination: *body.Destination}).Destination
		if norm.Country == "" {
			return p, fmt.Errorf("%w: destination country is required", domain.ErrValidation)
		}
		p.Destination = &norm
	}
	if body.Type != nil {
		typ := strings.TrimSpace(*body.Type)
		p.Type = &typ
	}
	return p, nil
}

// nonBlank trims an optional field, rejecting a present but blank value.
func nonBlank(v *string, field string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil, fmt.Errorf("%w: %s must not be blank", domain.ErrValidation, field)
	}
	return &t, nil
}
