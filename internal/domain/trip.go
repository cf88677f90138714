// Package domain contains the core data types for the trip checklist service.
// This package has no dependencies outside the standard library and is
// imported by every other internal package (catalog, repo, service, handler).
package domain

import "time"

// Destination is where a trip goes. City falls back to Country when the
// caller leaves it blank (see NormalizeTripInput).
type Destination struct {
	Country string `json:"country"`
	City    string `json:"city"`
}

// Trip is the aggregate root: one journey and its checklist.
// StartDate and EndDate are opaque strings; only their presence matters.
// Checklist order is insertion order and is never re-sorted.
type Trip struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Destination Destination     `json:"destination"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Type        string          `json:"type"`
	Checklist   []ChecklistItem `json:"checklist"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Clone returns a copy of t that shares no mutable state with it.
func (t Trip) Clone() Trip {
	out := t
	out.Checklist = make([]ChecklistItem, len(t.Checklist))
	copy(out.Checklist, t.Checklist)
	return out
}

// TripInput carries the caller-supplied fields for a new trip.
type TripInput struct {
	Title       string
	Destination Destination
	StartDate   string
	EndDate     string
	Type        string
}

// TripPatch is a shallow partial update. Nil fields are left untouched.
// ID, CreatedAt and Checklist are deliberately absent: ids must stay unique
// and the checklist changes only through the item operations.
type TripPatch struct {
	Title       *string
	Destination *Destination
	StartDate   *string
	EndDate     *string
	Type        *string
}

// Apply merges the non-nil fields of p onto t and returns the result.
func (p TripPatch) Apply(t Trip) Trip {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	return t
}
