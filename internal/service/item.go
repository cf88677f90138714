package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// ToggleCheckItem flips Checked on one item of one trip.
// A missing trip or item is a no-op; the collection is still persisted.
func (s *TripService) ToggleCheckItem(ctx context.Context, tripID, itemID string) error {
	ctx, span := s.tracer.Start(ctx, "TripService.ToggleCheckItem", itemAttrs(tripID, itemID))
	defer span.End()

	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		return mapItem(trips, tripID, itemID, func(it domain.ChecklistItem) domain.ChecklistItem {
			it.Checked = !it.Checked
			return it
		})
	})
	if err != nil {
		return endWithError(span, fmt.Errorf("service.TripService.ToggleCheckItem: %w", err))
	}
	return nil
}

// ToggleImportant flips Important on one item of one trip.
// A missing trip or item is a no-op; the collection is still persisted.
func (s *TripService) ToggleImportant(ctx context.Context, tripID, itemID string) error {
	ctx, span := s.tracer.Start(ctx, "TripService.ToggleImportant", itemAttrs(tripID, itemID))
	defer span.End()

	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		return mapItem(trips, tripID, itemID, func(it domain.ChecklistItem) domain.ChecklistItem {
			it.Important = !it.Important
			return it
		})
	})
	if err != nil {
		return endWithError(span, fmt.Errorf("service.TripService.ToggleImportant: %w", err))
	}
	return nil
}

// AddCustomItem appends a user-defined item to the end of a trip's checklist
// and returns it. Custom items start unchecked and not important.
// When the trip does not exist nothing is added and the zero item is returned.
func (s *TripService) AddCustomItem(ctx context.Context, tripID, categoryID, title string) (domain.ChecklistItem, error) {
	ctx, span := s.tracer.Start(ctx, "TripService.AddCustomItem",
		trace.WithAttributes(attribute.String("trip.id", tripID), attribute.String("category.id", categoryID)))
	defer span.End()

	var added domain.ChecklistItem
	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		return mapTrip(trips, tripID, func(t domain.Trip) domain.Trip {
			added = domain.ChecklistItem{
				ID:         s.mintItemID(t.Checklist),
				Title:      title,
				CategoryID: categoryID,
				Checked:    false,
				Important:  false,
				IsCustom:   true,
			}
			t.Checklist = append(t.Checklist, added)
			return t
		})
	})
	if err != nil {
		return domain.ChecklistItem{}, endWithError(span, fmt.Errorf("service.TripService.AddCustomItem: %w", err))
	}
	if added.ID != "" {
		span.SetAttributes(attribute.String("item.id", added.ID))
	}
	return added, nil
}

// DeleteCheckItem removes one item from a trip's checklist, custom or not.
// A missing trip or item is a no-op; the collection is still persisted.
func (s *TripService) DeleteCheckItem(ctx context.Context, tripID, itemID string) error {
	ctx, span := s.tracer.Start(ctx, "TripService.DeleteCheckItem", itemAttrs(tripID, itemID))
	defer span.End()

	err := s.mutate(ctx, func(trips []domain.Trip) []domain.Trip {
		return mapTrip(trips, tripID, func(t domain.Trip) domain.Trip {
			kept := make([]domain.ChecklistItem, 0, len(t.Checklist))
			for _, it := range t.Checklist {
				if it.ID != itemID {
					kept = append(kept, it)
				}
			}
			t.Checklist = kept
			return t
		})
	})
	if err != nil {
		return endWithError(span, fmt.Errorf("service.TripService.DeleteCheckItem: %w", err))
	}
	return nil
}

func (s *TripService) mintItemID(items []domain.ChecklistItem) string {
	for {
		id := "custom_" + s.newID()
		if !containsItem(items, id) {
			return id
		}
	}
}

func containsItem(items []domain.ChecklistItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// mapItem applies fn to the item itemID of trip tripID. t is already a
// private copy (see mapTrip), so its checklist can be edited in place.
func mapItem(trips []domain.Trip, tripID, itemID string, fn func(domain.ChecklistItem) domain.ChecklistItem) []domain.Trip {
	return mapTrip(trips, tripID, func(t domain.Trip) domain.Trip {
		for i, it := range t.Checklist {
			if it.ID == itemID {
				t.Checklist[i] = fn(it)
			}
		}
		return t
	})
}

func itemAttrs(tripID, itemID string) trace.SpanStartEventOption {
	return trace.WithAttributes(attribute.String("trip.id", tripID), attribute.String("item.id", itemID))
}
