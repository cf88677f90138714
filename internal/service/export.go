package service

import (
	"github.com/pkordes/trip-checklist/internal/domain"
)

// TripLister is the read accessor ExportService needs from the trip store.
type TripLister interface {
	Trips() []domain.Trip
}

// ExportService assembles a flat export of every trip and checklist item.
type ExportService struct {
	trips TripLister
}

// NewExportService constructs an ExportService reading from trips.
func NewExportService(trips TripLister) *ExportService {
	return &ExportService{trips: trips}
}

// Export returns one ExportRow per checklist item across all trips, in
// collection order then checklist order. Trips with an empty checklist
// contribute one row with empty item fields.
// Always returns a non-nil slice.
func (s *ExportService) Export() []domain.ExportRow {
	rows := []domain.ExportRow{}
	for _, t := range s.trips.Trips() {
		base := domain.ExportRow{
			TripID:     t.ID,
			TripTitle:  t.Title,
			Country:    t.Destination.Country,
			City:       t.Destination.City,
			StartDate:  t.StartDate,
			EndDate:    t.EndDate,
			TravelType: t.Type,
		}
		if len(t.Checklist) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, it := range t.Checklist {
			row := base
			row.ItemID = it.ID
			row.ItemTitle = it.Title
			row.CategoryID = it.CategoryID
			row.Checked = it.Checked
			row.Important = it.Important
			row.IsCustom = it.IsCustom
			rows = append(rows, row)
		}
	}
	return rows
}
