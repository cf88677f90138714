package domain

import "strconv"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per checklist item, with trip
// fields repeated for every item of that trip. Trips with an empty checklist
// yield one row with zero values for all item fields.
type ExportRow struct {
	// Trip fields, repeated for every item on the trip.
	TripID     string `json:"tripId"`
	TripTitle  string `json:"tripTitle"`
	Country    string `json:"country"`
	City       string `json:"city"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	TravelType string `json:"travelType"`

	// Item fields, zero values when the checklist is empty.
	ItemID     string `json:"itemId,omitempty"`
	ItemTitle  string `json:"itemTitle,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Checked    bool   `json:"checked"`
	Important  bool   `json:"important"`
	IsCustom   bool   `json:"isCustom"`
}

// ExportCSVHeader names the columns of ExportRow.CSVRecord.
var ExportCSVHeader = []string{
	"trip_id", "trip_title", "country", "city", "start_date", "end_date", "travel_type",
	"item_id", "item_title", "category_id", "checked", "important", "is_custom",
}

// CSVRecord encodes the row as a flat string slice in ExportCSVHeader order.
// Booleans are written as "true"/"false".
func (r ExportRow) CSVRecord() []string {
	return []string{
		r.TripID,
		r.TripTitle,
		r.Country,
		r.City,
		r.StartDate,
		r.EndDate,
		r.TravelType,
		r.ItemID,
		r.ItemTitle,
		r.CategoryID,
		strconv.FormatBool(r.Checked),
		strconv.FormatBool(r.Important),
		strconv.FormatBool(r.IsCustom),
	}
}
