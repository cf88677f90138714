package domain

import (
	"fmt"
	"strings"
)

// NormalizeTripInput trims every text field and defaults a blank city to the
// country, mirroring what the create form submits.
func NormalizeTripInput(in TripInput) TripInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Destination.Country = strings.TrimSpace(in.Destination.Country)
	in.Destination.City = strings.TrimSpace(in.Destination.City)
	if in.Destination.City == "" {
		in.Destination.City = in.Destination.Country
	}
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Type = strings.TrimSpace(in.Type)
	return in
}

// ValidateTripInput enforces the creation preconditions the trip store
// relies on but does not check itself:
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - Destination country must be non-empty.
//   - Both travel dates must be present.
func ValidateTripInput(in TripInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.Destination.Country) == "" {
		return fmt.Errorf("%w: destination country is required", ErrValidation)
	}
	if strings.TrimSpace(in.StartDate) == "" || strings.TrimSpace(in.EndDate) == "" {
		return fmt.Errorf("%w: start and end dates are required", ErrValidation)
	}
	return nil
}

// ValidateItemTitle rejects blank custom item titles.
func ValidateItemTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: item title is required", ErrValidation)
	}
	return nil
}
