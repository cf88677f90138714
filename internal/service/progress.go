package service

import "github.com/pkordes/trip-checklist/internal/domain"

// Progress returns the percentage of checked items, 0 to 100, rounded to the
// nearest integer with halves rounded up (12.5 becomes 13). An empty
// checklist is 0% complete.
func Progress(items []domain.ChecklistItem) int {
	total := len(items)
	if total == 0 {
		return 0
	}
	checked := 0
	for _, it := range items {
		if it.Checked {
			checked++
		}
	}
	// round(100*checked/total) in integer arithmetic.
	return (200*checked + total) / (2 * total)
}
