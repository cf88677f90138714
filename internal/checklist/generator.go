// Package checklist derives a trip's initial checklist from the reference
// catalog. Everything here is pure: no I/O, no retained state.
package checklist

import (
	"github.com/pkordes/trip-checklist/internal/domain"
)

// Catalog is the subset of *catalog.Catalog the generator reads.
type Catalog interface {
	Items() []domain.ItemTemplate
	TravelType(id string) (domain.TravelType, bool)
}

// Generator builds checklists for new trips.
type Generator struct {
	catalog Catalog
}

// NewGenerator constructs a Generator over the given catalog.
func NewGenerator(c Catalog) *Generator {
	return &Generator{catalog: c}
}

// Generate returns the initial checklist for a trip of travelTypeID.
//
// Required templates are always included. When the travel type is known,
// optional templates whose tags intersect its IncludeTags are included too.
// Catalog order is preserved, each template appears at most once, and the
// result is identical for identical input.
func (g *Generator) Generate(travelTypeID string) []domain.ChecklistItem {
	tt, known := g.catalog.TravelType(travelTypeID)

	out := []domain.ChecklistItem{}
	for _, tpl := range g.catalog.Items() {
		switch {
		case tpl.Required:
			out = append(out, instantiate(tpl))
		case known && tpl.HasAnyTag(tt.IncludeTags):
			out = append(out, instantiate(tpl))
		}
	}
	return out
}

// instantiate maps a template to a fresh, unchecked, non-custom item.
// Required templates start starred.
func instantiate(tpl domain.ItemTemplate) domain.ChecklistItem {
	return domain.ChecklistItem{
		ID:             tpl.ID,
		Title:          tpl.Title,
		LocalizedTitle: tpl.LocalizedTitle,
		CategoryID:     tpl.CategoryID,
		Checked:        false,
		Important:      tpl.Required,
		IsCustom:       false,
	}
}

// ByCategory returns the items of checklist belonging to categoryID, in order.
func ByCategory(checklist []domain.ChecklistItem, categoryID string) []domain.ChecklistItem {
	out := []domain.ChecklistItem{}
	for _, it := range checklist {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out
}

// Summarize counts total and checked items per category, following the
// order of categories. Categories with no items are omitted. Items whose
// category is not listed are grouped at the end under their own id, in
// first-seen order, so counts always add up to len(checklist).
func Summarize(checklist []domain.ChecklistItem, categories []domain.Category) []domain.CategoryProgress {
	counts := make(map[string]*domain.CategoryProgress)
	var extra []string
	for _, it := range checklist {
		cp, ok := counts[it.CategoryID]
		if !ok {
			cp = &domain.CategoryProgress{CategoryID: it.CategoryID}
			counts[it.CategoryID] = cp
			extra = append(extra, it.CategoryID)
		}
		cp.Total++
		if it.Checked {
			cp.Checked++
		}
	}

	out := []domain.CategoryProgress{}
	listed := make(map[string]bool, len(categories))
	for _, cat := range categories {
		listed[cat.ID] = true
		if cp, ok := counts[cat.ID]; ok {
			out = append(out, *cp)
		}
	}
	for _, id := range extra {
		if !listed[id] {
			out = append(out, *counts[id])
		}
	}
	return out
}
