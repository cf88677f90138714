package service

import (
	"strings"

	"github.com/pkordes/trip-checklist/internal/checklist"
	"github.com/pkordes/trip-checklist/internal/domain"
)

// CatalogReader is the read side of *catalog.Catalog.
type CatalogReader interface {
	Items() []domain.ItemTemplate
	ItemsByTag(tag string) []domain.ItemTemplate
	TravelTypes() []domain.TravelType
	Categories() []domain.Category
}

// CatalogService exposes the reference catalogs to the presentation layer.
type CatalogService struct {
	catalog CatalogReader
}

// NewCatalogService constructs a CatalogService over c.
func NewCatalogService(c CatalogReader) *CatalogService {
	return &CatalogService{catalog: c}
}

// TravelTypes returns every travel type in catalog order.
func (s *CatalogService) TravelTypes() []domain.TravelType {
	return s.catalog.TravelTypes()
}

// Categories returns every category in catalog order.
func (s *CatalogService) Categories() []domain.Category {
	return s.catalog.Categories()
}

// Items returns the item templates carrying tag, or all of them when tag is
// blank. Tags are matched case-insensitively after trimming.
func (s *CatalogService) Items(tag string) []domain.ItemTemplate {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return s.catalog.Items()
	}
	return s.catalog.ItemsByTag(tag)
}

// CategoryProgress counts total and checked items of a checklist per
// category, in catalog category order.
func (s *CatalogService) CategoryProgress(items []domain.ChecklistItem) []domain.CategoryProgress {
	return checklist.Summarize(items, s.catalog.Categories())
}
