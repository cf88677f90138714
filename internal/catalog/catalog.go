// Package catalog loads the read-only reference data the checklist generator
// consumes: item templates, travel types and categories.
//
// The catalog is loaded once at startup and validated against its expected
// shape. A malformed catalog is a fatal configuration error (domain.ErrCatalog),
// unlike a malformed trip payload, which the trip store tolerates.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// File names looked up in a catalog directory.
const (
	CategoriesFile  = "categories.json"
	TravelTypesFile = "travel_types.json"
	ItemsFile       = "checklist_items.json"
)

//go:embed data/*.json
var embedded embed.FS

// Catalog is the validated, immutable reference data.
// All list accessors preserve file order.
type Catalog struct {
	items       []domain.ItemTemplate
	travelTypes []domain.TravelType
	categories  []domain.Category

	travelTypeByID map[string]domain.TravelType
	categoryByID   map[string]domain.Category
}

// Default returns the catalog shipped inside the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog.Default: %w", err)
	}
	return Load(sub)
}

// Open loads the catalog from dir, falling back to the embedded file for any
// of the three documents dir does not contain. An empty dir means Default.
func Open(dir string) (*Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog.Open: %w: %w", domain.ErrCatalog, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog.Open: %w: %s is not a directory", domain.ErrCatalog, dir)
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("catalog.Open: %w", err)
	}
	return Load(overlayFS{primary: os.DirFS(filepath.Clean(dir)), fallback: sub})
}

// Load decodes and validates the three catalog documents found in fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	if err := decodeFile(fsys, CategoriesFile, &c.categories); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, TravelTypesFile, &c.travelTypes); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, ItemsFile, &c.items); err != nil {
		return nil, err
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustDefault is Default for tests and tools that cannot recover from a
// broken embedded catalog anyway.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic("catalog.MustDefault: " + err.Error())
	}
	return c
}

// New builds a catalog from in-memory lists, applying the same validation
// as Load. Tests use it to pin down small fixtures.
func New(items []domain.ItemTemplate, travelTypes []domain.TravelType, categories []domain.Category) (*Catalog, error) {
	c := &Catalog{
		items:       append([]domain.ItemTemplate(nil), items...),
		travelTypes: append([]domain.TravelType(nil), travelTypes...),
		categories:  append([]domain.Category(nil), categories...),
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

// Items returns every item template in catalog order.
func (c *Catalog) Items() []domain.ItemTemplate {
	return append([]domain.ItemTemplate(nil), c.items...)
}

// ItemsByTag returns the templates carrying tag, in catalog order.
func (c *Catalog) ItemsByTag(tag string) []domain.ItemTemplate {
	out := []domain.ItemTemplate{}
	for _, it := range c.items {
		if it.HasAnyTag([]string{tag}) {
			out = append(out, it)
		}
	}
	return out
}

// TravelTypes returns every travel type in catalog order.
func (c *Catalog) TravelTypes() []domain.TravelType {
	return append([]domain.TravelType(nil), c.travelTypes...)
}

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []domain.Category {
	return append([]domain.Category(nil), c.categories...)
}

// TravelType looks up a travel type by id.
func (c *Catalog) TravelType(id string) (domain.TravelType, bool) {
	tt, ok := c.travelTypeByID[id]
	return tt, ok
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (domain.Category, bool) {
	cat, ok := c.categoryByID[id]
	return cat, ok
}

// index validates the lists and builds the lookup maps.
func (c *Catalog) index() error {
	var problems []string

	c.categoryByID = make(map[string]domain.Category, len(c.categories))
	for i, cat := range c.categories {
		switch {
		case strings.TrimSpace(cat.ID) == "":
			problems = append(problems, fmt.Sprintf("categories[%d]: id is required", i))
		case hasKey(c.categoryByID, cat.ID):
			problems = append(problems, fmt.Sprintf("categories[%d]: duplicate id %q", i, cat.ID))
		default:
			c.categoryByID[cat.ID] = cat
		}
		if strings.TrimSpace(cat.TitleKo) == "" {
			problems = append(problems, fmt.Sprintf("categories[%d]: titleKo is required", i))
		}
	}

	c.travelTypeByID = make(map[string]domain.TravelType, len(c.travelTypes))
	for i, tt := range c.travelTypes {
		switch {
		case strings.TrimSpace(tt.ID) == "":
			problems = append(problems, fmt.Sprintf("travel_types[%d]: id is required", i))
		case hasKey(c.travelTypeByID, tt.ID):
			problems = append(problems, fmt.Sprintf("travel_types[%d]: duplicate id %q", i, tt.ID))
		default:
			c.travelTypeByID[tt.ID] = tt
		}
		if strings.TrimSpace(tt.TitleKo) == "" {
			problems = append(problems, fmt.Sprintf("travel_types[%d]: titleKo is required", i))
		}
	}

	seen := make(map[string]struct{}, len(c.items))
	for i, it := range c.items {
		if strings.TrimSpace(it.ID) == "" {
			problems = append(problems, fmt.Sprintf("checklist_items[%d]: id is required", i))
		} else if _, dup := seen[it.ID]; dup {
			problems = append(problems, fmt.Sprintf("checklist_items[%d]: duplicate id %q", i, it.ID))
		}
		seen[it.ID] = struct{}{}
		if strings.TrimSpace(it.Title) == "" {
			problems = append(problems, fmt.Sprintf("checklist_items[%d]: title is required", i))
		}
		if !hasKey(c.categoryByID, it.CategoryID) {
			problems = append(problems, fmt.Sprintf("checklist_items[%d]: unknown categoryId %q", i, it.CategoryID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrCatalog, strings.Join(problems, "; "))
	}
	return nil
}

func hasKey[V any](m map[string]V, k string) bool {
	_, ok := m[k]
	return ok
}

// decodeFile strictly decodes one JSON document. Unknown fields and trailing
// data are rejected so typos in the catalog surface at startup.
func decodeFile(fsys fs.FS, name string, dst any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", domain.ErrCatalog, name, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrCatalog, name, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: decode %s: trailing data", domain.ErrCatalog, name)
	}
	return nil
}

// overlayFS serves files from primary when present, otherwise from fallback.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return o.fallback.Open(name)
	}
	return nil, err
}
