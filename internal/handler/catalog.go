package handler

import (
	"net/http"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// ListTravelTypes handles GET /catalog/travel-types.
func (s *Server) ListTravelTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.TravelTypes())
}

// ListCategories handles GET /catalog/categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Categories())
}

// ListItemTemplates handles GET /catalog/items.
// ?tag= narrows the result to templates carrying that tag.
func (s *Server) ListItemTemplates(w http.ResponseWriter, r *http.Request) {
	var tag *string
	if !queryParam(w, r, "tag", &tag) {
		return
	}
	var want string
	if tag != nil {
		want = *tag
	}
	items := s.catalog.Items(want)
	if items == nil {
		items = []domain.ItemTemplate{}
	}
	writeJSON(w, http.StatusOK, items)
}
