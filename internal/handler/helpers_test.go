package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-checklist/internal/catalog"
	"github.com/pkordes/trip-checklist/internal/checklist"
	"github.com/pkordes/trip-checklist/internal/domain"
	"github.com/pkordes/trip-checklist/internal/handler"
	"github.com/pkordes/trip-checklist/internal/repo"
	"github.com/pkordes/trip-checklist/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	listPaged       func(params domain.PaginationParams) ([]domain.Trip, int)
	get             func(id string) (domain.Trip, error)
	progress        func(id string) int
	createTrip      func(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	updateTrip      func(ctx context.Context, id string, patch domain.TripPatch) error
	deleteTrip      func(ctx context.Context, id string) error
	reset           func(ctx context.Context) error
	toggleCheckItem func(ctx context.Context, tripID, itemID string) error
	toggleImportant func(ctx context.Context, tripID, itemID string) error
	addCustomItem   func(ctx context.Context, tripID, categoryID, title string) (domain.ChecklistItem, error)
	deleteCheckItem func(ctx context.Context, tripID, itemID string) error
}

func (m *mockTripServicer) ListPaged(p domain.PaginationParams) ([]domain.Trip, int) {
	return m.listPaged(p)
}
func (m *mockTripServicer) Get(id string) (domain.Trip, error) { return m.get(id) }
func (m *mockTripServicer) Progress(id string) int {
	if m.progress == nil {
		return 0
	}
	return m.progress(id)
}
func (m *mockTripServicer) CreateTrip(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return m.createTrip(ctx, in)
}
func (m *mockTripServicer) UpdateTrip(ctx context.Context, id string, p domain.TripPatch) error {
	return m.updateTrip(ctx, id, p)
}
func (m *mockTripServicer) DeleteTrip(ctx context.Context, id string) error {
	return m.deleteTrip(ctx, id)
}
func (m *mockTripServicer) Reset(ctx context.Context) error { return m.reset(ctx) }
func (m *mockTripServicer) ToggleCheckItem(ctx context.Context, tripID, itemID string) error {
	return m.toggleCheckItem(ctx, tripID, itemID)
}
func (m *mockTripServicer) ToggleImportant(ctx context.Context, tripID, itemID string) error {
	return m.toggleImportant(ctx, tripID, itemID)
}
func (m *mockTripServicer) AddCustomItem(ctx context.Context, tripID, categoryID, title string) (domain.ChecklistItem, error) {
	return m.addCustomItem(ctx, tripID, categoryID, title)
}
func (m *mockTripServicer) DeleteCheckItem(ctx context.Context, tripID, itemID string) error {
	return m.deleteCheckItem(ctx, tripID, itemID)
}

// compile-time checks: the mock and the real services satisfy the handler interfaces.
var (
	_ handler.TripServicer    = (*mockTripServicer)(nil)
	_ handler.TripServicer    = (*service.TripService)(nil)
	_ handler.CatalogServicer = (*service.CatalogService)(nil)
	_ handler.Exporter        = (*service.ExportService)(nil)
)

// stubExporter returns a fixed export table.
type stubExporter []domain.ExportRow

func (s stubExporter) Export() []domain.ExportRow { return s }

// ---- helpers ---------------------------------------------------------------

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]domain.ItemTemplate{
			{ID: "passport", Title: "Passport", CategoryID: "documents", Required: true},
			{ID: "tickets", Title: "Tickets", CategoryID: "documents", Required: true},
			{ID: "beach_gear", Title: "Beach gear", CategoryID: "outdoor", Tags: []string{"beach"}},
			{ID: "winter_coat", Title: "Winter coat", CategoryID: "clothing", Tags: []string{"cold"}},
		},
		[]domain.TravelType{
			{ID: "beach_trip", TitleKo: "휴양지", IncludeTags: []string{"beach"}},
		},
		[]domain.Category{
			{ID: "documents", TitleKo: "서류"},
			{ID: "clothing", TitleKo: "의류"},
			{ID: "outdoor", TitleKo: "야외활동"},
		},
	)
	require.NoError(t, err)
	return c
}

// newMockHandler wires a Server around a mocked trip store and the test catalog.
func newMockHandler(t *testing.T, trips handler.TripServicer) http.Handler {
	t.Helper()
	srv := handler.NewServer(trips, service.NewCatalogService(testCatalog(t)), stubExporter(nil))
	return srv.Routes()
}

// stack is a Server backed by the real services over an in-memory store.
type stack struct {
	http  http.Handler
	trips *service.TripService
}

func newStack(t *testing.T) stack {
	t.Helper()
	c := testCatalog(t)
	trips := service.NewTripService(
		repo.NewTripRepo(repo.NewMemoryStore()),
		checklist.NewGenerator(c),
		service.WithClock(func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }),
	)
	trips.Load(context.Background())
	srv := handler.NewServer(trips, service.NewCatalogService(c), service.NewExportService(trips))
	return stack{http: srv.Routes(), trips: trips}
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func do(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type tripBody struct {
	domain.Trip
	Progress         int                       `json:"progress"`
	CategoryProgress []domain.CategoryProgress `json:"categoryProgress"`
}

func beachRequest() map[string]any {
	return map[string]any{
		"title":       "Bali",
		"destination": map[string]string{"country": "Indonesia", "city": ""},
		"startDate":   "2025-08-01",
		"endDate":     "2025-08-10",
		"type":        "beach_trip",
	}
}

func (s stack) create(t *testing.T) tripBody {
	t.Helper()
	rec := do(s.http, http.MethodPost, "/trips", jsonBody(t, beachRequest()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[tripBody](t, rec)
}
