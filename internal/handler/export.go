package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/trip-checklist/internal/domain"
)

// GetExport implements GET /export: every trip and checklist item as a flat
// table. ?format=csv returns CSV; the default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if !queryParam(w, r, "format", &format) {
		return
	}

	switch {
	case format == nil || *format == "json":
		writeJSON(w, http.StatusOK, s.export.Export())
	case *format == "csv":
		body := buildCSV(s.export.Export())
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = body.WriteTo(w)
	default:
		badRequest(w, "format must be json or csv")
	}
}

// buildCSV encodes rows as CSV with a header line.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(domain.ExportCSVHeader)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(r.CSVRecord())
	}
	cw.Flush()
	return &buf
}
