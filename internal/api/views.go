package api

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

var exportContentTypes = map[schema.ExportFormat]string{
	schema.XLSXExport:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	schema.CSVExport:     "text/csv; charset=utf-8",
	schema.PDFExport:     "application/pdf",
	schema.JSONExport:    "application/json",
	schema.ParquetExport: "application/vnd.apache.parquet",
}

type ViewsHandler struct {
	session *core.Session
	mgr     contract.HistoryManager
	logger  *slog.Logger
}

func NewViewsHandler(session *core.Session, mgr contract.HistoryManager, logger *slog.Logger) *ViewsHandler {
	return &ViewsHandler{session: session, mgr: mgr, logger: logger}
}

func (h *ViewsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))
	dash := h.session.Dashboard(explain)
	core.RecordSessionRun(core.WithLogger(r.Context(), h.logger), h.mgr, h.session, "dashboard", start, dash.Entries)
	writeJSON(w, http.StatusOK, dash)
}

func (h *ViewsHandler) CompareOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"options": h.session.ComparisonOptions()})
}

// Compare ranks the entities named by repeated "name" parameters, or every entity when none are given.
func (h *ViewsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	names := r.URL.Query()["name"]
	if len(names) == 0 {
		names = h.session.ComparisonOptions()
	}

	comparison, err := h.session.Compare(names)
	if errors.Is(err, schema.ErrUnknownEntity) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	core.RecordSessionRun(core.WithLogger(r.Context(), h.logger), h.mgr, h.session, "compare", start, core.RankedEntries(h.session, comparison))
	writeJSON(w, http.StatusOK, comparison)
}

// Export streams the store as an attachment. An empty store is a conflict, not a server error.
func (h *ViewsHandler) Export(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	format := schema.ExportFormat(chi.URLParam(r, "format"))
	if _, ok := schema.ValidExportFormats[format]; !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %s", schema.ErrUnsupportedFormat, format))
		return
	}

	var buf bytes.Buffer
	err := h.session.Export(&buf, format)
	if errors.Is(err, schema.ErrEmptyStore) {
		writeError(w, http.StatusConflict, err.Error()+". Please add some entries first")
		return
	}
	if err != nil {
		h.logger.Error("export failed", "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	exportsTotal.WithLabelValues(string(format)).Inc()
	core.RecordSessionRun(core.WithLogger(r.Context(), h.logger), h.mgr, h.session, "export", start, h.session.Dashboard(false).Entries)

	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", schema.DefaultExportFiles[format]))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
