package api

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/schema"
)

const maxUploadBytes = 32 << 20

type EntriesHandler struct {
	session *core.Session
}

func NewEntriesHandler(session *core.Session) *EntriesHandler {
	return &EntriesHandler{session: session}
}

type CreateEntryRequest struct {
	Name   string                     `json:"name"`
	Values map[string]json.RawMessage `json:"values"`
}

func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Entries())
}

func (h *EntriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := map[string]string{schema.NameColumn: req.Name}
	for key, msg := range req.Values {
		raw, ok := rawNumber(msg)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("value for %q must be a number", key))
			return
		}
		fields[key] = raw
	}

	entry, err := h.session.AddEntry(fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entriesAppended.WithLabelValues(schema.ManualSource).Inc()
	writeJSON(w, http.StatusCreated, entry)
}

// Import appends every uploaded "files" part in form order.
func (h *EntriesHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "files required")
		return
	}

	sources := make([]core.Source, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("open %s: %v", fh.Filename, err))
			return
		}
		opened = append(opened, f)
		sources = append(sources, core.Source{Name: fh.Filename, Reader: f})
	}

	report, err := h.session.ImportSources(r.Context(), sources)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	for _, f := range report.Files {
		if f.Error != "" {
			importedFiles.WithLabelValues("error").Inc()
			continue
		}
		importedFiles.WithLabelValues("ok").Inc()
	}
	entriesAppended.WithLabelValues("import").Add(float64(report.Appended()))
	writeJSON(w, http.StatusOK, report)
}
