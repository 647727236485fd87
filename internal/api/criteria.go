package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/schema"
)

type CriteriaHandler struct {
	session *core.Session
}

func NewCriteriaHandler(session *core.Session) *CriteriaHandler {
	return &CriteriaHandler{session: session}
}

// SetWeightRequest accepts the weight as a JSON number or a numeric string.
type SetWeightRequest struct {
	Weight json.RawMessage `json:"weight"`
}

func (h *CriteriaHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Criteria())
}

func (h *CriteriaHandler) SetWeight(w http.ResponseWriter, r *http.Request) {
	var req SetWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	raw, ok := rawNumber(req.Weight)
	if !ok {
		writeError(w, http.StatusBadRequest, "weight required")
		return
	}

	updated, err := h.session.SetWeight(chi.URLParam(r, "name"), raw)
	switch {
	case errors.Is(err, schema.ErrUnknownCriterion):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

// rawNumber unwraps a JSON number or string into the text the session parses.
func rawNumber(msg json.RawMessage) (string, bool) {
	if len(msg) == 0 || string(msg) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err == nil {
		return n.String(), true
	}
	return "", false
}
