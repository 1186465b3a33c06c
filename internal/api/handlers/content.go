package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/okanevale/temperament/internal/domain"
	"github.com/okanevale/temperament/internal/service"
)

type ContentHandler struct {
	engine *service.PersonalityEngine
}

func NewContentHandler(engine *service.PersonalityEngine) *ContentHandler {
	return &ContentHandler{engine: engine}
}

type processContentRequest struct {
	Content []domain.ContentItem `json:"content"`
}

// Process runs a batch of observed content through the emotion and
// memory subsystems.
func (h *ContentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Content) == 0 {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	h.engine.ProcessContent(r.Context(), req.Content)

	writeJSON(w, http.StatusOK, map[string]any{
		"processed": len(req.Content),
		"emotion":   h.engine.CurrentEmotion(),
	})
}

type recordActionRequest struct {
	Action domain.Action        `json:"action"`
	Result *domain.ActionResult `json:"result,omitempty"`
}

// RecordAction stores one of the agent's own actions in memory.
func (h *ContentHandler) RecordAction(w http.ResponseWriter, r *http.Request) {
	var req recordActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action.Kind {
	case domain.ActionMessage, domain.ActionPost, domain.ActionResponse:
	default:
		writeError(w, http.StatusBadRequest, "action type must be message, post or response")
		return
	}

	h.engine.RecordAction(r.Context(), req.Action, req.Result)

	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}
