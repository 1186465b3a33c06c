package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/okanevale/temperament/internal/domain"
	"github.com/okanevale/temperament/internal/service"
)

type DecisionHandler struct {
	engine   *service.PersonalityEngine
	decision *service.DecisionService
}

func NewDecisionHandler(engine *service.PersonalityEngine, decision *service.DecisionService) *DecisionHandler {
	return &DecisionHandler{engine: engine, decision: decision}
}

// Context returns the unified decision context without invoking the LLM.
func (h *DecisionHandler) Context(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.DecisionContext())
}

type decideRequest struct {
	Content []domain.ContentItem `json:"content"`
}

// Decide runs the full decision cycle over a content batch.
func (h *DecisionHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action := h.decision.DecideAction(r.Context(), req.Content)

	writeJSON(w, http.StatusOK, action)
}
