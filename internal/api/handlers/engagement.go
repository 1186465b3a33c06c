package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/okanevale/temperament/internal/domain"
	"github.com/okanevale/temperament/internal/service"
)

type EngagementHandler struct {
	engine *service.PersonalityEngine
}

func NewEngagementHandler(engine *service.PersonalityEngine) *EngagementHandler {
	return &EngagementHandler{engine: engine}
}

type recordEngagementRequest struct {
	Content string                   `json:"content"`
	Metrics domain.EngagementMetrics `json:"metrics"`
	Topics  []string                 `json:"topics,omitempty"`
}

// Record scores engagement metrics for a piece of content and feeds the
// result into the learning system.
func (h *EngagementHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req recordEngagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	score := h.engine.RecordEngagement(r.Context(), req.Content, req.Metrics, req.Topics)

	writeJSON(w, http.StatusOK, map[string]float64{"engagement_score": score})
}

// UpdateInterests promotes consistently high-performing topics into the
// interest list.
func (h *EngagementHandler) UpdateInterests(w http.ResponseWriter, r *http.Request) {
	h.engine.UpdateInterests(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"interests": h.engine.Personality().Interests})
}

// AdaptTone switches to the best-performing tone.
func (h *EngagementHandler) AdaptTone(w http.ResponseWriter, r *http.Request) {
	h.engine.AdaptTone(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"tone": h.engine.Personality().Tone})
}
