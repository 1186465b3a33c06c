package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okanevale/temperament/internal/service"
)

type MemoryHandler struct {
	engine *service.PersonalityEngine
}

func NewMemoryHandler(engine *service.PersonalityEngine) *MemoryHandler {
	return &MemoryHandler{engine: engine}
}

// GetRelationship returns the stored relationship for a counterpart.
// Unknown counterparts get the zero-familiarity default.
func (h *MemoryHandler) GetRelationship(w http.ResponseWriter, r *http.Request) {
	counterpart := chi.URLParam(r, "counterpart")
	if counterpart == "" {
		writeError(w, http.StatusBadRequest, "counterpart is required")
		return
	}

	writeJSON(w, http.StatusOK, h.engine.Relationship(counterpart))
}

type updateRelationshipRequest struct {
	Familiarity *float64 `json:"familiarity,omitempty"`
	Sentiment   *float64 `json:"sentiment,omitempty"`
}

// UpdateRelationship sets relationship fields directly.
func (h *MemoryHandler) UpdateRelationship(w http.ResponseWriter, r *http.Request) {
	counterpart := chi.URLParam(r, "counterpart")
	if counterpart == "" {
		writeError(w, http.StatusBadRequest, "counterpart is required")
		return
	}

	var req updateRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.engine.UpdateRelationship(r.Context(), counterpart, req.Familiarity, req.Sentiment)

	writeJSON(w, http.StatusOK, h.engine.Relationship(counterpart))
}

// GetTopic returns the stored preference for a topic, 404 when the topic
// has never been observed.
func (h *MemoryHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	pref, ok := h.engine.TopicPreference(topic)
	if !ok {
		writeError(w, http.StatusNotFound, "topic not found")
		return
	}

	writeJSON(w, http.StatusOK, pref)
}

type updateTopicRequest struct {
	InterestLevel  *float64 `json:"interest_level,omitempty"`
	EngagementRate *float64 `json:"engagement_rate,omitempty"`
}

// UpdateTopic sets topic preference fields directly.
func (h *MemoryHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	var req updateTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.engine.UpdateTopicPreference(r.Context(), topic, req.InterestLevel, req.EngagementRate)

	pref, _ := h.engine.TopicPreference(topic)
	writeJSON(w, http.StatusOK, pref)
}

// ListInteractions returns recent interactions, optionally filtered by
// counterpart.
func (h *MemoryHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	if counterpart := r.URL.Query().Get("counterpart"); counterpart != "" {
		writeJSON(w, http.StatusOK, h.engine.InteractionsWith(counterpart))
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	writeJSON(w, http.StatusOK, h.engine.RecentInteractions(limit))
}
