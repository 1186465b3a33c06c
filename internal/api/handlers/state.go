package handlers

import (
	"net/http"

	"github.com/okanevale/temperament/internal/service"
)

type StateHandler struct {
	engine *service.PersonalityEngine
}

func NewStateHandler(engine *service.PersonalityEngine) *StateHandler {
	return &StateHandler{engine: engine}
}

// Save persists the personality record with all learning updates.
func (h *StateHandler) Save(w http.ResponseWriter, r *http.Request) {
	if !h.engine.SaveState(r.Context()) {
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// GetEmotion returns the current decayed emotional state.
func (h *StateHandler) GetEmotion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.CurrentEmotion())
}
