package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ananya/saathi/internal/db"
)

type chatRequest struct {
	Message string `json:"message"`
}

// handleChat runs one conversation turn. Provider trouble never surfaces
// here; the orchestrator degrades it to an offline reply, so an error
// from Respond means persistence failed.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reply, err := h.chat.Respond(r.Context(), strings.TrimSpace(req.Message))
	if err != nil {
		log.Printf("api: chat turn: %v", err)
		Error(w, http.StatusInternalServerError, "could not complete the turn")
		return
	}
	JSON(w, http.StatusOK, reply)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	entries, err := h.chat.Transcript()
	if err != nil {
		log.Printf("api: listing transcript: %v", err)
		Error(w, http.StatusInternalServerError, "could not read transcript")
		return
	}
	if entries == nil {
		entries = []db.TranscriptEntry{}
	}
	JSON(w, http.StatusOK, map[string]any{"entries": entries})
}
