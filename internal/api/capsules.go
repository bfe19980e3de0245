package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ananya/saathi/internal/capsule"
	"github.com/ananya/saathi/internal/db"
)

type createCapsuleRequest struct {
	Message     string `json:"message"`
	ScheduledAt string `json:"scheduled_at"`
}

type updateCapsuleRequest struct {
	Message     *string `json:"message"`
	ScheduledAt *string `json:"scheduled_at"`
}

type sweepRequest struct {
	Now string `json:"now"`
}

type sweepResponse struct {
	DeliveredCount int      `json:"delivered_count"`
	DeliveredIDs   []string `json:"delivered_ids"`
}

func (h *Handler) handleCreateCapsule(w http.ResponseWriter, r *http.Request) {
	var req createCapsuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c, err := h.capsules.Create(req.Message, req.ScheduledAt)
	if err != nil {
		writeCapsuleError(w, err)
		return
	}
	JSON(w, http.StatusCreated, c)
}

func (h *Handler) handleListCapsules(w http.ResponseWriter, r *http.Request) {
	pendingOnly := r.URL.Query().Get("filter") == "pending"
	capsules, err := h.capsules.List(pendingOnly)
	if err != nil {
		log.Printf("api: listing capsules: %v", err)
		Error(w, http.StatusInternalServerError, "could not list capsules")
		return
	}
	if capsules == nil {
		capsules = []db.Capsule{}
	}
	JSON(w, http.StatusOK, map[string]any{"capsules": capsules})
}

func (h *Handler) handleUpdateCapsule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateCapsuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c, err := h.capsules.Update(id, capsule.UpdateFields{
		Message:     req.Message,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		writeCapsuleError(w, err)
		return
	}
	JSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCapsule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.capsules.Delete(id); err != nil {
		writeCapsuleError(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleSweep triggers delivery explicitly. The optional now makes the
// sweep reproducible from the outside; absent, wall-clock time is used.
func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Now != "" {
		parsed, err := capsule.ParseScheduledAt(req.Now)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid now: not an ISO date or date-time")
			return
		}
		now = parsed
	}

	delivered, err := h.capsules.Sweep(now)
	if err != nil {
		log.Printf("api: sweep: %v", err)
		Error(w, http.StatusInternalServerError, "sweep failed")
		return
	}
	resp := sweepResponse{DeliveredCount: len(delivered), DeliveredIDs: []string{}}
	for _, d := range delivered {
		resp.DeliveredIDs = append(resp.DeliveredIDs, d.ID)
	}
	JSON(w, http.StatusOK, resp)
}

func writeCapsuleError(w http.ResponseWriter, err error) {
	var verr *capsule.ValidationError
	switch {
	case errors.As(err, &verr):
		Error(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, capsule.ErrNotFound):
		Error(w, http.StatusNotFound, "capsule not found")
	default:
		log.Printf("api: capsule operation: %v", err)
		Error(w, http.StatusInternalServerError, "capsule operation failed")
	}
}
