package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ananya/saathi/internal/db"
	"github.com/ananya/saathi/internal/planner"
)

type createPlannerRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func (h *Handler) handleListPlanner(w http.ResponseWriter, r *http.Request) {
	items, err := h.planner.List()
	if err != nil {
		log.Printf("api: listing planner items: %v", err)
		Error(w, http.StatusInternalServerError, "could not list planner items")
		return
	}
	if items == nil {
		items = []db.PlannerItem{}
	}
	JSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) handleCreatePlannerItem(w http.ResponseWriter, r *http.Request) {
	var req createPlannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item, err := h.planner.Create(req.Title, req.Date, req.Time, req.Notes)
	if err != nil {
		if errors.Is(err, planner.ErrEmptyTitle) {
			Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("api: creating planner item: %v", err)
		Error(w, http.StatusInternalServerError, "could not create planner item")
		return
	}
	JSON(w, http.StatusCreated, item)
}

func (h *Handler) handleCompletePlannerItem(w http.ResponseWriter, r *http.Request) {
	id, ok := plannerID(w, r)
	if !ok {
		return
	}
	done, err := h.planner.Complete(id)
	if err != nil {
		log.Printf("api: completing planner item %d: %v", id, err)
		Error(w, http.StatusInternalServerError, "could not complete planner item")
		return
	}
	if !done {
		Error(w, http.StatusNotFound, "planner item not found")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (h *Handler) handleDeletePlannerItem(w http.ResponseWriter, r *http.Request) {
	id, ok := plannerID(w, r)
	if !ok {
		return
	}
	done, err := h.planner.Delete(id)
	if err != nil {
		log.Printf("api: deleting planner item %d: %v", id, err)
		Error(w, http.StatusInternalServerError, "could not delete planner item")
		return
	}
	if !done {
		Error(w, http.StatusNotFound, "planner item not found")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleExportPlanner(w http.ResponseWriter, r *http.Request) {
	text, err := h.planner.Export()
	if err != nil {
		log.Printf("api: exporting planner: %v", err)
		Error(w, http.StatusInternalServerError, "could not export planner")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func plannerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid planner item id")
		return 0, false
	}
	return id, true
}
