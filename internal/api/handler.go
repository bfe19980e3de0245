// Package api provides the HTTP surface of the service.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ananya/saathi/internal/capsule"
	"github.com/ananya/saathi/internal/chat"
	"github.com/ananya/saathi/internal/planner"
)

// Handler wires the HTTP routes to the underlying services.
type Handler struct {
	chat     *chat.Service
	capsules *capsule.Service
	planner  *planner.Service
}

func NewHandler(chatSvc *chat.Service, capsuleSvc *capsule.Service, plannerSvc *planner.Service) *Handler {
	return &Handler{chat: chatSvc, capsules: capsuleSvc, planner: plannerSvc}
}

// Router builds the chi router for the service.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.handleHealth)
	r.Post("/chat", h.handleChat)
	r.Get("/transcript", h.handleTranscript)

	r.Route("/capsules", func(r chi.Router) {
		r.Post("/", h.handleCreateCapsule)
		r.Get("/", h.handleListCapsules)
		r.Post("/sweep", h.handleSweep)
		r.Patch("/{id}", h.handleUpdateCapsule)
		r.Delete("/{id}", h.handleDeleteCapsule)
	})

	r.Route("/planner", func(r chi.Router) {
		r.Get("/", h.handleListPlanner)
		r.Post("/", h.handleCreatePlannerItem)
		r.Get("/export", h.handleExportPlanner)
		r.Post("/{id}/complete", h.handleCompletePlannerItem)
		r.Delete("/{id}", h.handleDeletePlannerItem)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
