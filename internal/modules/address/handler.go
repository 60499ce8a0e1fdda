package address

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/packline/packline-backend/internal/httpctx"
)

// Handler exposes saved-address HTTP endpoints. All routes require auth.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Route("/api/v1/addresses", func(r chi.Router) {
		r.Get("/", h.list)                    // GET    /api/v1/addresses
		r.Post("/", h.create)                 // POST   /api/v1/addresses
		r.Put("/{id}", h.update)              // PUT    /api/v1/addresses/{id}
		r.Delete("/{id}", h.delete)           // DELETE /api/v1/addresses/{id}
		r.Post("/{id}/default", h.setDefault) // POST   /api/v1/addresses/{id}/default
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.service.ListAddresses(r.Context(), httpctx.UserID(r.Context()))
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, addresses)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	a, err := h.service.CreateAddress(r.Context(), httpctx.UserID(r.Context()), req)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, a)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req SaveAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	a, err := h.service.UpdateAddress(r.Context(), httpctx.UserID(r.Context()), id, req)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, a)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteAddress(r.Context(), httpctx.UserID(r.Context()), id); err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "address deleted"})
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	addresses, err := h.service.SetDefaultAddress(r.Context(), httpctx.UserID(r.Context()), id)
	if err != nil {
		respond(w, statusForError(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, addresses)
}

func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "required") || strings.Contains(msg, "invalid"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
