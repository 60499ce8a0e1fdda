package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const defaultTopProducts = 5

// Handler exposes the admin analytics endpoint.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/api/admin/analytics", h.query) // GET /api/admin/analytics?type=revenue&from=&to=&limit=
}

func (h *Handler) query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Default window: the trailing 30 days.
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid from date"})
			return
		}
		from = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "invalid to date"})
			return
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		respond(w, http.StatusBadRequest, map[string]string{"error": "to must not precede from"})
		return
	}

	var (
		result interface{}
		err    error
	)
	switch q.Get("type") {
	case "revenue":
		result, err = h.service.Revenue(r.Context(), from, to)
	case "ordersByWeekday":
		result, err = h.service.OrdersByWeekday(r.Context(), from, to)
	case "ordersByStatus":
		result, err = h.service.OrdersByStatus(r.Context(), from, to)
	case "topProducts":
		limit := defaultTopProducts
		if v := q.Get("limit"); v != "" {
			n, convErr := strconv.Atoi(v)
			if convErr != nil || n <= 0 {
				respond(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}
		result, err = h.service.TopProducts(r.Context(), from, to, limit)
	default:
		respond(w, http.StatusBadRequest, map[string]string{
			"error": "type must be one of revenue, ordersByWeekday, ordersByStatus, topProducts",
		})
		return
	}

	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
