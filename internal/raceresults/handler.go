package raceresults

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libraria/pkg/platform/httputil"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the race list. Paths other than /, /country and /name get
// a 400 with a JSON error body.
type Handler struct {
	races  []Race
	logger *slog.Logger
}

func NewHandler(races []Race, logger *slog.Logger) *Handler {
	return &Handler{races: races, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.HandleFunc("/", h.handleAll)
	r.HandleFunc("/country", h.handleByCountry)
	r.HandleFunc("/name", h.handleByName)
	r.NotFound(h.handleBadRequest)
	r.MethodNotAllowed(h.handleBadRequest)
}

func (h *Handler) handleAll(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.races)
}

func (h *Handler) handleByCountry(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, GroupByCountry(h.races))
}

func (h *Handler) handleByName(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, GroupByName(h.races))
}

func (h *Handler) handleBadRequest(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "unknown race results path", "path", r.URL.Path)
	httputil.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: "Bad Request"})
}
