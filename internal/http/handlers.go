// Package http serves the forecast snapshot over a small JSON API.
package http

import (
	"encoding/json"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"theater-run-service/internal/app/movies"
	"theater-run-service/internal/domain"
	"theater-run-service/internal/timeutil"
)

type nowFunc func() time.Time

// ReadinessChecker reports whether the service has usable data.
type ReadinessChecker interface {
	IsReady() bool
}

// Handler wires HTTP routes to the movies service.
type Handler struct {
	svc    *movies.Service
	ready  ReadinessChecker
	logger *slog.Logger
	now    nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *movies.Service, ready ReadinessChecker, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		ready:  ready,
		logger: logger,
		now:    time.Now,
	}
}

// forecastView is the wire shape of a forecast. The predicted end date is
// rendered as a date string or null, and runs that have already ended are
// flagged so clients can show "TBD" instead of a stale date.
type forecastView struct {
	Movie            domain.Movie      `json:"movie"`
	Prediction       domain.Prediction `json:"prediction"`
	PredictedEndDate *string           `json:"predicted_end_date"`
	Ended            bool              `json:"ended"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

func (h *Handler) viewOf(f domain.Forecast) forecastView {
	view := forecastView{
		Movie:       f.Movie,
		Prediction:  f.Prediction,
		GeneratedAt: f.GeneratedAt,
	}
	if f.Prediction.HasEstimate {
		date := timeutil.FormatDate(f.Prediction.PredictedEndDate)
		view.PredictedEndDate = &date
		view.Ended = f.Prediction.Ended(timeutil.Midnight(h.now()))
	}
	return view
}

// moviesResponse is the listing payload.
type moviesResponse struct {
	Date   string         `json:"date"`
	Count  int            `json:"count"`
	Movies []forecastView `json:"movies"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether a forecast snapshot is available to serve.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.ready != nil && !h.ready.IsReady() {
		h.writeJSON(w, nethttp.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
}

// Movies returns the current snapshot of forecasts, most popular first.
// An optional title query narrows the listing.
func (h *Handler) Movies(w nethttp.ResponseWriter, r *nethttp.Request) {
	forecasts := h.svc.FilterByTitle(r.URL.Query().Get("title"))

	views := make([]forecastView, 0, len(forecasts))
	for _, f := range forecasts {
		views = append(views, h.viewOf(f))
	}

	h.writeJSON(w, nethttp.StatusOK, moviesResponse{
		Date:   timeutil.FormatDate(h.now()),
		Count:  len(views),
		Movies: views,
	})
}

// MovieByID returns a specific forecast if present.
func (h *Handler) MovieByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		h.writeError(w, nethttp.StatusBadRequest, "invalid movie id")
		return
	}

	forecast, ok := h.svc.ForecastByID(id)
	if !ok {
		h.writeError(w, nethttp.StatusNotFound, "movie not found")
		return
	}

	h.writeJSON(w, nethttp.StatusOK, h.viewOf(forecast))
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
