package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/The-ShambhaviPandey/Mausam/internal/conditions"
	"github.com/The-ShambhaviPandey/Mausam/internal/models"
	"github.com/The-ShambhaviPandey/Mausam/internal/owm"
	"github.com/The-ShambhaviPandey/Mausam/internal/realtime"
	"github.com/The-ShambhaviPandey/Mausam/internal/search"
	"github.com/The-ShambhaviPandey/Mausam/internal/store"
)

// DashboardLoader is the coordinator surface the handlers consume.
type DashboardLoader interface {
	Load(ctx context.Context, city string) (models.DashboardView, error)
	LoadByCoords(ctx context.Context, lat, lon float64) (models.DashboardView, error)
}

// Geocoder feeds the search suggestion endpoint.
type Geocoder interface {
	SearchLocations(ctx context.Context, query string, limit int) ([]models.Location, error)
}

// History is the optional persistence surface; a nil History disables the
// search log and observation endpoints gracefully.
type History interface {
	RecordSearch(query string, loc models.Location) (store.SearchRecord, error)
	RecentSearches(limit int) ([]store.SearchRecord, error)
	ObservationsForCity(cityKey string, limit int) ([]store.WeatherObservation, error)
}

type Server struct {
	loader   DashboardLoader
	geocoder Geocoder
	history  History
	hub      *realtime.Hub
}

func NewServer(loader DashboardLoader, geocoder Geocoder, history History, hub *realtime.Hub) *Server {
	return &Server{loader: loader, geocoder: geocoder, history: history, hub: hub}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", s.handleDashboard)
	r.Get("/weather", s.handleWeather)
	r.Get("/forecast/hourly", s.handleHourly)
	r.Get("/forecast/daily", s.handleDaily)
	r.Get("/air", s.handleAir)
	r.Get("/backdrop", s.handleBackdrop)
	r.Get("/search", s.handleSearch)
	r.Get("/searches/recent", s.handleRecentSearches)
	r.Get("/history", s.handleHistory)
}

// RegisterRealtime mounts the websocket endpoint outside the rate-limited
// API subtree.
func (s *Server) RegisterRealtime(r chi.Router) {
	if s.hub != nil {
		r.Get("/ws/dashboard", s.hub.ServeHTTP)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLoadError maps the gateway taxonomy onto HTTP statuses. Nothing
// here is a 500: a missing credential is a known degraded state and
// upstream trouble is a bad gateway.
func writeLoadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, owm.ErrMissingCredential):
		writeError(w, http.StatusServiceUnavailable, "weather api key is not configured")
	case owm.IsNotFound(err):
		writeError(w, http.StatusNotFound, "city not found")
	default:
		writeError(w, http.StatusBadGateway, "failed to fetch weather data")
	}
}

// resolveView loads the view for either a searched city or a coordinate
// pair. City takes precedence, mirroring the search-overrides-geolocation
// rule of the dashboard.
func (s *Server) resolveView(w http.ResponseWriter, r *http.Request) (models.DashboardView, bool) {
	city := search.NormalizeQuery(r.URL.Query().Get("city"))
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if city != "" {
		view, err := s.loader.Load(r.Context(), city)
		if err != nil {
			writeLoadError(w, err)
			return models.DashboardView{}, false
		}
		if s.history != nil {
			// Best effort; history never blocks the response.
			_, _ = s.history.RecordSearch(city, view.Location)
		}
		return view, true
	}

	if latStr == "" || lonStr == "" {
		writeError(w, http.StatusBadRequest, "location is required (provide lat/lon or city)")
		return models.DashboardView{}, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat parameter")
		return models.DashboardView{}, false
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lon parameter")
		return models.DashboardView{}, false
	}

	view, err := s.loader.LoadByCoords(r.Context(), lat, lon)
	if err != nil {
		writeLoadError(w, err)
		return models.DashboardView{}, false
	}
	return view, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, ok := s.resolveView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	view, ok := s.resolveView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"location":    view.Location,
		"current":     view.Current,
		"readouts":    view.Readouts,
		"description": view.Description,
		"condition":   view.ConditionKey,
	})
}

func (s *Server) handleHourly(w http.ResponseWriter, r *http.Request) {
	view, ok := s.resolveView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view.Hourly)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	view, ok := s.resolveView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view.Daily)
}

func (s *Server) handleAir(w http.ResponseWriter, r *http.Request) {
	view, ok := s.resolveView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"air": view.Air,
		"uv":  view.UV,
	})
}

type backdropResponse struct {
	Key         string       `json:"key"`
	TimeOfDay   string       `json:"time_of_day"`
	Media       models.Media `json:"media"`
	Description string       `json:"description"`
	Degraded    bool         `json:"degraded,omitempty"`
}

// handleBackdrop never returns an upstream error: any failure degrades to
// the default daytime backdrop so the page always has something to play.
func (s *Server) handleBackdrop(w http.ResponseWriter, r *http.Request) {
	var (
		view models.DashboardView
		err  error
	)

	city := search.NormalizeQuery(r.URL.Query().Get("city"))
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	switch {
	case city != "":
		view, err = s.loader.Load(r.Context(), city)
	case latStr != "" && lonStr != "":
		var lat, lon float64
		if lat, err = strconv.ParseFloat(latStr, 64); err == nil {
			if lon, err = strconv.ParseFloat(lonStr, 64); err == nil {
				view, err = s.loader.LoadByCoords(r.Context(), lat, lon)
			}
		}
	default:
		err = errors.New("no location provided")
	}

	if err != nil {
		writeJSON(w, http.StatusOK, backdropResponse{
			Key:         string(conditions.Default),
			TimeOfDay:   conditions.Day,
			Media:       conditions.Media(conditions.Default, conditions.Day),
			Description: conditions.Description(conditions.Default),
			Degraded:    true,
		})
		return
	}

	writeJSON(w, http.StatusOK, backdropResponse{
		Key:         view.ConditionKey,
		TimeOfDay:   view.TimeOfDay,
		Media:       view.Backdrop,
		Description: view.Description,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 10 {
			limit = l
		}
	}

	locations, err := s.geocoder.SearchLocations(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, owm.ErrMissingCredential) {
			writeError(w, http.StatusServiceUnavailable, "weather api key is not configured")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to search locations")
		return
	}

	// Plain array for frontend convenience.
	writeJSON(w, http.StatusOK, search.Suggestions(locations))
}

func (s *Server) handleRecentSearches(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, []store.SearchRecord{})
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	rows, err := s.history.RecentSearches(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list searches")
		return
	}
	if rows == nil {
		rows = []store.SearchRecord{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, http.StatusBadRequest, "query parameter 'city' is required")
		return
	}
	if s.history == nil {
		writeJSON(w, http.StatusOK, []store.WeatherObservation{})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	rows, err := s.history.ObservationsForCity(city, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list observations")
		return
	}
	if rows == nil {
		rows = []store.WeatherObservation{}
	}
	writeJSON(w, http.StatusOK, rows)
}
