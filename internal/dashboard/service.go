// Package dashboard is the single data-loading coordinator. Instead of
// every panel fetching the same city independently, one load resolves the
// location, pulls current conditions, forecast, and air quality, and
// assembles the complete view the frontend renders. Loads are fingerprinted
// and cached; concurrent loads for one fingerprint are resolved by
// generation so a stale in-flight response never wins.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/cache"
	"github.com/The-ShambhaviPandey/Mausam/internal/conditions"
	"github.com/The-ShambhaviPandey/Mausam/internal/forecast"
	"github.com/The-ShambhaviPandey/Mausam/internal/format"
	"github.com/The-ShambhaviPandey/Mausam/internal/models"
	"github.com/The-ShambhaviPandey/Mausam/internal/observability"
	"github.com/The-ShambhaviPandey/Mausam/internal/owm"
)

// WeatherAPI is the slice of the gateway the coordinator needs.
type WeatherAPI interface {
	CurrentByCoords(ctx context.Context, lat, lon float64) (models.CurrentWeather, error)
	Forecast(ctx context.Context, lat, lon float64) (models.ForecastList, error)
	AirQuality(ctx context.Context, lat, lon float64) (models.AirQuality, error)
	SearchLocations(ctx context.Context, query string, limit int) ([]models.Location, error)
}

type Service struct {
	api   WeatherAPI
	cache *cache.Cache

	now func() time.Time
}

func NewService(api WeatherAPI, viewCache *cache.Cache) *Service {
	return &Service{api: api, cache: viewCache, now: time.Now}
}

// Load resolves a city name through geocoding (first match wins) and builds
// its dashboard view. A query with no match returns owm.NotFoundError.
func (s *Service) Load(ctx context.Context, city string) (models.DashboardView, error) {
	locations, err := s.api.SearchLocations(ctx, city, 1)
	observability.CountUpstream("geocode", err)
	if err != nil {
		return models.DashboardView{}, fmt.Errorf("resolving city: %w", err)
	}
	if len(locations) == 0 {
		return models.DashboardView{}, owm.NotFoundError{Query: city}
	}

	loc := locations[0]
	view, err := s.LoadByCoords(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return models.DashboardView{}, err
	}
	// The geocoder's place name is the one the user searched; prefer it
	// over whatever label the weather payload carries.
	view.Location.Name = loc.Name
	view.Location.State = loc.State
	if loc.Country != "" {
		view.Location.Country = loc.Country
	}
	return view, nil
}

// LoadByCoords builds the dashboard view for a coordinate pair. Current
// conditions are required; forecast and air quality degrade their sections
// on failure rather than failing the whole view.
func (s *Service) LoadByCoords(ctx context.Context, lat, lon float64) (models.DashboardView, error) {
	key := Fingerprint(lat, lon)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	gen := s.cache.Begin(key)

	current, err := s.api.CurrentByCoords(ctx, lat, lon)
	observability.CountUpstream("current", err)
	if err != nil {
		return models.DashboardView{}, fmt.Errorf("fetching current weather: %w", err)
	}

	list, err := s.api.Forecast(ctx, lat, lon)
	observability.CountUpstream("forecast", err)
	if err != nil {
		slog.Warn("forecast unavailable, showing empty strips", "lat", lat, "lon", lon, "error", err)
		list = models.ForecastList{TZOffset: current.TZOffset}
	}

	air, airErr := s.api.AirQuality(ctx, lat, lon)
	observability.CountUpstream("air", airErr)
	if airErr != nil {
		slog.Warn("air quality unavailable, showing default band", "lat", lat, "lon", lon, "error", airErr)
	}

	view := s.assemble(current, list, air, airErr == nil)

	if !s.cache.Commit(key, gen, view) {
		slog.Debug("discarding stale dashboard load", "key", key)
	}
	return view, nil
}

func (s *Service) assemble(current models.CurrentWeather, list models.ForecastList, air models.AirQuality, airOK bool) models.DashboardView {
	now := s.now()

	condKey := conditions.Map(current.Condition.Main, current.Condition.ID, current.Condition.Description)
	tod := conditions.TimeOfDay(now, current.Sunrise, current.Sunset, current.TZOffset)

	view := models.DashboardView{
		Location:     current.Location,
		Current:      current,
		ConditionKey: string(condKey),
		TimeOfDay:    tod,
		Backdrop:     conditions.Media(condKey, tod),
		Description:  conditions.Description(condKey),
		Hourly:       forecast.HourlySummary(&current, list),
		Daily:        forecast.DailySummary(now, &current, list),
		GeneratedAt:  now.Unix(),
	}

	usAQI := format.USAQI(0)
	if airOK {
		usAQI = format.USAQI(air.Index)
	}
	view.Air = models.AirReport{USAQI: usAQI, Status: format.AQIStatus(usAQI), Available: airOK}

	clouds := 0
	if current.CloudCover != nil {
		clouds = *current.CloudCover
	}
	uv := format.UVIndex(clouds)
	view.UV = models.UVReport{Index: uv, Text: format.UVText(uv)}
	view.Clouds = models.CloudReport{CoverPct: clouds, Text: format.CloudText(clouds)}

	wind := models.WindReport{}
	if current.WindSpeedMS != nil {
		wind.SpeedMPH = format.WindMPH(*current.WindSpeedMS)
	}
	if current.WindDeg != nil {
		wind.Deg = *current.WindDeg
	}
	wind.Direction = format.CompassDirection(wind.Deg)
	view.Wind = wind

	view.Readouts = models.Readouts{
		Temperature:   format.Temperature(current.TempC),
		FeelsLike:     format.Temperature(current.FeelsLikeC),
		Humidity:      fmt.Sprintf("%d%%", current.Humidity),
		Visibility:    format.VisibilityKM(current.VisibilityM),
		Precipitation: format.Precipitation(current.RainMM),
		DewPoint:      fmt.Sprintf("%d°", format.DewPointC(current.TempC, current.Humidity)),
	}

	return view
}

// Fingerprint rounds coordinates to two decimals (~1.1km) so nearby
// requests share a cache entry and a generation lineage.
func Fingerprint(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}
