// Package owm is the OpenWeatherMap gateway: current conditions, 5-day/3-hour
// forecast, air pollution, and geocoding. It is the only package that talks
// to the network; everything above it works on decoded domain types.
package owm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

const (
	defaultBaseURL = "https://api.openweathermap.org"
	defaultGeoURL  = "https://api.openweathermap.org"
)

type Client struct {
	apiKey     string
	baseURL    string
	geoURL     string
	httpClient *http.Client
}

type Options struct {
	HTTPClient *http.Client
	BaseURL    string
	GeoURL     string
}

func New(apiKey string, opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	base := opts.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	geo := opts.GeoURL
	if geo == "" {
		geo = defaultGeoURL
	}
	return &Client{apiKey: apiKey, baseURL: base, geoURL: geo, httpClient: hc}
}

// currentPayload mirrors the fields of /data/2.5/weather this service
// consumes. Optional sections decode into pointers so absence is explicit.
type currentPayload struct {
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility *int `json:"visibility"`
	Wind       *struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds *struct {
		All int `json:"all"`
	} `json:"clouds"`
	Rain *struct {
		OneH   *float64 `json:"1h"`
		ThreeH *float64 `json:"3h"`
	} `json:"rain"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	DT       int64  `json:"dt"`
	Name     string `json:"name"`
	Coord    struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
}

// CurrentByCoords fetches current conditions for a coordinate pair.
func (c *Client) CurrentByCoords(ctx context.Context, lat, lon float64) (models.CurrentWeather, error) {
	if c.apiKey == "" {
		return models.CurrentWeather{}, ErrMissingCredential
	}

	u := fmt.Sprintf("%s/data/2.5/weather?lat=%f&lon=%f&units=metric&appid=%s", c.baseURL, lat, lon, c.apiKey)

	var payload currentPayload
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return models.CurrentWeather{}, err
	}

	cw := models.CurrentWeather{
		Location: models.Location{
			Name:    payload.Name,
			Country: payload.Sys.Country,
			Lat:     payload.Coord.Lat,
			Lon:     payload.Coord.Lon,
		},
		TempC:      payload.Main.Temp,
		FeelsLikeC: payload.Main.FeelsLike,
		Humidity:   payload.Main.Humidity,
		Sunrise:    payload.Sys.Sunrise,
		Sunset:     payload.Sys.Sunset,
		TZOffset:   payload.Timezone,
		ObservedAt: payload.DT,
	}
	if len(payload.Weather) > 0 {
		w := payload.Weather[0]
		cw.Condition = models.Condition{ID: w.ID, Main: w.Main, Description: w.Description}
	}
	cw.VisibilityM = payload.Visibility
	if payload.Wind != nil {
		speed := payload.Wind.Speed
		deg := payload.Wind.Deg
		cw.WindSpeedMS = &speed
		cw.WindDeg = &deg
	}
	if payload.Clouds != nil {
		all := payload.Clouds.All
		cw.CloudCover = &all
	}
	if payload.Rain != nil {
		// Prefer the last-hour volume, fall back to the 3-hour one.
		if payload.Rain.OneH != nil {
			cw.RainMM = payload.Rain.OneH
		} else if payload.Rain.ThreeH != nil {
			cw.RainMM = payload.Rain.ThreeH
		}
	}
	return cw, nil
}

// CurrentByCity geocodes a city name (first match wins) and fetches its
// current conditions.
func (c *Client) CurrentByCity(ctx context.Context, name string) (models.CurrentWeather, error) {
	locations, err := c.SearchLocations(ctx, name, 1)
	if err != nil {
		return models.CurrentWeather{}, err
	}
	if len(locations) == 0 {
		return models.CurrentWeather{}, NotFoundError{Query: name}
	}
	return c.CurrentByCoords(ctx, locations[0].Lat, locations[0].Lon)
}

// Forecast fetches the 5-day/3-hour forecast for a coordinate pair.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (models.ForecastList, error) {
	if c.apiKey == "" {
		return models.ForecastList{}, ErrMissingCredential
	}

	u := fmt.Sprintf("%s/data/2.5/forecast?lat=%f&lon=%f&units=metric&appid=%s", c.baseURL, lat, lon, c.apiKey)

	var payload struct {
		List []struct {
			DT   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			Weather []struct {
				ID          int    `json:"id"`
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
		City struct {
			Timezone int `json:"timezone"`
		} `json:"city"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return models.ForecastList{}, err
	}

	list := models.ForecastList{
		Samples:  make([]models.ForecastSample, 0, len(payload.List)),
		TZOffset: payload.City.Timezone,
	}
	for _, item := range payload.List {
		sample := models.ForecastSample{Timestamp: item.DT, TempC: item.Main.Temp}
		if len(item.Weather) > 0 {
			w := item.Weather[0]
			sample.Condition = models.Condition{ID: w.ID, Main: w.Main, Description: w.Description}
		}
		list.Samples = append(list.Samples, sample)
	}
	return list, nil
}

// AirQuality fetches the pollution index for a coordinate pair.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (models.AirQuality, error) {
	if c.apiKey == "" {
		return models.AirQuality{}, ErrMissingCredential
	}

	u := fmt.Sprintf("%s/data/2.5/air_pollution?lat=%f&lon=%f&appid=%s", c.baseURL, lat, lon, c.apiKey)

	var payload struct {
		List []struct {
			Main struct {
				AQI int `json:"aqi"`
			} `json:"main"`
			Components struct {
				PM25 float64 `json:"pm2_5"`
				PM10 float64 `json:"pm10"`
				O3   float64 `json:"o3"`
				NO2  float64 `json:"no2"`
			} `json:"components"`
		} `json:"list"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return models.AirQuality{}, err
	}
	if len(payload.List) == 0 {
		return models.AirQuality{}, ParseError{Err: fmt.Errorf("air pollution response carried no samples")}
	}

	first := payload.List[0]
	return models.AirQuality{
		Index: first.Main.AQI,
		PM25:  first.Components.PM25,
		PM10:  first.Components.PM10,
		O3:    first.Components.O3,
		NO2:   first.Components.NO2,
	}, nil
}

// SearchLocations geocodes a free-text query into candidate places.
func (c *Client) SearchLocations(ctx context.Context, query string, limit int) ([]models.Location, error) {
	if c.apiKey == "" {
		return nil, ErrMissingCredential
	}
	if limit <= 0 {
		limit = 5
	}

	u := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=%d&appid=%s", c.geoURL, url.QueryEscape(query), limit, c.apiKey)

	var results []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		State   string  `json:"state"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := c.getJSON(ctx, u, &results); err != nil {
		return nil, err
	}

	locations := make([]models.Location, len(results))
	for i, r := range results {
		locations[i] = models.Location{Name: r.Name, Country: r.Country, State: r.State, Lat: r.Lat, Lon: r.Lon}
	}
	return locations, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return FetchError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ParseError{Err: err}
	}
	return nil
}
