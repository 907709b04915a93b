package models

// Location is a geocoded place, either from a search query or a
// reverse lookup of coordinates.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Condition is the provider's raw weather category for one sample.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentWeather holds one observation. Fields the provider may omit are
// pointers so "absent" stays distinguishable from zero and can degrade to a
// placeholder at the formatter boundary instead of displaying a bogus 0.
type CurrentWeather struct {
	Location  Location  `json:"location"`
	Condition Condition `json:"condition"`

	TempC       float64  `json:"temp_c"`
	FeelsLikeC  float64  `json:"feels_like_c"`
	Humidity    int      `json:"humidity"`
	VisibilityM *int     `json:"visibility_m,omitempty"`
	WindSpeedMS *float64 `json:"wind_speed_ms,omitempty"`
	WindDeg     *int     `json:"wind_deg,omitempty"`
	CloudCover  *int     `json:"cloud_cover,omitempty"`
	RainMM      *float64 `json:"rain_mm,omitempty"`

	Sunrise  int64 `json:"sunrise"`
	Sunset   int64 `json:"sunset"`
	TZOffset int   `json:"tz_offset"`

	ObservedAt int64 `json:"observed_at"`
}

// ForecastSample is one 3-hour step of the 5-day forecast.
type ForecastSample struct {
	Timestamp int64     `json:"dt"`
	TempC     float64   `json:"temp_c"`
	Condition Condition `json:"condition"`
}

// ForecastList is the provider-ordered forecast plus the metadata needed to
// bucket samples in the viewed city's local time, not the server's.
type ForecastList struct {
	Samples  []ForecastSample `json:"samples"`
	TZOffset int              `json:"tz_offset"`
}

// AirQuality is the provider's 1-5 pollution index with pollutant
// concentrations in µg/m³.
type AirQuality struct {
	Index int     `json:"index"`
	PM25  float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
	O3    float64 `json:"o3"`
	NO2   float64 `json:"no2"`
}

// HourlyEntry is one display row of the hourly strip.
type HourlyEntry struct {
	Label string  `json:"label"`
	TempC float64 `json:"temp_c"`
	Icon  string  `json:"icon"`
	IsNow bool    `json:"is_now"`
}

// DailyEntry is one display row of the daily strip.
type DailyEntry struct {
	Day     string  `json:"day"`
	HighC   float64 `json:"high_c"`
	LowC    float64 `json:"low_c"`
	Icon    string  `json:"icon"`
	IsToday bool    `json:"is_today"`
}

// Media is a playable backdrop reference.
type Media struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// AirReport is the display-ready air quality readout. Available is false
// when the pollution fetch failed and the default band is shown instead.
type AirReport struct {
	USAQI     int    `json:"us_aqi"`
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

// UVReport carries the synthesized UV estimate. The value is derived from
// cloud cover, not measured by the provider.
type UVReport struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// WindReport is the display-ready wind readout.
type WindReport struct {
	SpeedMPH  int    `json:"speed_mph"`
	Deg       int    `json:"deg"`
	Direction string `json:"direction"`
}

// CloudReport is the display-ready cloud cover readout.
type CloudReport struct {
	CoverPct int    `json:"cover_pct"`
	Text     string `json:"text"`
}

// DashboardView is the fully assembled response for one location: every
// panel the dashboard renders, derived once so all consumers see the same
// snapshot.
// Readouts are the pre-formatted detail-card strings. Absent provider
// fields show their placeholder here instead of a bogus zero, so clients
// render these verbatim.
type Readouts struct {
	Temperature   string `json:"temperature"`
	FeelsLike     string `json:"feels_like"`
	Humidity      string `json:"humidity"`
	Visibility    string `json:"visibility"`
	Precipitation string `json:"precipitation"`
	DewPoint      string `json:"dew_point"`
}

type DashboardView struct {
	Location     Location       `json:"location"`
	Current      CurrentWeather `json:"current"`
	ConditionKey string         `json:"condition_key"`
	TimeOfDay    string         `json:"time_of_day"`
	Backdrop     Media          `json:"backdrop"`
	Description  string         `json:"description"`
	Readouts     Readouts       `json:"readouts"`
	Hourly       []HourlyEntry  `json:"hourly"`
	Daily        []DailyEntry   `json:"daily"`
	Air          AirReport      `json:"air"`
	UV           UVReport       `json:"uv"`
	Wind         WindReport     `json:"wind"`
	Clouds       CloudReport    `json:"clouds"`
	GeneratedAt  int64          `json:"generated_at"`
}

// Suggestion is one row of the search dropdown. Name carries the bare city
// name clients must echo back when selecting; Label is display-only.
type Suggestion struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
