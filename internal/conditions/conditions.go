package conditions

import "strings"

// Key is the normalized weather category used for backdrops and prose,
// independent of the provider's raw vocabulary.
type Key string

const (
	Clear        Key = "clear"
	Clouds       Key = "clouds"
	Drizzle      Key = "drizzle"
	Rain         Key = "rain"
	Snow         Key = "snow"
	Thunderstorm Key = "thunderstorm"
	Fog          Key = "fog"
	Haze         Key = "haze"
	Sand         Key = "sand"
	Default      Key = "default"
)

// Map normalizes a provider condition to a Key. Substring matches on the
// main category are checked in priority order; a rainy description rescues
// samples whose main category is unrecognized. Total function, never fails.
func Map(main string, id int, description string) Key {
	m := strings.ToLower(main)
	desc := strings.ToLower(description)

	switch {
	case strings.Contains(m, "cloud"):
		return Clouds
	case strings.Contains(m, "drizzle"):
		return Drizzle
	case strings.Contains(m, "rain"):
		return Rain
	case strings.Contains(m, "snow"):
		return Snow
	case strings.Contains(m, "thunder"):
		return Thunderstorm
	case strings.Contains(m, "mist"), strings.Contains(m, "fog"), strings.Contains(m, "smoke"):
		return Fog
	case strings.Contains(m, "haze"), strings.Contains(m, "sand"), strings.Contains(m, "dust"):
		return Haze
	case strings.Contains(m, "clear"):
		return Clear
	}

	if strings.Contains(desc, "rain") {
		return Rain
	}
	return Default
}

// Icon picks the display glyph for a condition, mirroring the dashboard's
// emoji set. Partly-cloudy ids (801, 802) get the broken-cloud glyph.
func Icon(main string, id int) string {
	switch strings.ToLower(main) {
	case "clear":
		return "☀️"
	case "clouds":
		if id == 801 || id == 802 {
			return "⛅"
		}
		return "☁️"
	case "rain":
		return "🌧️"
	case "drizzle":
		return "🌦️"
	case "thunderstorm":
		return "⛈️"
	case "snow":
		return "❄️"
	case "mist", "fog":
		return "🌫️"
	default:
		return "🌤️"
	}
}
