// Package format converts raw provider numbers into the display bands and
// units the dashboard shows. Everything here is a pure function over its
// inputs so the readouts are reproducible.
package format

import (
	"fmt"
	"math"
)

// usAQITable maps the provider's coarse 1-5 pollution index onto the 0-500
// US AQI scale. This is a fixed approximation, not a pollutant-accurate
// conversion; anything outside 1-5 lands on 50.
var usAQITable = map[int]int{1: 25, 2: 75, 3: 125, 4: 175, 5: 250}

// USAQI converts the provider's 1-5 air quality index to a US AQI value.
func USAQI(providerIndex int) int {
	if v, ok := usAQITable[providerIndex]; ok {
		return v
	}
	return 50
}

// AQIStatus bands a US AQI value into its health category.
func AQIStatus(usAQI int) string {
	switch {
	case usAQI <= 50:
		return "Good"
	case usAQI <= 100:
		return "Moderate"
	case usAQI <= 150:
		return "Unhealthy for Sensitive"
	case usAQI <= 200:
		return "Unhealthy"
	case usAQI <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// UVIndex estimates a UV index from cloud cover. The provider's free tier
// has no UV reading, so this is a documented heuristic proxy (clear sky ~5,
// scaled down with cover), not a measured value.
func UVIndex(cloudCoverPct int) int {
	uv := int(math.Round(5 * (1 - float64(cloudCoverPct)/200)))
	if uv < 0 {
		return 0
	}
	return uv
}

// UVText bands a UV index into protection advice.
func UVText(uv int) string {
	switch {
	case uv <= 2:
		return "Low — no protection needed"
	case uv <= 5:
		return "Moderate — use protection"
	case uv <= 7:
		return "High — protection required"
	case uv <= 10:
		return "Very high — extra protection"
	default:
		return "Extreme — avoid sun exposure"
	}
}

// CloudText bands cloud cover percentage into the usual sky descriptions.
func CloudText(cloudCoverPct int) string {
	switch {
	case cloudCoverPct <= 10:
		return "Clear"
	case cloudCoverPct <= 25:
		return "Few Clouds"
	case cloudCoverPct <= 50:
		return "Partly Cloudy"
	case cloudCoverPct <= 75:
		return "Mostly Cloudy"
	default:
		return "Overcast"
	}
}

// WindMPH converts meters per second to rounded miles per hour.
func WindMPH(speedMS float64) int {
	return int(math.Round(speedMS * 2.237))
}

var compassLabels = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassDirection labels a wind bearing with its 8-wind compass point.
func CompassDirection(deg int) string {
	idx := int(math.Round(float64(deg)/45.0)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassLabels[idx]
}

// DewPointC approximates the dew point from temperature and relative
// humidity using the dashboard's simple rule of thumb.
func DewPointC(tempC float64, humidity int) int {
	return int(math.Round(tempC - (100-float64(humidity))/5))
}

// VisibilityKM renders visibility meters as kilometers with one decimal,
// or a placeholder when the reading is absent.
func VisibilityKM(meters *int) string {
	if meters == nil {
		return "-- km"
	}
	return fmt.Sprintf("%.1f km", float64(*meters)/1000)
}

// Precipitation renders rain volume, or the no-rain display when absent.
func Precipitation(rainMM *float64) string {
	if rainMM == nil {
		return "0 mm"
	}
	return fmt.Sprintf("%g mm", *rainMM)
}

// Temperature renders a rounded temperature with the degree mark.
func Temperature(tempC float64) string {
	return fmt.Sprintf("%d°", int(math.Round(tempC)))
}
