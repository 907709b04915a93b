// Package search backs the city search box: it shapes geocode results into
// suggestion rows and normalizes submitted queries so downstream lookups
// always receive a bare, unambiguous city name.
package search

import (
	"fmt"
	"strings"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

// Suggestions converts geocode results into dropdown rows. Label is what
// the user sees ("Paris, FR"); Name is the bare city name a client must
// send back on selection so the next geocode call stays unambiguous.
func Suggestions(locations []models.Location) []models.Suggestion {
	out := make([]models.Suggestion, 0, len(locations))
	for _, loc := range locations {
		out = append(out, models.Suggestion{
			ID:      fmt.Sprintf("%s-%g-%g", loc.Name, loc.Lat, loc.Lon),
			Name:    loc.Name,
			Label:   label(loc),
			Country: loc.Country,
			State:   loc.State,
			Lat:     loc.Lat,
			Lon:     loc.Lon,
		})
	}
	return out
}

func label(loc models.Location) string {
	parts := []string{loc.Name}
	if loc.State != "" {
		parts = append(parts, loc.State)
	}
	if loc.Country != "" {
		parts = append(parts, loc.Country)
	}
	return strings.Join(parts, ", ")
}

// NormalizeQuery reduces a free-text submission to the city name alone:
// "Paris, FR" becomes "Paris". An empty result means there is nothing to
// search for and the caller should stay put.
func NormalizeQuery(query string) string {
	name, _, _ := strings.Cut(query, ",")
	return strings.TrimSpace(name)
}
