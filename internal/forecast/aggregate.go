// Package forecast turns the provider's raw 3-hour sample list into the
// display-ready hourly and daily strips. Grouping happens in the viewed
// city's timezone so buckets line up with its calendar days, not the
// server's.
package forecast

import (
	"fmt"
	"sort"
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/conditions"
	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

// maxHourlySamples caps the strip at the next six 3-hour steps.
const maxHourlySamples = 6

// maxDailyEntries caps the daily strip; days beyond it are truncated, days
// without samples are never fabricated.
const maxDailyEntries = 7

// HourlySummary builds the hourly strip. When current is present a
// synthesized "Now" row leads; the provider's chronological order is
// preserved for the rest.
func HourlySummary(current *models.CurrentWeather, list models.ForecastList) []models.HourlyEntry {
	entries := make([]models.HourlyEntry, 0, maxHourlySamples+1)

	if current != nil {
		entries = append(entries, models.HourlyEntry{
			Label: "Now",
			TempC: current.TempC,
			Icon:  conditions.Icon(current.Condition.Main, current.Condition.ID),
			IsNow: true,
		})
	}

	loc := time.FixedZone("", list.TZOffset)
	samples := list.Samples
	if len(samples) > maxHourlySamples {
		samples = samples[:maxHourlySamples]
	}
	for _, s := range samples {
		entries = append(entries, models.HourlyEntry{
			Label: clockLabel(time.Unix(s.Timestamp, 0).In(loc)),
			TempC: s.TempC,
			Icon:  conditions.Icon(s.Condition.Main, s.Condition.ID),
		})
	}
	return entries
}

// clockLabel renders a 12-hour label like "3 PM".
func clockLabel(t time.Time) string {
	h := t.Hour()
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, ampm)
}

type dayBucket struct {
	date      time.Time
	temps     []float64
	condition models.Condition
}

// DailySummary buckets samples by calendar date, folding the current
// observation into today's range when present. Output is ascending by date,
// capped at seven entries, one per distinct date actually seen.
func DailySummary(now time.Time, current *models.CurrentWeather, list models.ForecastList) []models.DailyEntry {
	loc := time.FixedZone("", list.TZOffset)
	today := dateKey(now.In(loc))

	buckets := map[string]*dayBucket{}

	if current != nil {
		localNow := now.In(loc)
		buckets[today] = &dayBucket{
			date:      localNow,
			temps:     []float64{current.TempC},
			condition: current.Condition,
		}
	}

	for _, s := range list.Samples {
		local := time.Unix(s.Timestamp, 0).In(loc)
		key := dateKey(local)
		b, ok := buckets[key]
		if !ok {
			b = &dayBucket{date: local, condition: s.Condition}
			buckets[key] = b
		}
		b.temps = append(b.temps, s.TempC)
	}

	ordered := make([]*dayBucket, 0, len(buckets))
	keys := make(map[*dayBucket]string, len(buckets))
	for k, b := range buckets {
		ordered = append(ordered, b)
		keys[b] = k
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].date.Before(ordered[j].date) })
	if len(ordered) > maxDailyEntries {
		ordered = ordered[:maxDailyEntries]
	}

	entries := make([]models.DailyEntry, 0, len(ordered))
	for _, b := range ordered {
		high, low := b.temps[0], b.temps[0]
		for _, temp := range b.temps[1:] {
			if temp > high {
				high = temp
			}
			if temp < low {
				low = temp
			}
		}

		isToday := keys[b] == today
		day := b.date.Weekday().String()[:3]
		if isToday {
			day = "Today"
		}
		entries = append(entries, models.DailyEntry{
			Day:     day,
			HighC:   high,
			LowC:    low,
			Icon:    conditions.Icon(b.condition.Main, b.condition.ID),
			IsToday: isToday,
		})
	}
	return entries
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
