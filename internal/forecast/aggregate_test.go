package forecast

import (
	"testing"
	"time"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

func sampleAt(ts int64, temp float64, main string) models.ForecastSample {
	return models.ForecastSample{
		Timestamp: ts,
		TempC:     temp,
		Condition: models.Condition{Main: main, Description: main},
	}
}

func TestHourlySummary(t *testing.T) {
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC).Unix()
	list := models.ForecastList{TZOffset: 0}
	for i := 0; i < 10; i++ {
		list.Samples = append(list.Samples, sampleAt(base+int64(i)*3*3600, 10+float64(i), "Clear"))
	}
	current := &models.CurrentWeather{
		TempC:     21.3,
		Condition: models.Condition{Main: "Clouds", ID: 804},
	}

	entries := HourlySummary(current, list)

	if len(entries) != 7 {
		t.Fatalf("expected 7 entries (Now + 6), got %d", len(entries))
	}
	if !entries[0].IsNow || entries[0].Label != "Now" {
		t.Errorf("first entry should be the Now row: %+v", entries[0])
	}
	if entries[0].TempC != 21.3 {
		t.Errorf("Now temp = %v", entries[0].TempC)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].IsNow {
			t.Errorf("entry %d unexpectedly flagged as now", i)
		}
		if entries[i].TempC != 10+float64(i-1) {
			t.Errorf("entry %d out of chronological order: temp %v", i, entries[i].TempC)
		}
	}
	// 09:00 UTC sample renders as "9 AM".
	if entries[1].Label != "9 AM" {
		t.Errorf("label = %q, want %q", entries[1].Label, "9 AM")
	}
}

func TestHourlySummary_NoCurrent(t *testing.T) {
	base := time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC).Unix()
	list := models.ForecastList{Samples: []models.ForecastSample{sampleAt(base, 10, "Rain")}}

	entries := HourlySummary(nil, list)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].IsNow {
		t.Error("no synthesized row without current weather")
	}
	if entries[0].Label != "1 PM" {
		t.Errorf("label = %q", entries[0].Label)
	}
}

func TestHourlySummary_Labels(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{5, "5 AM"},
		{12, "12 PM"},
		{15, "3 PM"},
		{23, "11 PM"},
	}
	for _, tt := range tests {
		ts := time.Date(2024, 3, 10, tt.hour, 0, 0, 0, time.UTC).Unix()
		list := models.ForecastList{Samples: []models.ForecastSample{sampleAt(ts, 0, "Clear")}}
		entries := HourlySummary(nil, list)
		if entries[0].Label != tt.want {
			t.Errorf("hour %d label = %q, want %q", tt.hour, entries[0].Label, tt.want)
		}
	}
}

func TestHourlySummary_TimezoneLabels(t *testing.T) {
	// 12:00 UTC is 17:30 in a +5:30 city.
	ts := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).Unix()
	list := models.ForecastList{
		Samples:  []models.ForecastSample{sampleAt(ts, 30, "Clear")},
		TZOffset: 19800,
	}
	entries := HourlySummary(nil, list)
	if entries[0].Label != "5 PM" {
		t.Errorf("label = %q, want %q", entries[0].Label, "5 PM")
	}
}

func TestDailySummary(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	list := models.ForecastList{TZOffset: 0}

	// Three distinct dates: today plus two following days.
	for day := 0; day < 3; day++ {
		for _, hour := range []int{6, 12, 18} {
			ts := time.Date(2024, 3, 10+day, hour, 0, 0, 0, time.UTC).Unix()
			list.Samples = append(list.Samples, sampleAt(ts, float64(10+day*2+hour/6), "Clear"))
		}
	}
	current := &models.CurrentWeather{
		TempC:     25, // above every forecast sample for today
		Condition: models.Condition{Main: "Clear", ID: 800},
	}

	entries := DailySummary(now, current, list)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if !entries[0].IsToday || entries[0].Day != "Today" {
		t.Errorf("first entry should be today: %+v", entries[0])
	}
	if entries[0].HighC != 25 {
		t.Errorf("today's high should fold in current temp: %v", entries[0].HighC)
	}
	if entries[1].IsToday || entries[2].IsToday {
		t.Error("only one entry may be today")
	}
	// 2024-03-11 was a Monday.
	if entries[1].Day != "Mon" || entries[2].Day != "Tue" {
		t.Errorf("weekday labels = %q, %q", entries[1].Day, entries[2].Day)
	}
	for i := 0; i < len(entries); i++ {
		if entries[i].LowC > entries[i].HighC {
			t.Errorf("entry %d low %v above high %v", i, entries[i].LowC, entries[i].HighC)
		}
	}
}

func TestDailySummary_TruncatesToSeven(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	list := models.ForecastList{}
	for day := 0; day < 9; day++ {
		ts := time.Date(2024, 3, 10+day, 12, 0, 0, 0, time.UTC).Unix()
		list.Samples = append(list.Samples, sampleAt(ts, 10, "Clear"))
	}

	entries := DailySummary(now, nil, list)
	if len(entries) != 7 {
		t.Fatalf("expected truncation to 7, got %d", len(entries))
	}
}

func TestDailySummary_NoFabricatedDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	list := models.ForecastList{Samples: []models.ForecastSample{
		sampleAt(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC).Unix(), 10, "Clear"),
		sampleAt(time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC).Unix(), 12, "Rain"),
	}}

	entries := DailySummary(now, nil, list)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for 2 distinct dates, got %d", len(entries))
	}
	if entries[1].Day != "Tue" {
		t.Errorf("gap day must not be fabricated; second entry = %+v", entries[1])
	}
}

func TestDailySummary_ProviderLocalDates(t *testing.T) {
	// 23:00 UTC on the 10th is already the 11th in a +2h city, so the sample
	// must land in the 11th's bucket.
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	list := models.ForecastList{
		TZOffset: 7200,
		Samples: []models.ForecastSample{
			sampleAt(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC).Unix(), 10, "Clear"),
		},
	}

	entries := DailySummary(now, nil, list)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].IsToday {
		t.Error("sample belongs to tomorrow in the city's frame")
	}
}
