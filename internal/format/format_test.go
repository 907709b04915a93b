package format

import "testing"

func TestUSAQI(t *testing.T) {
	tests := []struct {
		provider int
		want     int
	}{
		{1, 25},
		{2, 75},
		{3, 125},
		{4, 175},
		{5, 250},
		{0, 50},
		{6, 50},
		{-3, 50},
	}
	for _, tt := range tests {
		if got := USAQI(tt.provider); got != tt.want {
			t.Errorf("USAQI(%d) = %d, want %d", tt.provider, got, tt.want)
		}
	}
}

func TestAQIStatus(t *testing.T) {
	tests := []struct {
		aqi  int
		want string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{125, "Unhealthy for Sensitive"},
		{175, "Unhealthy"},
		{250, "Very Unhealthy"},
		{301, "Hazardous"},
		{500, "Hazardous"},
	}
	for _, tt := range tests {
		if got := AQIStatus(tt.aqi); got != tt.want {
			t.Errorf("AQIStatus(%d) = %q, want %q", tt.aqi, got, tt.want)
		}
	}
}

func TestUVIndex(t *testing.T) {
	tests := []struct {
		clouds int
		want   int
	}{
		{0, 5},
		{40, 4},
		{100, 3}, // round(5 * 0.5)
		{200, 0},
		{250, 0}, // clamped, never negative
	}
	for _, tt := range tests {
		if got := UVIndex(tt.clouds); got != tt.want {
			t.Errorf("UVIndex(%d) = %d, want %d", tt.clouds, got, tt.want)
		}
	}
}

func TestUVText(t *testing.T) {
	tests := []struct {
		uv   int
		want string
	}{
		{0, "Low — no protection needed"},
		{2, "Low — no protection needed"},
		{5, "Moderate — use protection"},
		{7, "High — protection required"},
		{10, "Very high — extra protection"},
		{11, "Extreme — avoid sun exposure"},
	}
	for _, tt := range tests {
		if got := UVText(tt.uv); got != tt.want {
			t.Errorf("UVText(%d) = %q, want %q", tt.uv, got, tt.want)
		}
	}
}

func TestCloudText(t *testing.T) {
	tests := []struct {
		clouds int
		want   string
	}{
		{0, "Clear"},
		{10, "Clear"},
		{25, "Few Clouds"},
		{50, "Partly Cloudy"},
		{75, "Mostly Cloudy"},
		{76, "Overcast"},
		{100, "Overcast"},
	}
	for _, tt := range tests {
		if got := CloudText(tt.clouds); got != tt.want {
			t.Errorf("CloudText(%d) = %q, want %q", tt.clouds, got, tt.want)
		}
	}
}

func TestWindMPH(t *testing.T) {
	if got := WindMPH(10); got != 22 {
		t.Errorf("WindMPH(10) = %d, want 22", got)
	}
	if got := WindMPH(0); got != 0 {
		t.Errorf("WindMPH(0) = %d, want 0", got)
	}
	if got := WindMPH(4.12); got != 9 {
		t.Errorf("WindMPH(4.12) = %d, want 9", got)
	}
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		deg  int
		want string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{337, "NW"},
		{359, "N"},
	}
	for _, tt := range tests {
		if got := CompassDirection(tt.deg); got != tt.want {
			t.Errorf("CompassDirection(%d) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestPlaceholders(t *testing.T) {
	if got := VisibilityKM(nil); got != "-- km" {
		t.Errorf("VisibilityKM(nil) = %q", got)
	}
	m := 10000
	if got := VisibilityKM(&m); got != "10.0 km" {
		t.Errorf("VisibilityKM(10000) = %q", got)
	}
	if got := Precipitation(nil); got != "0 mm" {
		t.Errorf("Precipitation(nil) = %q", got)
	}
	mm := 2.5
	if got := Precipitation(&mm); got != "2.5 mm" {
		t.Errorf("Precipitation(2.5) = %q", got)
	}
	if got := Temperature(21.5); got != "22°" {
		t.Errorf("Temperature(21.5) = %q", got)
	}
}

func TestDewPointC(t *testing.T) {
	if got := DewPointC(20, 100); got != 20 {
		t.Errorf("DewPointC(20, 100) = %d, want 20", got)
	}
	if got := DewPointC(20, 50); got != 10 {
		t.Errorf("DewPointC(20, 50) = %d, want 10", got)
	}
}
