package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SearchRecord is one resolved city search. Recent rows feed the
// recent-searches endpoint and the refresh scheduler's tracked set.
type SearchRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Query     string    `gorm:"index" json:"query"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// WeatherObservation is one snapshot of a city's conditions, written on
// every scheduled refresh. Raw keeps the full assembled view for later
// inspection without schema churn.
type WeatherObservation struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CityKey      string         `gorm:"index:idx_obs_city_time" json:"city_key"`
	ConditionKey string         `json:"condition_key"`
	TempC        float64        `json:"temp_c"`
	ObservedAt   time.Time      `gorm:"index:idx_obs_city_time" json:"observed_at"`
	Raw          datatypes.JSON `json:"raw,omitempty"`
}
