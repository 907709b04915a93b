// Package store persists search history and the per-city observation log.
// Sqlite is the default backend so the service runs standalone; postgres is
// available for shared deployments.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
)

type Repo struct {
	db *gorm.DB
}

func gormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// OpenSQLite opens (creating if needed) a file-backed sqlite database.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger()})
}

// OpenPostgres connects to a postgres database.
func OpenPostgres(user, password, dbName, host, port, sslMode string) (*gorm.DB, error) {
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC", host, user, password, dbName, port, sslMode)
	return gorm.Open(
		postgres.New(postgres.Config{DSN: dsn}),
		&gorm.Config{DisableForeignKeyConstraintWhenMigrating: true, Logger: gormLogger()},
	)
}

func New(db *gorm.DB) (*Repo, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Repo{db: db}, nil
}

func ensureSchema(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&SearchRecord{}) {
		if err := m.CreateTable(&SearchRecord{}); err != nil {
			return fmt.Errorf("create table search_records: %w", err)
		}
	}
	if !m.HasTable(&WeatherObservation{}) {
		if err := m.CreateTable(&WeatherObservation{}); err != nil {
			return fmt.Errorf("create table weather_observations: %w", err)
		}
	}
	return nil
}

// RecordSearch appends a resolved search to the history.
func (r *Repo) RecordSearch(query string, loc models.Location) (SearchRecord, error) {
	rec := SearchRecord{
		ID:        uuid.New(),
		Query:     query,
		Name:      loc.Name,
		Country:   loc.Country,
		Lat:       loc.Lat,
		Lon:       loc.Lon,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&rec).Error; err != nil {
		return SearchRecord{}, fmt.Errorf("record search: %w", err)
	}
	return rec, nil
}

// RecentSearches lists the latest searches, newest first, one row per
// distinct city name.
func (r *Repo) RecentSearches(limit int) ([]SearchRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []SearchRecord
	if err := r.db.Order("created_at DESC").Limit(200).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}

	seen := map[string]bool{}
	out := make([]SearchRecord, 0, limit)
	for _, row := range rows {
		key := strings.ToLower(row.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// RecordObservation logs one dashboard snapshot for a city.
func (r *Repo) RecordObservation(cityKey string, view models.DashboardView) (WeatherObservation, error) {
	raw, err := json.Marshal(view)
	if err != nil {
		return WeatherObservation{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	obs := WeatherObservation{
		ID:           uuid.New(),
		CityKey:      strings.ToLower(cityKey),
		ConditionKey: view.ConditionKey,
		TempC:        view.Current.TempC,
		ObservedAt:   time.Now().UTC(),
		Raw:          datatypes.JSON(raw),
	}
	if err := r.db.Create(&obs).Error; err != nil {
		return WeatherObservation{}, fmt.Errorf("record observation: %w", err)
	}
	return obs, nil
}

// ObservationsForCity lists a city's snapshots, newest first.
func (r *Repo) ObservationsForCity(cityKey string, limit int) ([]WeatherObservation, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []WeatherObservation
	err := r.db.
		Where("city_key = ?", strings.ToLower(cityKey)).
		Order("observed_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	return rows, nil
}

// PruneObservations deletes snapshots older than the cutoff and reports how
// many were removed.
func (r *Repo) PruneObservations(olderThan time.Time) (int64, error) {
	res := r.db.Where("observed_at < ?", olderThan.UTC()).Delete(&WeatherObservation{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune observations: %w", res.Error)
	}
	return res.RowsAffected, nil
}
