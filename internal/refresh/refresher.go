// Package refresh keeps tracked cities warm: on a cron schedule it reloads
// each city's dashboard view, logs an observation, and notifies realtime
// and MQTT subscribers. A searched city automatically joins the tracked set
// through the search history.
package refresh

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/The-ShambhaviPandey/Mausam/internal/models"
	"github.com/The-ShambhaviPandey/Mausam/internal/realtime"
	"github.com/The-ShambhaviPandey/Mausam/internal/store"
)

// Loader rebuilds one city's view; satisfied by the dashboard service.
type Loader interface {
	Load(ctx context.Context, city string) (models.DashboardView, error)
}

// History is the slice of the store the refresher uses. Nil-able: the
// refresher works without persistence, it just loses the searched-city
// feed and the observation log.
type History interface {
	RecentSearches(limit int) ([]store.SearchRecord, error)
	RecordObservation(cityKey string, view models.DashboardView) (store.WeatherObservation, error)
	PruneObservations(olderThan time.Time) (int64, error)
}

// Broadcaster pushes refresh events to connected dashboards.
type Broadcaster interface {
	Broadcast(ev realtime.Event)
}

// WeatherPublisher is the slice of the mqtt client the refresher needs;
// declared here so the scheduler stays testable without a live broker.
type WeatherPublisher interface {
	PublishWeather(city string, view models.DashboardView) error
}

type Options struct {
	Cities    []string
	History   History
	Hub       Broadcaster
	Publisher WeatherPublisher
	Retention time.Duration
	Timeout   time.Duration
}

type Refresher struct {
	loader Loader
	opts   Options
	cron   *cron.Cron
}

func New(loader Loader, opts Options) *Refresher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Refresher{loader: loader, opts: opts, cron: cron.New()}
}

// Start schedules RunOnce on the given cron spec (e.g. "@every 15m") and
// kicks off an immediate warm-up pass in the background.
func (r *Refresher) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
		defer cancel()
		r.RunOnce(ctx)
	}); err != nil {
		return err
	}
	r.cron.Start()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
		defer cancel()
		r.RunOnce(ctx)
	}()
	return nil
}

func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce refreshes every tracked city. Per-city failures are logged and
// skipped; one unreachable city never blocks the rest.
func (r *Refresher) RunOnce(ctx context.Context) {
	cities := r.trackedCities()
	if len(cities) == 0 {
		return
	}
	slog.Info("refreshing tracked cities", "count", len(cities))

	for _, city := range cities {
		view, err := r.loader.Load(ctx, city)
		if err != nil {
			slog.Warn("refresh failed", "city", city, "error", err)
			continue
		}

		if r.opts.History != nil {
			if _, err := r.opts.History.RecordObservation(city, view); err != nil {
				slog.Warn("recording observation failed", "city", city, "error", err)
			}
		}
		if r.opts.Hub != nil {
			r.opts.Hub.Broadcast(realtime.Event{
				Type:      realtime.EventWeatherRefreshed,
				City:      city,
				Condition: view.ConditionKey,
			})
		}
		if r.opts.Publisher != nil {
			if err := r.opts.Publisher.PublishWeather(city, view); err != nil {
				slog.Warn("mqtt publish failed", "city", city, "error", err)
			}
		}
	}

	if r.opts.History != nil && r.opts.Retention > 0 {
		if n, err := r.opts.History.PruneObservations(time.Now().Add(-r.opts.Retention)); err != nil {
			slog.Warn("pruning observations failed", "error", err)
		} else if n > 0 {
			slog.Info("pruned old observations", "count", n)
		}
	}
}

// trackedCities merges the configured list with recently searched cities,
// first occurrence wins.
func (r *Refresher) trackedCities() []string {
	cities := make([]string, 0, len(r.opts.Cities))
	seen := map[string]bool{}
	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		cities = append(cities, strings.TrimSpace(name))
	}

	for _, c := range r.opts.Cities {
		add(c)
	}
	if r.opts.History != nil {
		recent, err := r.opts.History.RecentSearches(10)
		if err != nil {
			slog.Warn("loading recent searches failed", "error", err)
		} else {
			for _, rec := range recent {
				add(rec.Name)
			}
		}
	}
	return cities
}
