package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/The-ShambhaviPandey/Mausam/internal/cache"
	"github.com/The-ShambhaviPandey/Mausam/internal/config"
	"github.com/The-ShambhaviPandey/Mausam/internal/dashboard"
	"github.com/The-ShambhaviPandey/Mausam/internal/httpapi"
	"github.com/The-ShambhaviPandey/Mausam/internal/mqtt"
	"github.com/The-ShambhaviPandey/Mausam/internal/observability"
	"github.com/The-ShambhaviPandey/Mausam/internal/owm"
	"github.com/The-ShambhaviPandey/Mausam/internal/ratelimit"
	"github.com/The-ShambhaviPandey/Mausam/internal/realtime"
	"github.com/The-ShambhaviPandey/Mausam/internal/refresh"
	"github.com/The-ShambhaviPandey/Mausam/internal/store"
)

const serviceName = "mausam"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
	slog.SetDefault(logger)

	if cfg.OpenWeatherAPIKey == "" {
		slog.Warn("OPENWEATHER_API_KEY is not set; weather endpoints will report 503 until configured")
	}

	shutdownObs, promHandler, tracer := observability.SetupObservability(serviceName)
	defer shutdownObs()

	owmClient := owm.New(cfg.OpenWeatherAPIKey, owm.Options{})
	viewCache := cache.New(cfg.CacheTTL)
	svc := dashboard.NewService(owmClient, viewCache)

	repo := openStore(cfg)

	hub := realtime.NewHub()

	var publisher *mqtt.Client
	if cfg.MQTTBroker != "" {
		publisher, err = mqtt.New(cfg.MQTTBroker, cfg.MQTTTopicPrefix)
		if err != nil {
			slog.Error("mqtt connect failed, continuing without publisher", "broker", cfg.MQTTBroker, "error", err)
		} else {
			defer publisher.Close()
		}
	}

	refresher := startRefresher(cfg, svc, repo, hub, publisher)
	if refresher != nil {
		defer refresher.Stop()
	}

	var history httpapi.History
	if repo != nil {
		history = repo
	}
	srv := httpapi.NewServer(svc, owmClient, history, hub)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(observability.MetricsAndTracingMiddleware(tracer, serviceName))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promHandler)

	srv.RegisterRealtime(r)

	r.Route("/api", func(r chi.Router) {
		if limiter := newLimiter(cfg); limiter != nil {
			r.Use(limiter.Middleware(ratelimit.KeyByIP))
		}
		srv.RegisterRoutes(r)
	})

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("mausam started", "port", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slog.Info("shutting down")
	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// openStore opens postgres when configured, falling back to the local
// sqlite file. Persistence is optional: on failure the service runs with
// history endpoints disabled rather than refusing to start.
func openStore(cfg config.Config) *store.Repo {
	var (
		db  *gorm.DB
		err error
	)
	if pg := cfg.Postgres; pg.Enabled() {
		db, err = store.OpenPostgres(pg.User, pg.Password, pg.DB, pg.Host, pg.Port, pg.SSLMode)
	} else {
		db, err = store.OpenSQLite(cfg.SQLitePath)
	}
	if err != nil {
		slog.Error("store unavailable, history disabled", "error", err)
		return nil
	}

	repo, err := store.New(db)
	if err != nil {
		slog.Error("store migration failed, history disabled", "error", err)
		return nil
	}
	return repo
}

func startRefresher(cfg config.Config, svc *dashboard.Service, repo *store.Repo, hub *realtime.Hub, publisher *mqtt.Client) *refresh.Refresher {
	opts := refresh.Options{
		Cities:    cfg.TrackedCities,
		Hub:       hub,
		Retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
	}
	if repo != nil {
		opts.History = repo
	}
	if publisher != nil {
		opts.Publisher = publisher
	}

	refresher := refresh.New(svc, opts)
	if err := refresher.Start(cfg.RefreshSpec); err != nil {
		slog.Error("refresh schedule rejected, background refresh disabled", "spec", cfg.RefreshSpec, "error", err)
		return nil
	}
	return refresher
}

func newLimiter(cfg config.Config) *ratelimit.RateLimiter {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return ratelimit.New(rdb, serviceName, ratelimit.LimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
}
