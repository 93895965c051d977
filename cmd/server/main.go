package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"goalline/internal/config"
	"goalline/internal/logger"
	"goalline/internal/metrics"
	"goalline/internal/server"
	"goalline/pkg/cache"
	"goalline/pkg/prediction"
	"goalline/pkg/providers/apifootball"
	"goalline/pkg/providers/fotmob"
	"goalline/pkg/providers/oddsapi"
	"goalline/pkg/providers/openweather"
	"goalline/pkg/transport"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	logger.SetShowDateTime(true)

	httpClient := transport.NewClient(cfg.HTTPTimeout)

	match := apifootball.New(cfg.APIFootballBaseURL, cfg.APIFootballKey, httpClient)
	store, err := cache.Open(cfg.CachePath)
	if err != nil {
		logger.Warn("Response cache unavailable, running uncached:", err)
	} else {
		defer store.Close()
		match = match.WithCache(store, cfg.CacheTTL)
	}

	weather := openweather.New(cfg.OpenWeatherGeoURL, cfg.OpenWeatherDataURL, cfg.OpenWeatherKey, httpClient)
	odds := oddsapi.New(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, httpClient)

	options := prediction.Options{
		TeamSearchFallback: fotmob.New(httpClient),
	}
	pipeline := prediction.NewPipeline(match, weather, odds, options)

	recorder := metrics.NewRecorder()
	handler := server.NewHandler(pipeline, match, weather, odds, options, recorder)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", recorder.Handler())
	r.Post("/api/predict", handler.Predict)
	r.Get("/api/fixtures24h", handler.Fixtures24h)
	r.Get("/api/sources/fixture", handler.SourceFixture)
	r.Get("/api/sources/weather", handler.SourceWeather)
	r.Get("/api/sources/odds", handler.SourceOdds)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 70 * time.Second,
	}

	go func() {
		logger.Info("Listening on", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error:", err)
		os.Exit(1)
	}
}
