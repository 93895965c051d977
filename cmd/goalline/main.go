package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"goalline/internal/config"
	"goalline/internal/logger"
	"goalline/pkg/cache"
	"goalline/pkg/prediction"
	"goalline/pkg/providers/apifootball"
	"goalline/pkg/providers/fotmob"
	"goalline/pkg/providers/oddsapi"
	"goalline/pkg/providers/openweather"
	"goalline/pkg/transport"
)

func main() {
	home := flag.String("home", "", "home team name (required)")
	away := flag.String("away", "", "away team name (required)")
	country := flag.String("country", "", "league country, e.g. England")
	league := flag.String("league", "", "league name, e.g. Premier League")
	date := flag.String("date", "", "match date YYYY-MM-DD, defaults to today")
	line := flag.Float64("line", 2.5, "over/under goals line")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *home == "" || *away == "" {
		fmt.Fprintln(os.Stderr, "usage: goalline -home <team> -away <team> [-country C -league L] [-date YYYY-MM-DD] [-line 2.5]")
		os.Exit(2)
	}

	cfg := config.Load()
	if *verbose {
		logger.SetLevel(logger.DEBUG)
	} else {
		logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	}

	httpClient := transport.NewClient(cfg.HTTPTimeout)

	match := apifootball.New(cfg.APIFootballBaseURL, cfg.APIFootballKey, httpClient)
	if store, err := cache.Open(cfg.CachePath); err == nil {
		defer store.Close()
		match = match.WithCache(store, cfg.CacheTTL)
	}

	weather := openweather.New(cfg.OpenWeatherGeoURL, cfg.OpenWeatherDataURL, cfg.OpenWeatherKey, httpClient)
	odds := oddsapi.New(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, httpClient)

	pipeline := prediction.NewPipeline(match, weather, odds, prediction.Options{
		TeamSearchFallback: fotmob.New(httpClient),
	})

	result, err := pipeline.Predict(context.Background(), prediction.Request{
		HomeTeam: *home,
		AwayTeam: *away,
		Country:  *country,
		League:   *league,
		DateISO:  *date,
		Line:     *line,
	})
	if err != nil {
		logger.Fatal("Prediction failed:", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("Could not encode result:", err)
	}
	fmt.Println(string(out))
}
