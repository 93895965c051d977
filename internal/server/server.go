// Package server exposes the prediction pipeline over HTTP. The sources
// endpoints additionally surface each upstream provider in isolation so a
// degraded prediction can be traced to the component that degraded it.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"goalline/internal/metrics"
	"goalline/pkg/prediction"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	pipeline *prediction.Pipeline
	provider prediction.MatchProvider
	weather  *prediction.WeatherEstimator
	odds     *prediction.Reconciler
	form     *prediction.Aggregator
	options  prediction.Options
	recorder *metrics.Recorder
}

// NewHandler creates a new handler. The standalone components mirror the
// ones the pipeline builds internally so the sources endpoints report the
// same data the pipeline consumes.
func NewHandler(pipeline *prediction.Pipeline, match prediction.MatchProvider, weather prediction.WeatherProvider, odds prediction.OddsProvider, options prediction.Options, recorder *metrics.Recorder) *Handler {
	if options.SportKeys == nil {
		options.SportKeys = prediction.DefaultSportKeys()
	}
	return &Handler{
		pipeline: pipeline,
		provider: match,
		weather:  prediction.NewWeatherEstimator(weather),
		odds:     prediction.NewReconciler(odds, options.SportKeys),
		form:     prediction.NewAggregator(match),
		options:  options,
		recorder: recorder,
	}
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "goalline",
	})
}

// Predict runs a full prediction for one match
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req prediction.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	start := time.Now()
	result, err := h.pipeline.Predict(r.Context(), req)
	h.recorder.RecordPredictDuration(time.Since(start))
	h.recorder.RecordPrediction(result != nil && result.Degraded, err)

	if err != nil {
		switch {
		case errors.Is(err, prediction.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, prediction.ErrTeamsUnresolved):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Fixtures24h lists upcoming fixtures across the league catalogue.
// The window defaults to 24 hours and is clamped server-side.
func (h *Handler) Fixtures24h(w http.ResponseWriter, r *http.Request) {
	hours := 24
	if raw := r.URL.Query().Get("hours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "hours must be an integer")
			return
		}
		hours = parsed
	}

	fixtures, err := h.pipeline.UpcomingFixtures(r.Context(), hours)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"windowHours": hours,
		"count":       len(fixtures),
		"fixtures":    fixtures,
	})
}

// sourceFixtureResponse is the raw material behind a prediction: resolved
// ids, recent form and the base scoring rates before weather adjustment.
type sourceFixtureResponse struct {
	Source string `json:"source"`
	Home   string `json:"home"`
	Away   string `json:"away"`
	Season int    `json:"season"`

	HomeID   int `json:"homeId"`
	AwayID   int `json:"awayId"`
	LeagueID int `json:"leagueId"`

	HomeForm prediction.FormStats `json:"homeForm"`
	AwayForm prediction.FormStats `json:"awayForm"`

	LambdaHome float64 `json:"lambdaHome"`
	LambdaAway float64 `json:"lambdaAway"`
}

// SourceFixture reports the match-data provider's view of one fixture
func (h *Handler) SourceFixture(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	home, away := q.Get("home"), q.Get("away")
	if home == "" || away == "" {
		respondError(w, http.StatusBadRequest, "home and away are required")
		return
	}

	season, err := prediction.InferSeason(q.Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if raw := q.Get("season"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "season must be an integer")
			return
		}
		season = parsed
	}

	ctx := r.Context()
	resolver := prediction.NewResolver(h.provider, h.options.LeagueTable, h.options.TeamSearchFallback)
	homeTeam := resolver.ResolveTeam(ctx, home)
	awayTeam := resolver.ResolveTeam(ctx, away)
	h.recorder.RecordProviderCall("api-football", nil)

	var league prediction.LeagueIdentity
	if q.Get("country") != "" && q.Get("league") != "" {
		league = resolver.ResolveLeague(ctx, q.Get("country"), q.Get("league"), season)
	}

	n := prediction.Config.FormSampleSize
	homeForm := h.form.ComputeForm(ctx, homeTeam.ProviderID, league.ProviderID, season, n)
	awayForm := h.form.ComputeForm(ctx, awayTeam.ProviderID, league.ProviderID, season, n)
	lambdaHome, lambdaAway := prediction.DeriveLambdas(homeForm, awayForm)

	respondJSON(w, http.StatusOK, sourceFixtureResponse{
		Source:     "api-football",
		Home:       home,
		Away:       away,
		Season:     season,
		HomeID:     homeTeam.ProviderID,
		AwayID:     awayTeam.ProviderID,
		LeagueID:   league.ProviderID,
		HomeForm:   homeForm,
		AwayForm:   awayForm,
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
	})
}

// SourceWeather reports current conditions and the derived impact for a city
func (h *Handler) SourceWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")
	if city == "" {
		respondError(w, http.StatusBadRequest, "city is required")
		return
	}

	impact := h.weather.EstimateImpact(r.Context(), city, q.Get("country"))
	if impact.Detail != "" {
		h.recorder.RecordProviderCall("openweather", errors.New(impact.Detail))
		respondError(w, http.StatusNotFound, impact.Detail)
		return
	}
	h.recorder.RecordProviderCall("openweather", nil)

	respondJSON(w, http.StatusOK, map[string]any{
		"source":  "openweather",
		"city":    city,
		"country": q.Get("country"),
		"weather": impact.Raw,
		"impact":  impact.Multiplier,
	})
}

// SourceOdds reports the closest quoted totals line for one event
func (h *Handler) SourceOdds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	home, away := q.Get("home"), q.Get("away")
	country, league := q.Get("country"), q.Get("league")
	if home == "" || away == "" || country == "" || league == "" {
		respondError(w, http.StatusBadRequest, "home, away, country and league are required")
		return
	}

	line := 2.5
	if raw := q.Get("line"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "line must be a number")
			return
		}
		line = parsed
	}

	sportKey, ok := h.odds.SportKey(country, league)
	if !ok {
		respondError(w, http.StatusBadRequest, "league not mapped to a sport key")
		return
	}

	quote, err := h.odds.FindClosestTotal(r.Context(), home, away, sportKey, line)
	h.recorder.RecordProviderCall("odds-api", err)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"source": "the-odds-api",
		"query": map[string]any{
			"home":    home,
			"away":    away,
			"country": country,
			"league":  league,
			"line":    line,
		},
		"best": quote,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
