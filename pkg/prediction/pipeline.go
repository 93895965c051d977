package prediction

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"goalline/internal/logger"
)

// Request is the single operation the prediction core exposes to callers
type Request struct {
	HomeTeam string  `json:"home"`
	AwayTeam string  `json:"away"`
	Country  string  `json:"country,omitempty"`
	League   string  `json:"league,omitempty"`
	DateISO  string  `json:"date,omitempty"`
	Line     float64 `json:"line"`
}

// Result is the assembled prediction. Degraded is set whenever any
// component fell back to its default, with the reasons listed, so callers
// can tell "no signal" from "no data".
type Result struct {
	Inputs Request `json:"inputs"`
	Season int     `json:"season"`

	Home   TeamIdentity   `json:"home"`
	Away   TeamIdentity   `json:"away"`
	League LeagueIdentity `json:"league"`

	HomeForm   FormStats `json:"homeForm"`
	AwayForm   FormStats `json:"awayForm"`
	FormSeason int       `json:"formSeason"`

	Weather WeatherImpact `json:"weather"`
	Odds    *OddsQuote    `json:"odds"`

	LambdaHome float64 `json:"lambdaHome"`
	LambdaAway float64 `json:"lambdaAway"`

	POver  float64 `json:"pOver"`
	PUnder float64 `json:"pUnder"`

	Degraded        bool     `json:"degraded"`
	DegradedReasons []string `json:"degradedReasons,omitempty"`
}

func (r *Result) degrade(reason string) {
	r.Degraded = true
	r.DegradedReasons = append(r.DegradedReasons, reason)
}

// Options carries the injected static tables. Zero values are usable:
// an empty league table forces provider search, an empty sport-key table
// disables odds reconciliation.
type Options struct {
	// LeagueTable maps LeagueKey(country, league) to the provider league id
	LeagueTable map[string]int
	// SportKeys maps LeagueKey(country, league) to the odds provider sport key
	SportKeys map[string]string
	// TeamSearchFallback is tried when the match provider search finds nothing
	TeamSearchFallback TeamSearcher
	// Catalog drives the upcoming-fixtures listing; nil means DefaultLeagueCatalog
	Catalog []LeagueCatalogEntry
}

// Pipeline sequences identity resolution, form aggregation, weather
// adjustment, simulation and odds reconciliation. It is the only
// component that knows the full order; data flows one way through it.
type Pipeline struct {
	provider MatchProvider
	weather  *WeatherEstimator
	odds     *Reconciler
	form     *Aggregator
	options  Options
}

func NewPipeline(match MatchProvider, weather WeatherProvider, odds OddsProvider, options Options) *Pipeline {
	if options.SportKeys == nil {
		options.SportKeys = DefaultSportKeys()
	}
	if options.Catalog == nil {
		options.Catalog = DefaultLeagueCatalog()
	}
	return &Pipeline{
		provider: match,
		weather:  NewWeatherEstimator(weather),
		odds:     NewReconciler(odds, options.SportKeys),
		form:     NewAggregator(match),
		options:  options,
	}
}

// Predict runs one prediction. Only invalid input and double team
// resolution failure return an error; everything else degrades to
// defaults and is reported on the result.
func (p *Pipeline) Predict(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.HomeTeam) == "" || strings.TrimSpace(req.AwayTeam) == "" {
		return nil, fmt.Errorf("%w: home and away team names are required", ErrInvalidInput)
	}

	season, err := InferSeason(req.DateISO)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	result := &Result{Inputs: req, Season: season}

	// identities are cached per run, so a fresh resolver per request
	resolver := NewResolver(p.provider, p.options.LeagueTable, p.options.TeamSearchFallback)

	// home and away resolution have no data dependency
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Home = resolver.ResolveTeam(ctx, req.HomeTeam)
	}()
	go func() {
		defer wg.Done()
		result.Away = resolver.ResolveTeam(ctx, req.AwayTeam)
	}()
	wg.Wait()

	if !result.Home.Resolved() && !result.Away.Resolved() {
		return nil, fmt.Errorf("%w: %q and %q", ErrTeamsUnresolved, req.HomeTeam, req.AwayTeam)
	}
	if !result.Home.Resolved() {
		result.degrade("home team unresolved")
	}
	if !result.Away.Resolved() {
		result.degrade("away team unresolved")
	}

	if req.Country != "" && req.League != "" {
		result.League = resolver.ResolveLeague(ctx, req.Country, req.League, season)
		if !result.League.Resolved() {
			result.degrade("league unresolved")
		}
	}

	p.aggregateForm(ctx, result)
	lambdaHome, lambdaAway := DeriveLambdas(result.HomeForm, result.AwayForm)

	// odds reconciliation is independent of the scoring model; run it
	// alongside the weather lookup and simulation
	oddsCh := make(chan oddsOutcome, 1)
	go func() {
		oddsCh <- p.reconcileOdds(ctx, req)
	}()

	result.Weather = p.estimateWeather(ctx, req, result)
	lambdaHome *= result.Weather.Multiplier
	lambdaAway *= result.Weather.Multiplier
	result.LambdaHome = lambdaHome
	result.LambdaAway = lambdaAway

	sim := SimulateOverUnder(lambdaHome, lambdaAway, req.Line, Config.Iterations)
	result.POver = sim.POver
	result.PUnder = sim.PUnder

	outcome := <-oddsCh
	result.Odds = outcome.quote
	if outcome.reason != "" {
		result.degrade(outcome.reason)
	}
	return result, nil
}

// aggregateForm walks the season fallback chain jointly: a season counts
// only when both teams have at least one admissible record in it. When the
// chain is exhausted both teams get the neutral prior.
func (p *Pipeline) aggregateForm(ctx context.Context, result *Result) {
	result.FormSeason = result.Season
	leagueID := result.League.ProviderID

	for back := 0; back <= Config.SeasonFallbackBack; back++ {
		season := result.Season - back
		var home, away FormStats
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			home = p.form.ComputeForm(ctx, result.Home.ProviderID, leagueID, season, Config.FormSampleSize)
		}()
		go func() {
			defer wg.Done()
			away = p.form.ComputeForm(ctx, result.Away.ProviderID, leagueID, season, Config.FormSampleSize)
		}()
		wg.Wait()

		if home.SampleSize > 0 && away.SampleSize > 0 {
			result.HomeForm = home
			result.AwayForm = away
			result.FormSeason = season
			if back > 0 {
				result.degrade(fmt.Sprintf("form taken from season %d", season))
			}
			return
		}
	}

	result.HomeForm = NeutralPrior()
	result.AwayForm = NeutralPrior()
	result.degrade("no match history, neutral prior in effect")
}

// DeriveLambdas computes the base scoring rates from form averages
func DeriveLambdas(home, away FormStats) (float64, float64) {
	lambdaHome := clamp(home.AverageGoalsFor*away.AverageGoalsAgainst/Config.LeagueAverage,
		Config.LambdaFloor, Config.LambdaCap)
	lambdaAway := clamp(away.AverageGoalsFor*home.AverageGoalsAgainst/Config.LeagueAverage,
		Config.LambdaFloor, Config.LambdaCap)
	return lambdaHome, lambdaAway
}

// estimateWeather prefers the resolved venue city; guessing a city from
// the team name is the inferior fallback the original data left us with
func (p *Pipeline) estimateWeather(ctx context.Context, req Request, result *Result) WeatherImpact {
	city := result.Home.HomeCity
	country := result.Home.HomeCountry
	if country == "" {
		country = req.Country
	}
	if city == "" && req.Country != "" {
		words := strings.Fields(req.HomeTeam)
		if len(words) > 0 {
			city = words[len(words)-1]
			result.degrade("weather city guessed from team name")
		}
	}
	if city == "" {
		return identityImpact("")
	}

	impact := p.weather.EstimateImpact(ctx, city, country)
	if impact.Detail != "" {
		result.degrade("weather: " + impact.Detail)
	}
	return impact
}

type oddsOutcome struct {
	quote  *OddsQuote
	reason string
}

// reconcileOdds attempts market reconciliation; failure never aborts the run
func (p *Pipeline) reconcileOdds(ctx context.Context, req Request) oddsOutcome {
	sportKey, ok := p.odds.SportKey(req.Country, req.League)
	if !ok {
		return oddsOutcome{reason: "odds: league not mapped to a sport key"}
	}
	quote, err := p.odds.FindClosestTotal(ctx, req.HomeTeam, req.AwayTeam, sportKey, req.Line)
	if err != nil {
		logger.Warn("Odds reconciliation failed:", sportKey, err)
		return oddsOutcome{reason: "odds: snapshot unavailable"}
	}
	return oddsOutcome{quote: quote}
}
