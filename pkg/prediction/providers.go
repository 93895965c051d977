package prediction

import (
	"context"
	"encoding/json"
	"time"
)

// The prediction core consumes three provider-shaped services it does not
// implement. Concrete clients live in pkg/providers; tests substitute fakes.

// TeamRecord is one candidate returned by a team search
type TeamRecord struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// LeagueRecord is one candidate returned by a league search
type LeagueRecord struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// FixtureQuery selects fixtures from the match provider.
// Zero-valued fields are omitted from the upstream query.
type FixtureQuery struct {
	TeamID   int
	LeagueID int
	Season   int
	Status   string // provider status code, e.g. "FT" for finished
	Next     int    // number of upcoming fixtures, mutually exclusive with Status
}

// FixtureRecord is one fixture as reported by the match provider.
// Goal counts are pointers: nil means the provider reported no numeric
// count, which makes the fixture inadmissible for form aggregation.
type FixtureRecord struct {
	ID        int       `json:"id"`
	Kickoff   time.Time `json:"kickoff"`
	Status    string    `json:"status"`
	HomeID    int       `json:"homeId"`
	AwayID    int       `json:"awayId"`
	HomeName  string    `json:"homeName"`
	AwayName  string    `json:"awayName"`
	HomeGoals *int      `json:"homeGoals"`
	AwayGoals *int      `json:"awayGoals"`
	Venue     string    `json:"venue,omitempty"`
}

// MatchProvider supplies team, league and fixture data
type MatchProvider interface {
	SearchTeam(ctx context.Context, name string) ([]TeamRecord, error)
	SearchLeague(ctx context.Context, country, name string, season int) ([]LeagueRecord, error)
	Fixtures(ctx context.Context, q FixtureQuery) ([]FixtureRecord, error)
}

// TeamSearcher is the subset of MatchProvider used by the resolver's
// last-resort fallback source
type TeamSearcher interface {
	SearchTeam(ctx context.Context, name string) ([]TeamRecord, error)
}

// GeoPoint is a geocoding result
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation holds current conditions at a location. Raw preserves the
// provider payload verbatim for the assembled result.
type Observation struct {
	Category  string          `json:"category"` // provider condition category, e.g. "Rain"
	WindSpeed float64         `json:"windSpeed"`
	TempC     float64         `json:"tempC"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// WeatherProvider supplies geocoding and current conditions
type WeatherProvider interface {
	Geocode(ctx context.Context, city, country string) ([]GeoPoint, error)
	Current(ctx context.Context, lat, lon float64) (*Observation, error)
}

// TotalsOutcome is a single priced side of a totals market
type TotalsOutcome struct {
	Line  float64 `json:"line"`
	Side  string  `json:"side"` // "over" or "under"
	Price float64 `json:"price"`
}

// BookmakerOdds groups one bookmaker's totals outcomes for an event
type BookmakerOdds struct {
	Key    string          `json:"key"`
	Totals []TotalsOutcome `json:"totals"`
}

// EventOdds is one event in a market snapshot
type EventOdds struct {
	HomeTeam   string          `json:"homeTeam"`
	AwayTeam   string          `json:"awayTeam"`
	Bookmakers []BookmakerOdds `json:"bookmakers"`
}

// OddsProvider supplies market snapshots per sport key
type OddsProvider interface {
	Events(ctx context.Context, sportKey string) ([]EventOdds, error)
}
