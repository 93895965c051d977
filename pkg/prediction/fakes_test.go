package prediction

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// fakeMatchProvider implements MatchProvider with overridable behaviour.
// Nil function fields behave as empty successful lookups.
type fakeMatchProvider struct {
	searchTeam   func(name string) ([]TeamRecord, error)
	searchLeague func(country, name string, season int) ([]LeagueRecord, error)
	fixtures     func(q FixtureQuery) ([]FixtureRecord, error)

	teamCalls    atomic.Int32
	leagueCalls  atomic.Int32
	fixtureCalls atomic.Int32
}

func (f *fakeMatchProvider) SearchTeam(_ context.Context, name string) ([]TeamRecord, error) {
	f.teamCalls.Add(1)
	if f.searchTeam == nil {
		return nil, nil
	}
	return f.searchTeam(name)
}

func (f *fakeMatchProvider) SearchLeague(_ context.Context, country, name string, season int) ([]LeagueRecord, error) {
	f.leagueCalls.Add(1)
	if f.searchLeague == nil {
		return nil, nil
	}
	return f.searchLeague(country, name, season)
}

func (f *fakeMatchProvider) Fixtures(_ context.Context, q FixtureQuery) ([]FixtureRecord, error) {
	f.fixtureCalls.Add(1)
	if f.fixtures == nil {
		return nil, nil
	}
	return f.fixtures(q)
}

type fakeWeatherProvider struct {
	points []GeoPoint
	obs    *Observation

	geoErr error
	obsErr error
}

func (f *fakeWeatherProvider) Geocode(_ context.Context, _, _ string) ([]GeoPoint, error) {
	return f.points, f.geoErr
}

func (f *fakeWeatherProvider) Current(_ context.Context, _, _ float64) (*Observation, error) {
	return f.obs, f.obsErr
}

type fakeOddsProvider struct {
	events []EventOdds
	err    error

	calls atomic.Int32
}

func (f *fakeOddsProvider) Events(_ context.Context, _ string) ([]EventOdds, error) {
	f.calls.Add(1)
	return f.events, f.err
}

var errProviderDown = errors.New("provider unavailable")

func intPtr(n int) *int { return &n }

// finishedFixture builds an admissible completed fixture from the home
// team's perspective
func finishedFixture(homeID, awayID, homeGoals, awayGoals int, kickoff time.Time) FixtureRecord {
	return FixtureRecord{
		Status:    "FT",
		Kickoff:   kickoff,
		HomeID:    homeID,
		AwayID:    awayID,
		HomeGoals: intPtr(homeGoals),
		AwayGoals: intPtr(awayGoals),
	}
}
