package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcomingFixtures(t *testing.T) {
	now := time.Now().UTC()
	provider := &fakeMatchProvider{
		searchLeague: func(country, name string, season int) ([]LeagueRecord, error) {
			if country == "England" {
				return []LeagueRecord{{ID: 39, Name: name, Country: country}}, nil
			}
			// every other catalogue league is unresolvable and must be skipped
			return nil, nil
		},
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			require.Equal(t, 39, q.LeagueID)
			assert.Equal(t, 30, q.Next)
			return []FixtureRecord{
				{ID: 3, Kickoff: now.Add(20 * time.Hour), Status: "NS", HomeName: "Spurs", AwayName: "Fulham"},
				{ID: 1, Kickoff: now.Add(2 * time.Hour), Status: "NS", HomeName: "Arsenal", AwayName: "Chelsea", Venue: "Emirates Stadium"},
				{ID: 9, Kickoff: now.Add(48 * time.Hour), Status: "NS", HomeName: "Leeds", AwayName: "Everton"},
				{ID: 8, Kickoff: now.Add(-1 * time.Hour), Status: "1H", HomeName: "Wolves", AwayName: "Brighton"},
			}, nil
		},
	}

	catalog := []LeagueCatalogEntry{
		{Country: "England", League: "Premier League", SportKey: "soccer_epl"},
		{Country: "Ruritania", League: "First Division"},
	}
	p := NewPipeline(provider, nil, nil, Options{Catalog: catalog})

	fixtures, err := p.UpcomingFixtures(context.Background(), 24)
	require.NoError(t, err)
	require.Len(t, fixtures, 2, "past and beyond-window fixtures excluded")

	// soonest first
	assert.Equal(t, 1, fixtures[0].FixtureID)
	assert.Equal(t, 3, fixtures[1].FixtureID)

	assert.Equal(t, "Premier League", fixtures[0].League)
	assert.Equal(t, "England", fixtures[0].Country)
	assert.Equal(t, "soccer_epl", fixtures[0].SportKey)
	assert.Equal(t, 39, fixtures[0].LeagueID)
	assert.Equal(t, "Emirates Stadium", fixtures[0].Venue)
}

func TestUpcomingFixturesWindowClamp(t *testing.T) {
	now := time.Now().UTC()
	provider := &fakeMatchProvider{
		searchLeague: func(country, name string, season int) ([]LeagueRecord, error) {
			if country == "England" {
				return []LeagueRecord{{ID: 39}}, nil
			}
			return nil, nil
		},
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			return []FixtureRecord{
				{ID: 1, Kickoff: now.Add(30 * time.Minute), Status: "NS"},
				{ID: 2, Kickoff: now.Add(90 * time.Minute), Status: "NS"},
				{ID: 3, Kickoff: now.Add(200 * time.Hour), Status: "NS"},
			}, nil
		},
	}
	catalog := []LeagueCatalogEntry{{Country: "England", League: "Premier League"}}
	p := NewPipeline(provider, nil, nil, Options{Catalog: catalog})
	ctx := context.Background()

	// 0 clamps up to one hour
	fixtures, err := p.UpcomingFixtures(ctx, 0)
	require.NoError(t, err)
	require.Len(t, fixtures, 1)
	assert.Equal(t, 1, fixtures[0].FixtureID)

	// 10000 clamps down to a week
	fixtures, err = p.UpcomingFixtures(ctx, 10000)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)
}

func TestUpcomingFixturesListingFailureSkipsLeague(t *testing.T) {
	provider := &fakeMatchProvider{
		searchLeague: func(country, name string, season int) ([]LeagueRecord, error) {
			return []LeagueRecord{{ID: 1}}, nil
		},
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			return nil, errProviderDown
		},
	}
	catalog := []LeagueCatalogEntry{{Country: "England", League: "Premier League"}}
	p := NewPipeline(provider, nil, nil, Options{Catalog: catalog})

	fixtures, err := p.UpcomingFixtures(context.Background(), 24)
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}
