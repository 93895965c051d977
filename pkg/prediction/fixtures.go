package prediction

import (
	"context"
	"sort"
	"time"

	"goalline/internal/logger"
)

// UpcomingFixture is one scheduled match inside the requested window
type UpcomingFixture struct {
	LeagueID  int       `json:"leagueId"`
	League    string    `json:"league"`
	Country   string    `json:"country"`
	SportKey  string    `json:"sportKey,omitempty"`
	FixtureID int       `json:"fixtureId"`
	Kickoff   time.Time `json:"kickoff"`
	Home      string    `json:"home"`
	Away      string    `json:"away"`
	Status    string    `json:"status"`
	Venue     string    `json:"venue,omitempty"`
}

const (
	minWindowHours    = 1
	maxWindowHours    = 168
	fixturesPerLeague = 30
	maxListedFixtures = 100
)

// UpcomingFixtures lists matches kicking off within the next `hours` hours
// across the configured league catalogue, soonest first, capped at 100.
// Leagues that fail to resolve or list are skipped rather than failing the
// whole feed.
func (p *Pipeline) UpcomingFixtures(ctx context.Context, hours int) ([]UpcomingFixture, error) {
	if hours < minWindowHours {
		hours = minWindowHours
	}
	if hours > maxWindowHours {
		hours = maxWindowHours
	}

	resolver := NewResolver(p.provider, p.options.LeagueTable, p.options.TeamSearchFallback)
	season, _ := InferSeason("")
	now := time.Now().UTC()
	cutoff := now.Add(time.Duration(hours) * time.Hour)

	var all []UpcomingFixture
	for _, entry := range p.options.Catalog {
		league := resolver.ResolveLeague(ctx, entry.Country, entry.League, season)
		if !league.Resolved() {
			continue
		}

		fixtures, err := p.provider.Fixtures(ctx, FixtureQuery{
			LeagueID: league.ProviderID,
			Next:     fixturesPerLeague,
		})
		if err != nil {
			logger.Warn("Fixture listing failed for league:", entry.League, err)
			continue
		}

		for _, f := range fixtures {
			if f.Kickoff.Before(now) || f.Kickoff.After(cutoff) {
				continue
			}
			all = append(all, UpcomingFixture{
				LeagueID:  league.ProviderID,
				League:    entry.League,
				Country:   entry.Country,
				SportKey:  entry.SportKey,
				FixtureID: f.ID,
				Kickoff:   f.Kickoff,
				Home:      f.HomeName,
				Away:      f.AwayName,
				Status:    f.Status,
				Venue:     f.Venue,
			})
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Kickoff.Before(all[j].Kickoff)
	})
	if len(all) > maxListedFixtures {
		all = all[:maxListedFixtures]
	}
	return all, nil
}
