package prediction

import (
	"context"
	"sort"
	"time"

	"goalline/internal/logger"
)

// MatchRecord is one completed fixture from a single team's perspective
type MatchRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	GoalsFor     int       `json:"goalsFor"`
	GoalsAgainst int       `json:"goalsAgainst"`
}

// FormStats holds average goals for/against over a team's recent sample.
// A zero SampleSize means the neutral prior is in effect.
type FormStats struct {
	AverageGoalsFor     float64 `json:"averageGoalsFor"`
	AverageGoalsAgainst float64 `json:"averageGoalsAgainst"`
	SampleSize          int     `json:"sampleSize"`
}

// NeutralPrior is the default scoring-rate estimate used when no
// historical data is available
func NeutralPrior() FormStats {
	return FormStats{
		AverageGoalsFor:     Config.NeutralGoalsFor,
		AverageGoalsAgainst: Config.NeutralGoalsAgainst,
		SampleSize:          0,
	}
}

// Aggregator computes recent-form statistics from completed fixtures
type Aggregator struct {
	provider MatchProvider
}

func NewAggregator(provider MatchProvider) *Aggregator {
	return &Aggregator{provider: provider}
}

// finishedStatus is the provider status code for completed fixtures
const finishedStatus = "FT"

// ComputeForm derives FormStats for a team within one league+season from
// its n most recent completed matches. An empty sample returns the neutral
// prior; season fallback is driven by the caller, which must keep both
// teams on the same season.
func (a *Aggregator) ComputeForm(ctx context.Context, teamID, leagueID, season, n int) FormStats {
	if teamID == 0 || leagueID == 0 {
		return NeutralPrior()
	}

	fixtures, err := a.provider.Fixtures(ctx, FixtureQuery{
		TeamID:   teamID,
		LeagueID: leagueID,
		Season:   season,
		Status:   finishedStatus,
	})
	if err != nil {
		logger.Warn("Fixture lookup failed, using neutral prior:", teamID, season, err)
		return NeutralPrior()
	}

	records := toMatchRecords(teamID, fixtures)
	if len(records) == 0 {
		return NeutralPrior()
	}

	// most recent first
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if len(records) > n {
		records = records[:n]
	}

	var gf, ga int
	for _, rec := range records {
		gf += rec.GoalsFor
		ga += rec.GoalsAgainst
	}
	count := float64(len(records))
	return FormStats{
		AverageGoalsFor:     float64(gf) / count,
		AverageGoalsAgainst: float64(ga) / count,
		SampleSize:          len(records),
	}
}

// toMatchRecords converts fixtures to the team's perspective, keeping only
// admissible ones: finished status and numeric goal counts on both sides
func toMatchRecords(teamID int, fixtures []FixtureRecord) []MatchRecord {
	var records []MatchRecord
	for _, f := range fixtures {
		if f.Status != finishedStatus {
			continue
		}
		if f.HomeGoals == nil || f.AwayGoals == nil {
			continue
		}
		rec := MatchRecord{Timestamp: f.Kickoff}
		switch teamID {
		case f.HomeID:
			rec.GoalsFor = *f.HomeGoals
			rec.GoalsAgainst = *f.AwayGoals
		case f.AwayID:
			rec.GoalsFor = *f.AwayGoals
			rec.GoalsAgainst = *f.HomeGoals
		default:
			continue
		}
		records = append(records, rec)
	}
	return records
}
