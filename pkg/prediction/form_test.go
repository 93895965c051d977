package prediction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestComputeFormAverages(t *testing.T) {
	provider := &fakeMatchProvider{
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			return []FixtureRecord{
				finishedFixture(10, 20, 2, 0, day(0)), // team 10 at home: 2-0
				finishedFixture(30, 10, 1, 1, day(1)), // team 10 away: 1-1
				finishedFixture(10, 40, 0, 3, day(2)), // team 10 at home: 0-3
			}, nil
		},
	}

	form := NewAggregator(provider).ComputeForm(context.Background(), 10, 39, 2025, 10)
	assert.Equal(t, 3, form.SampleSize)
	assert.InDelta(t, 1.0, form.AverageGoalsFor, 1e-9)
	assert.InDelta(t, 4.0/3.0, form.AverageGoalsAgainst, 1e-9)
}

func TestComputeFormTakesMostRecent(t *testing.T) {
	provider := &fakeMatchProvider{
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			// oldest two fixtures are the only ones where the team scored
			fixtures := []FixtureRecord{
				finishedFixture(10, 20, 5, 0, day(0)),
				finishedFixture(10, 20, 5, 0, day(1)),
			}
			for i := 2; i < 12; i++ {
				fixtures = append(fixtures, finishedFixture(10, 20, 0, 1, day(i)))
			}
			return fixtures, nil
		},
	}

	form := NewAggregator(provider).ComputeForm(context.Background(), 10, 39, 2025, 10)
	assert.Equal(t, 10, form.SampleSize)
	assert.InDelta(t, 0.0, form.AverageGoalsFor, 1e-9)
	assert.InDelta(t, 1.0, form.AverageGoalsAgainst, 1e-9)
}

func TestComputeFormAdmissibility(t *testing.T) {
	provider := &fakeMatchProvider{
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			return []FixtureRecord{
				// postponed, no score
				{Status: "PST", Kickoff: day(0), HomeID: 10, AwayID: 20},
				// finished but the provider lost the away count
				{Status: "FT", Kickoff: day(1), HomeID: 10, AwayID: 20, HomeGoals: intPtr(2)},
				// some other pairing entirely
				finishedFixture(30, 40, 4, 4, day(2)),
				// the single admissible record
				finishedFixture(20, 10, 0, 3, day(3)),
			}, nil
		},
	}

	form := NewAggregator(provider).ComputeForm(context.Background(), 10, 39, 2025, 10)
	require.Equal(t, 1, form.SampleSize)
	assert.InDelta(t, 3.0, form.AverageGoalsFor, 1e-9)
	assert.InDelta(t, 0.0, form.AverageGoalsAgainst, 1e-9)
}

func TestComputeFormNeutralPrior(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(&fakeMatchProvider{})

	// unresolved team or league short-circuits without a lookup
	counted := &fakeMatchProvider{}
	skipped := NewAggregator(counted)
	assert.Equal(t, NeutralPrior(), skipped.ComputeForm(ctx, 0, 39, 2025, 10))
	assert.Equal(t, NeutralPrior(), skipped.ComputeForm(ctx, 10, 0, 2025, 10))
	assert.Equal(t, int32(0), counted.fixtureCalls.Load())

	// empty history
	form := agg.ComputeForm(ctx, 10, 39, 2025, 10)
	assert.Equal(t, NeutralPrior(), form)
	assert.Equal(t, 0, form.SampleSize)
	assert.InDelta(t, 1.2, form.AverageGoalsFor, 1e-9)
	assert.InDelta(t, 1.2, form.AverageGoalsAgainst, 1e-9)

	// provider failure degrades the same way
	broken := NewAggregator(&fakeMatchProvider{
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			return nil, errProviderDown
		},
	})
	assert.Equal(t, NeutralPrior(), broken.ComputeForm(ctx, 10, 39, 2025, 10))
}

func TestComputeFormQueriesFinishedOnly(t *testing.T) {
	var seen FixtureQuery
	provider := &fakeMatchProvider{
		fixtures: func(q FixtureQuery) ([]FixtureRecord, error) {
			seen = q
			return nil, nil
		},
	}

	NewAggregator(provider).ComputeForm(context.Background(), 10, 39, 2024, 10)
	assert.Equal(t, FixtureQuery{TeamID: 10, LeagueID: 39, Season: 2024, Status: "FT"}, seen)
}
