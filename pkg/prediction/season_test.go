package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferSeason(t *testing.T) {
	testCases := []struct {
		date   string
		season int
	}{
		{"2025-08-15", 2025},
		{"2025-07-01", 2025},
		{"2025-12-31", 2025},
		{"2025-03-02", 2024},
		{"2025-06-30", 2024},
		{"2025-01-01", 2024},
		{"2024-05-11T15:00:00Z", 2023},
	}

	for _, tc := range testCases {
		season, err := InferSeason(tc.date)
		require.NoError(t, err, "date %s", tc.date)
		assert.Equal(t, tc.season, season, "date %s", tc.date)
	}
}

func TestInferSeasonEmptyDate(t *testing.T) {
	season, err := InferSeason("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Year(), season)
}

func TestInferSeasonInvalid(t *testing.T) {
	for _, date := range []string{"nonsense", "2025", "year-08-01", "2025-xx-01", "2025-13-01", "2025-00-01"} {
		_, err := InferSeason(date)
		assert.Error(t, err, "date %s", date)
	}
}
