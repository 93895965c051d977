package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	mutations := []func(*PredictionConfig){
		func(c *PredictionConfig) { c.LeagueAverage = 0 },
		func(c *PredictionConfig) { c.LambdaFloor = 0 },
		func(c *PredictionConfig) { c.LambdaFloor = 6; c.LambdaCap = 5 },
		func(c *PredictionConfig) { c.Iterations = 500 },
		func(c *PredictionConfig) { c.FormSampleSize = 0 },
		func(c *PredictionConfig) { c.ImpactFloor = 1.2; c.ImpactCap = 1.1 },
		func(c *PredictionConfig) { c.ImpactCap = 3.0 },
	}

	for i, mutate := range mutations {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, ValidateConfig(cfg), "mutation %d", i)
	}
}

func TestUpdateConfigRejectsInvalid(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	bad := DefaultConfig()
	bad.Iterations = 0
	assert.Error(t, UpdateConfig(bad))
	assert.Same(t, original, Config)

	good := DefaultConfig()
	good.Iterations = 50000
	require.NoError(t, UpdateConfig(good))
	assert.Equal(t, 50000, Config.Iterations)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.05, clamp(0.01, 0.05, 5.0))
	assert.Equal(t, 5.0, clamp(7.2, 0.05, 5.0))
	assert.Equal(t, 1.3, clamp(1.3, 0.05, 5.0))
}
