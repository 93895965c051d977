package prediction

import "fmt"

// PredictionConfig contains all configurable parameters that influence
// prediction outcomes. This centralizes the magic numbers so they can be
// adjusted without touching pipeline logic.
type PredictionConfig struct {
	// === SCORING MODEL ===

	// LeagueAverage is the league-wide baseline scoring rate used when
	// deriving lambdas from form averages
	LeagueAverage float64 // default: 1.30

	// Lambda clamp bounds applied after derivation
	LambdaFloor float64 // default: 0.05
	LambdaCap   float64 // default: 5.0

	// Neutral prior used when no admissible match history exists
	NeutralGoalsFor     float64 // default: 1.2
	NeutralGoalsAgainst float64 // default: 1.2

	// === MONTE CARLO SIMULATION ===

	Iterations int // number of simulation trials (default: 20000)

	// === FORM AGGREGATION ===

	FormSampleSize     int // most recent completed matches considered (default: 10)
	SeasonFallbackBack int // seasons to step back when a season has no data (default: 2)

	// === WEATHER ADJUSTMENT ===

	RainSnowMultiplier  float64 // condition category contains rain/snow (default: 0.95)
	HighWindThreshold   float64 // m/s (default: 12)
	HighWindMultiplier  float64 // default: 0.90
	ModWindThreshold    float64 // m/s (default: 8)
	ModWindMultiplier   float64 // default: 0.95
	ColdThreshold       float64 // °C (default: 0)
	HotThreshold        float64 // °C (default: 30)
	ExtremeTemperatureM float64 // default: 0.97
	ImpactFloor         float64 // default: 0.85
	ImpactCap           float64 // default: 1.10
}

// DefaultConfig returns the configuration with all standard values
func DefaultConfig() *PredictionConfig {
	return &PredictionConfig{
		LeagueAverage: 1.30,
		LambdaFloor:   0.05,
		LambdaCap:     5.0,

		NeutralGoalsFor:     1.2,
		NeutralGoalsAgainst: 1.2,

		Iterations: 20000,

		FormSampleSize:     10,
		SeasonFallbackBack: 2,

		RainSnowMultiplier:  0.95,
		HighWindThreshold:   12,
		HighWindMultiplier:  0.90,
		ModWindThreshold:    8,
		ModWindMultiplier:   0.95,
		ColdThreshold:       0,
		HotThreshold:        30,
		ExtremeTemperatureM: 0.97,
		ImpactFloor:         0.85,
		ImpactCap:           1.10,
	}
}

// Global configuration instance
var Config *PredictionConfig

func init() {
	Config = DefaultConfig()
}

// UpdateConfig replaces the global configuration
func UpdateConfig(newConfig *PredictionConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *PredictionConfig) error {
	if config.LeagueAverage <= 0 {
		return fmt.Errorf("LeagueAverage must be positive, got: %f", config.LeagueAverage)
	}
	if config.LambdaFloor <= 0 || config.LambdaFloor >= config.LambdaCap {
		return fmt.Errorf("lambda bounds invalid: floor %f cap %f", config.LambdaFloor, config.LambdaCap)
	}
	if config.Iterations < 1000 {
		return fmt.Errorf("Iterations should be at least 1000 for accuracy, got: %d", config.Iterations)
	}
	if config.FormSampleSize < 1 {
		return fmt.Errorf("FormSampleSize must be at least 1, got: %d", config.FormSampleSize)
	}
	if config.ImpactFloor >= config.ImpactCap {
		return fmt.Errorf("weather impact bounds invalid: floor %f cap %f", config.ImpactFloor, config.ImpactCap)
	}
	if config.ImpactFloor <= 0 || config.ImpactCap > 2.0 {
		return fmt.Errorf("weather impact bounds out of range: floor %f cap %f", config.ImpactFloor, config.ImpactCap)
	}
	return nil
}

// clamp bounds x to the [lo, hi] interval
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
