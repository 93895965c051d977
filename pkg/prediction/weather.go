package prediction

import (
	"context"
	"strings"

	"goalline/internal/logger"
)

// WeatherImpact is a multiplicative scoring adjustment derived from
// current conditions at the venue. The identity default {1.0, nil} means
// no signal: unknown city, or the provider was unavailable.
type WeatherImpact struct {
	Multiplier float64      `json:"multiplier"`
	Raw        *Observation `json:"raw,omitempty"`
	Detail     string       `json:"detail,omitempty"`
}

func identityImpact(detail string) WeatherImpact {
	return WeatherImpact{Multiplier: 1.0, Detail: detail}
}

// WeatherEstimator converts current conditions into a scoring multiplier
type WeatherEstimator struct {
	provider WeatherProvider
}

func NewWeatherEstimator(provider WeatherProvider) *WeatherEstimator {
	return &WeatherEstimator{provider: provider}
}

// EstimateImpact geocodes the city and derives the impact multiplier from
// current conditions. Adjustments compound multiplicatively and the result
// is clamped to [ImpactFloor, ImpactCap]. Never fails: every problem
// degrades to the identity default with a detail attached.
func (w *WeatherEstimator) EstimateImpact(ctx context.Context, city, country string) WeatherImpact {
	if city == "" {
		return identityImpact("")
	}
	if w.provider == nil {
		return identityImpact("no weather provider configured")
	}

	points, err := w.provider.Geocode(ctx, city, country)
	if err != nil {
		logger.Warn("Geocoding failed:", city, err)
		return identityImpact("geocoding failed: " + err.Error())
	}
	if len(points) == 0 {
		return identityImpact("geocode not found")
	}

	obs, err := w.provider.Current(ctx, points[0].Lat, points[0].Lon)
	if err != nil || obs == nil {
		logger.Warn("Current conditions lookup failed:", city, err)
		detail := "conditions unavailable"
		if err != nil {
			detail = "conditions lookup failed: " + err.Error()
		}
		return identityImpact(detail)
	}

	return WeatherImpact{
		Multiplier: impactMultiplier(obs),
		Raw:        obs,
	}
}

// impactMultiplier applies the condition adjustments in sequence
func impactMultiplier(obs *Observation) float64 {
	impact := 1.0

	category := strings.ToLower(obs.Category)
	if strings.Contains(category, "rain") || strings.Contains(category, "snow") {
		impact *= Config.RainSnowMultiplier
	}

	if obs.WindSpeed >= Config.HighWindThreshold {
		impact *= Config.HighWindMultiplier
	} else if obs.WindSpeed >= Config.ModWindThreshold {
		impact *= Config.ModWindMultiplier
	}

	if obs.TempC <= Config.ColdThreshold || obs.TempC >= Config.HotThreshold {
		impact *= Config.ExtremeTemperatureM
	}

	return clamp(impact, Config.ImpactFloor, Config.ImpactCap)
}
