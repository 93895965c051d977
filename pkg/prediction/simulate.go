package prediction

import (
	"math"
	"math/rand"
	"time"
)

// SimulationResult holds the estimated over/under probabilities.
// PUnder is defined as 1 - POver, so the pair always sums to one exactly.
type SimulationResult struct {
	POver  float64 `json:"pOver"`
	PUnder float64 `json:"pUnder"`
}

// SimulateOverUnder estimates P(total goals > line) by repeated
// independent trials: each trial draws both sides' goal counts from
// Poisson distributions with the given rates. Lambdas are assumed already
// clamped to positive finite values by the caller.
func SimulateOverUnder(lambdaHome, lambdaAway, line float64, iterations int) SimulationResult {
	if iterations < 1 {
		iterations = Config.Iterations
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return simulate(lambdaHome, lambdaAway, line, iterations, rng)
}

func simulate(lambdaHome, lambdaAway, line float64, iterations int, rng *rand.Rand) SimulationResult {
	overCount := 0
	for i := 0; i < iterations; i++ {
		total := poissonRandom(lambdaHome, rng) + poissonRandom(lambdaAway, rng)
		if float64(total) > line {
			overCount++
		}
	}
	pOver := float64(overCount) / float64(iterations)
	return SimulationResult{POver: pOver, PUnder: 1 - pOver}
}

// poissonRandom draws a single Poisson-distributed integer.
// Uses Knuth's algorithm: multiply uniform randoms until the running
// product falls below e^-lambda, counting the draws. For large lambda the
// product underflows slowly and the loop gets long, so a normal
// approximation takes over.
func poissonRandom(lambda float64, rng *rand.Rand) int {
	if lambda < 30 {
		L := math.Exp(-lambda)
		k := 0
		p := 1.0
		for p > L {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}
	normal := rng.NormFloat64()
	n := int(math.Round(lambda + math.Sqrt(lambda)*normal))
	if n < 0 {
		n = 0
	}
	return n
}

// poissonSurvival returns P(X > line) analytically for a total that is the
// sum of two independent Poisson variables. Used by tests to check the
// simulation against the closed form.
func poissonSurvival(lambdaHome, lambdaAway, line float64) float64 {
	lambda := lambdaHome + lambdaAway
	// P(X <= floor(line)) via the CDF terms
	k := int(math.Floor(line))
	if k < 0 {
		return 1
	}
	cdf := 0.0
	term := math.Exp(-lambda)
	for i := 0; i <= k; i++ {
		if i > 0 {
			term *= lambda / float64(i)
		}
		cdf += term
	}
	return 1 - cdf
}
