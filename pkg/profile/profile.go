// Package profile computes the five-axis anti-gaming trust profile. The
// composite is a weighted geometric mean, so any zeroed dimension collapses
// it: specializing in one axis at the expense of the others does not pay.
package profile

import (
	"math"
)

// Dimension names, in canonical order.
const (
	DimHardEnforcement     = "hard_enforcement"
	DimAttestationCoverage = "attestation_coverage"
	DimCovenantBreadth     = "covenant_breadth"
	DimHistoryDepth        = "history_depth"
	DimStakeRatio          = "stake_ratio"
)

var dimensionOrder = []string{
	DimHardEnforcement,
	DimAttestationCoverage,
	DimCovenantBreadth,
	DimHistoryDepth,
	DimStakeRatio,
}

const defaultWeight = 0.2

// Dimension is one scored trust axis.
type Dimension struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Evidence int     `json:"evidence"`
}

// Profile is the composite five-axis trust profile.
type Profile struct {
	Dimensions       []Dimension `json:"dimensions"`
	CompositeScore   float64     `json:"composite_score"`
	GamingResistance float64     `json:"gaming_resistance"`
}

// Inputs carries the raw per-axis scores plus optional sparse overrides for
// weights and evidence counts, keyed by dimension name.
type Inputs struct {
	HardEnforcement     float64            `json:"hard_enforcement"`
	AttestationCoverage float64            `json:"attestation_coverage"`
	CovenantBreadth     float64            `json:"covenant_breadth"`
	HistoryDepth        float64            `json:"history_depth"`
	StakeRatio          float64            `json:"stake_ratio"`
	Weights             map[string]float64 `json:"weights,omitempty"`
	Evidence            map[string]int     `json:"evidence,omitempty"`
}

// Compute clamps each raw score to [0, 1] and derives the composite score
// and gaming resistance. Gaming resistance is 1.0 for a perfectly balanced
// profile and 0.0 for a maximally unbalanced one.
func Compute(in Inputs) Profile {
	raw := map[string]float64{
		DimHardEnforcement:     in.HardEnforcement,
		DimAttestationCoverage: in.AttestationCoverage,
		DimCovenantBreadth:     in.CovenantBreadth,
		DimHistoryDepth:        in.HistoryDepth,
		DimStakeRatio:          in.StakeRatio,
	}

	p := Profile{Dimensions: make([]Dimension, 0, len(dimensionOrder))}
	composite := 1.0
	minScore, maxScore := 1.0, 0.0
	for _, name := range dimensionOrder {
		score := clamp01(raw[name])
		weight := defaultWeight
		if w, ok := in.Weights[name]; ok {
			weight = w
		}
		evidence := 1
		if e, ok := in.Evidence[name]; ok {
			evidence = e
		}
		p.Dimensions = append(p.Dimensions, Dimension{
			Name:     name,
			Score:    score,
			Weight:   weight,
			Evidence: evidence,
		})
		composite *= math.Pow(score, weight)
		minScore = math.Min(minScore, score)
		maxScore = math.Max(maxScore, score)
	}
	p.CompositeScore = composite
	p.GamingResistance = 1 - maxScore + minScore
	return p
}

// ComparisonWinner labels which profile wins a dimension.
type ComparisonWinner string

const (
	WinnerA   ComparisonWinner = "a"
	WinnerB   ComparisonWinner = "b"
	WinnerTie ComparisonWinner = "tie"
)

// Comparison is a per-dimension and overall Pareto comparison of two
// profiles.
type Comparison struct {
	Dimensions map[string]ComparisonWinner `json:"dimensions"`
	Dominates  string                      `json:"dominates"` // "a", "b", or "neither"
}

// Compare labels each dimension by strict score comparison and decides
// Pareto dominance: a profile dominates when it is at least as good on every
// axis and strictly better on at least one.
func Compare(a, b Profile) Comparison {
	cmp := Comparison{Dimensions: make(map[string]ComparisonWinner, len(dimensionOrder))}
	aNoWorse, bNoWorse := true, true
	aBetterSomewhere, bBetterSomewhere := false, false
	for i, name := range dimensionOrder {
		as, bs := a.Dimensions[i].Score, b.Dimensions[i].Score
		switch {
		case as > bs:
			cmp.Dimensions[name] = WinnerA
			aBetterSomewhere = true
			bNoWorse = false
		case bs > as:
			cmp.Dimensions[name] = WinnerB
			bBetterSomewhere = true
			aNoWorse = false
		default:
			cmp.Dimensions[name] = WinnerTie
		}
	}
	switch {
	case aNoWorse && aBetterSomewhere:
		cmp.Dominates = "a"
	case bNoWorse && bBetterSomewhere:
		cmp.Dominates = "b"
	default:
		cmp.Dominates = "neither"
	}
	return cmp
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
