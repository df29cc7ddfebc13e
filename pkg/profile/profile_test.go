package profile_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantos/trustcore/pkg/profile"
)

func balancedInputs(score float64) profile.Inputs {
	return profile.Inputs{
		HardEnforcement:     score,
		AttestationCoverage: score,
		CovenantBreadth:     score,
		HistoryDepth:        score,
		StakeRatio:          score,
	}
}

func TestCompute_BalancedProfile(t *testing.T) {
	p := profile.Compute(balancedInputs(0.7))

	require.Len(t, p.Dimensions, 5)
	for _, d := range p.Dimensions {
		assert.InDelta(t, 0.7, d.Score, 1e-12)
		assert.InDelta(t, 0.2, d.Weight, 1e-12)
		assert.Equal(t, 1, d.Evidence)
	}
	// Equal weights summing to 1 make the composite the common score.
	assert.InDelta(t, 0.7, p.CompositeScore, 1e-9)
	assert.InDelta(t, 1.0, p.GamingResistance, 1e-12)
}

func TestCompute_SpecialistCollapses(t *testing.T) {
	p := profile.Compute(profile.Inputs{HardEnforcement: 1.0})

	assert.Zero(t, p.CompositeScore, "any zero dimension zeroes the geometric mean")
	assert.InDelta(t, 0.0, p.GamingResistance, 1e-12)
}

func TestCompute_ClampsRawScores(t *testing.T) {
	p := profile.Compute(profile.Inputs{
		HardEnforcement:     1.8,
		AttestationCoverage: -0.3,
		CovenantBreadth:     0.5,
		HistoryDepth:        0.5,
		StakeRatio:          0.5,
	})
	assert.InDelta(t, 1.0, p.Dimensions[0].Score, 1e-12)
	assert.Zero(t, p.Dimensions[1].Score)
}

func TestCompute_WeightAndEvidenceOverrides(t *testing.T) {
	in := balancedInputs(0.5)
	in.Weights = map[string]float64{profile.DimStakeRatio: 0.6}
	in.Evidence = map[string]int{profile.DimHistoryDepth: 12}

	p := profile.Compute(in)

	var stakeRatio, historyDepth profile.Dimension
	for _, d := range p.Dimensions {
		switch d.Name {
		case profile.DimStakeRatio:
			stakeRatio = d
		case profile.DimHistoryDepth:
			historyDepth = d
		}
	}
	assert.InDelta(t, 0.6, stakeRatio.Weight, 1e-12)
	assert.Equal(t, 12, historyDepth.Evidence)

	// 4 dims at weight 0.2, one at 0.6: composite = 0.5^(0.8+0.6)
	assert.InDelta(t, math.Pow(0.5, 1.4), p.CompositeScore, 1e-9)
}

func TestCompare_ParetoDominance(t *testing.T) {
	strong := profile.Compute(balancedInputs(0.8))
	weak := profile.Compute(balancedInputs(0.6))

	cmp := profile.Compare(strong, weak)
	assert.Equal(t, "a", cmp.Dominates)
	for _, winner := range cmp.Dimensions {
		assert.Equal(t, profile.WinnerA, winner)
	}

	assert.Equal(t, "b", profile.Compare(weak, strong).Dominates)
}

func TestCompare_MixedIsNeither(t *testing.T) {
	a := profile.Compute(profile.Inputs{
		HardEnforcement: 0.9, AttestationCoverage: 0.2,
		CovenantBreadth: 0.5, HistoryDepth: 0.5, StakeRatio: 0.5,
	})
	b := profile.Compute(profile.Inputs{
		HardEnforcement: 0.2, AttestationCoverage: 0.9,
		CovenantBreadth: 0.5, HistoryDepth: 0.5, StakeRatio: 0.5,
	})

	cmp := profile.Compare(a, b)
	assert.Equal(t, "neither", cmp.Dominates)
	assert.Equal(t, profile.WinnerA, cmp.Dimensions[profile.DimHardEnforcement])
	assert.Equal(t, profile.WinnerB, cmp.Dimensions[profile.DimAttestationCoverage])
	assert.Equal(t, profile.WinnerTie, cmp.Dimensions[profile.DimCovenantBreadth])
}

func TestCompare_ExactTiesAreNeither(t *testing.T) {
	a := profile.Compute(balancedInputs(0.5))
	b := profile.Compute(balancedInputs(0.5))
	cmp := profile.Compare(a, b)
	assert.Equal(t, "neither", cmp.Dominates)
	for _, winner := range cmp.Dimensions {
		assert.Equal(t, profile.WinnerTie, winner)
	}
}
