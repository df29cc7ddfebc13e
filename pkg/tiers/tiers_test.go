package tiers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantos/trustcore/pkg/tiers"
)

func TestGet(t *testing.T) {
	tests := []struct {
		id       tiers.TierID
		expected string
	}{
		{tiers.TierBasic, "Basic"},
		{tiers.TierVerified, "Verified"},
		{tiers.TierCertified, "Certified"},
		{tiers.TierInstitutional, "Institutional"},
	}
	for _, tt := range tests {
		tier := tiers.Get(tt.id)
		require.NotNil(t, tier)
		assert.Equal(t, tt.expected, tier.Name)
	}

	assert.Nil(t, tiers.Get("unknown-tier"))
}

func TestAssignTier_Boundaries(t *testing.T) {
	tests := []struct {
		amount   float64
		expected tiers.TierID
	}{
		{0, tiers.TierBasic},
		{1, tiers.TierBasic},
		{9.99, tiers.TierBasic},
		{10, tiers.TierVerified},
		{99.99, tiers.TierVerified},
		{100, tiers.TierCertified},
		{999.99, tiers.TierCertified},
		{1000, tiers.TierInstitutional},
		{50_000, tiers.TierInstitutional},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tiers.AssignTier(tt.amount), "amount %v", tt.amount)
	}
}

func TestTierEconomics(t *testing.T) {
	assert.Equal(t, 0.0001, tiers.Basic.Config.VerificationIncomeRate)
	assert.Equal(t, 0.001, tiers.Institutional.Config.VerificationIncomeRate)
	assert.Equal(t, 5, tiers.Basic.Config.MaxDelegations)
	assert.Equal(t, 1000, tiers.Institutional.Config.MaxDelegations)
	assert.Equal(t, 10.0, tiers.Institutional.Config.ReputationBoost)
}

func TestRecordQuery_NewRecord(t *testing.T) {
	agent := tiers.NewStakedAgent("agent-1", 150)
	assert.Equal(t, tiers.TierCertified, agent.Tier)

	served := tiers.RecordQuery(tiers.RecordQuery(agent))

	assert.EqualValues(t, 2, served.QueriesServed)
	assert.InDelta(t, 0.001, served.EarnedIncome, 1e-12)
	assert.Zero(t, agent.QueriesServed, "input record must be unchanged")
	assert.Zero(t, agent.EarnedIncome)
}

func TestGovernanceVote(t *testing.T) {
	basic := tiers.NewStakedAgent("a", 1)
	institutional := tiers.NewStakedAgent("b", 2000)

	assert.Equal(t, 1.0, tiers.GovernanceVote(basic, 1))
	assert.Equal(t, 20.0, tiers.GovernanceVote(institutional, 1))
	assert.Equal(t, 50.0, tiers.GovernanceVote(institutional, 2.5))
}

func TestHasFeature(t *testing.T) {
	assert.True(t, tiers.Basic.HasFeature("verification_income"))
	assert.False(t, tiers.Basic.HasFeature("sponsor_delegations"))
	assert.True(t, tiers.Certified.HasFeature("sponsor_delegations"))
	assert.True(t, tiers.Institutional.HasFeature("anything"), "\"all\" matches any feature")
}
