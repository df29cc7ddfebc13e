package reputation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantos/trustcore/pkg/reputation"
	"github.com/covenantos/trustcore/pkg/stake"
)

func TestCoBurnDelegation(t *testing.T) {
	sponsor := newTestSigner(t)
	protege := newTestSigner(t)

	d, err := stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		0.4, []string{"payments"}, scoringNow.Add(30*24*time.Hour))
	require.NoError(t, err)

	sponsorScore := reputation.Score{
		AgentIdentityHash: sponsor.PublicKey(),
		WeightedScore:     0.9,
		TotalBurned:       0.25,
	}

	result, err := reputation.CoBurnDelegation(d, sponsorScore)
	require.NoError(t, err)

	assert.Equal(t, stake.DelegationBurned, result.Delegation.Status)
	assert.Equal(t, stake.DelegationActive, d.Status, "input delegation must be unchanged")
	assert.InDelta(t, 0.4*0.9, result.SponsorReputationLoss, 1e-12)
	assert.InDelta(t, 0.25+0.36, result.NewSponsorBurned, 1e-12)
}

func TestCoBurnDelegation_AlreadyBurned(t *testing.T) {
	sponsor := newTestSigner(t)
	protege := newTestSigner(t)

	d, err := stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		0.4, []string{"payments"}, scoringNow)
	require.NoError(t, err)
	burned, err := stake.BurnDelegation(d)
	require.NoError(t, err)

	_, err = reputation.CoBurnDelegation(burned, reputation.Score{WeightedScore: 0.5})
	assert.Error(t, err)
}

func TestCoBurn_ZeroReputationSponsorLosesNothing(t *testing.T) {
	sponsor := newTestSigner(t)
	protege := newTestSigner(t)

	d, err := stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		1.0, []string{"ops"}, scoringNow)
	require.NoError(t, err)

	result, err := reputation.CoBurnDelegation(d, reputation.Score{WeightedScore: 0})
	require.NoError(t, err)
	assert.Zero(t, result.SponsorReputationLoss)
	assert.Zero(t, result.NewSponsorBurned)
}
