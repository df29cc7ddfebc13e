package stake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenantos/trustcore/pkg/stake"
)

func TestCreateDelegation_DualSigned(t *testing.T) {
	sponsor := newSigner(t)
	protege := newSigner(t)

	d, err := stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		0.3, []string{"payments", "escrow"}, stakedAt.Add(90*24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, stake.DelegationActive, d.Status)
	assert.Len(t, d.SponsorSignature, 128)
	assert.Len(t, d.ProtegeSignature, 128)
	assert.NotEqual(t, d.SponsorSignature, d.ProtegeSignature,
		"different keys over the same content produce different signatures")
}

func TestCreateDelegation_Validation(t *testing.T) {
	sponsor := newSigner(t)
	protege := newSigner(t)

	_, err := stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		1.5, []string{"payments"}, stakedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk_amount")

	_, err = stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		0.5, nil, stakedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scope")
}

func TestBurnDelegation(t *testing.T) {
	sponsor := newSigner(t)
	protege := newSigner(t)
	d, err := stake.CreateDelegation(sponsor, protege, sponsor.PublicKey(), protege.PublicKey(),
		0.3, []string{"payments"}, stakedAt)
	require.NoError(t, err)

	burned, err := stake.BurnDelegation(d)
	require.NoError(t, err)
	assert.Equal(t, stake.DelegationBurned, burned.Status)
	assert.Equal(t, stake.DelegationActive, d.Status, "input must be unchanged")

	_, err = stake.BurnDelegation(burned)
	assert.Error(t, err, "burned is terminal")
}
