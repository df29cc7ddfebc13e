package stake

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/covenantos/trustcore/pkg/canonicalize"
	"github.com/covenantos/trustcore/pkg/crypto"
)

// DelegationStatus is the lifecycle state of a delegation.
type DelegationStatus string

const (
	DelegationActive DelegationStatus = "active"
	DelegationBurned DelegationStatus = "burned"
)

// Delegation is a sponsor vouching for a protégé within a set of scopes,
// with the sponsor's reputation at risk up to RiskAmount. Both parties sign
// the same canonical content independently.
type Delegation struct {
	ID                  string           `json:"id"`
	SponsorIdentityHash string           `json:"sponsor_identity_hash"`
	ProtegeIdentityHash string           `json:"protege_identity_hash"`
	RiskAmount          float64          `json:"risk_amount"`
	Scopes              []string         `json:"scopes"`
	ExpiresAt           time.Time        `json:"expires_at"`
	Status              DelegationStatus `json:"status"`
	SponsorSignature    string           `json:"sponsor_signature"`
	ProtegeSignature    string           `json:"protege_signature"`
}

type delegationContent struct {
	ID                  string    `json:"id"`
	SponsorIdentityHash string    `json:"sponsor_identity_hash"`
	ProtegeIdentityHash string    `json:"protege_identity_hash"`
	RiskAmount          float64   `json:"risk_amount"`
	Scopes              []string  `json:"scopes"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// CreateDelegation builds a dual-signed, active delegation.
func CreateDelegation(sponsor, protege crypto.Signer, sponsorIdentityHash, protegeIdentityHash string, riskAmount float64, scopes []string, expiresAt time.Time) (Delegation, error) {
	if riskAmount < 0 || riskAmount > 1 {
		return Delegation{}, fmt.Errorf("risk_amount must be within [0, 1], got %v", riskAmount)
	}
	if len(scopes) == 0 {
		return Delegation{}, fmt.Errorf("scopes must not be empty")
	}
	d := Delegation{
		ID:                  uuid.New().String(),
		SponsorIdentityHash: sponsorIdentityHash,
		ProtegeIdentityHash: protegeIdentityHash,
		RiskAmount:          riskAmount,
		Scopes:              append([]string(nil), scopes...),
		ExpiresAt:           expiresAt,
		Status:              DelegationActive,
	}
	content, err := canonicalize.JCSString(delegationContent{
		ID:                  d.ID,
		SponsorIdentityHash: d.SponsorIdentityHash,
		ProtegeIdentityHash: d.ProtegeIdentityHash,
		RiskAmount:          d.RiskAmount,
		Scopes:              d.Scopes,
		ExpiresAt:           d.ExpiresAt,
	})
	if err != nil {
		return Delegation{}, err
	}
	if d.SponsorSignature, err = sponsor.Sign(content); err != nil {
		return Delegation{}, fmt.Errorf("sponsor signature failed: %w", err)
	}
	if d.ProtegeSignature, err = protege.Sign(content); err != nil {
		return Delegation{}, fmt.Errorf("protégé signature failed: %w", err)
	}
	return d, nil
}

// BurnDelegation returns a burned copy of d. Burned is terminal.
func BurnDelegation(d Delegation) (Delegation, error) {
	if d.Status != DelegationActive {
		return Delegation{}, fmt.Errorf("delegation %s is %s, not active", d.ID, d.Status)
	}
	burned := d
	burned.Status = DelegationBurned
	return burned, nil
}
