package stake

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/covenantos/trustcore/pkg/canonicalize"
	"github.com/covenantos/trustcore/pkg/crypto"
)

// EndorsementBasis is the evidence an endorser claims for vouching.
type EndorsementBasis struct {
	CovenantsCompleted  int      `json:"covenants_completed"`
	BreachRate          float64  `json:"breach_rate"`
	AverageOutcomeScore *float64 `json:"average_outcome_score,omitempty"`
}

// Endorsement is a signed third-party attestation of an agent's
// trustworthiness, blended into reputation scoring at the configured
// endorsement weight.
type Endorsement struct {
	ID                   string           `json:"id"`
	EndorserIdentityHash string           `json:"endorser_identity_hash"`
	EndorsedIdentityHash string           `json:"endorsed_identity_hash"`
	Basis                EndorsementBasis `json:"basis"`
	Scopes               []string         `json:"scopes"`
	Weight               float64          `json:"weight"`
	IssuedAt             time.Time        `json:"issued_at"`
	Signature            string           `json:"signature"`
}

type endorsementContent struct {
	ID                   string           `json:"id"`
	EndorserIdentityHash string           `json:"endorser_identity_hash"`
	EndorsedIdentityHash string           `json:"endorsed_identity_hash"`
	Basis                EndorsementBasis `json:"basis"`
	Scopes               []string         `json:"scopes"`
	Weight               float64          `json:"weight"`
	IssuedAt             time.Time        `json:"issued_at"`
}

func endorsementCanonical(e Endorsement) (string, error) {
	return canonicalize.JCSString(endorsementContent{
		ID:                   e.ID,
		EndorserIdentityHash: e.EndorserIdentityHash,
		EndorsedIdentityHash: e.EndorsedIdentityHash,
		Basis:                e.Basis,
		Scopes:               e.Scopes,
		Weight:               e.Weight,
		IssuedAt:             e.IssuedAt,
	})
}

// CreateEndorsement builds and signs an endorsement after validating the
// claimed basis.
func CreateEndorsement(signer crypto.Signer, endorserIdentityHash, endorsedIdentityHash string, basis EndorsementBasis, scopes []string, weight float64, issuedAt time.Time) (Endorsement, error) {
	if basis.CovenantsCompleted < 0 {
		return Endorsement{}, fmt.Errorf("covenants_completed must be non-negative, got %d", basis.CovenantsCompleted)
	}
	if basis.BreachRate < 0 || basis.BreachRate > 1 {
		return Endorsement{}, fmt.Errorf("breach_rate must be within [0, 1], got %v", basis.BreachRate)
	}
	if basis.AverageOutcomeScore != nil && (*basis.AverageOutcomeScore < 0 || *basis.AverageOutcomeScore > 1) {
		return Endorsement{}, fmt.Errorf("average_outcome_score must be within [0, 1], got %v", *basis.AverageOutcomeScore)
	}
	if weight < 0 || weight > 1 {
		return Endorsement{}, fmt.Errorf("weight must be within [0, 1], got %v", weight)
	}
	e := Endorsement{
		ID:                   uuid.New().String(),
		EndorserIdentityHash: endorserIdentityHash,
		EndorsedIdentityHash: endorsedIdentityHash,
		Basis:                basis,
		Scopes:               append([]string(nil), scopes...),
		Weight:               weight,
		IssuedAt:             issuedAt,
	}
	content, err := endorsementCanonical(e)
	if err != nil {
		return Endorsement{}, err
	}
	sig, err := signer.Sign(content)
	if err != nil {
		return Endorsement{}, fmt.Errorf("endorsement signature failed: %w", err)
	}
	e.Signature = sig
	return e, nil
}

// VerifyEndorsement re-derives the signed content and checks the signature
// against the endorser's identity key. Any field tamper, including the ID,
// the endorsed identity, or the scopes, invalidates.
func VerifyEndorsement(e Endorsement) bool {
	content, err := endorsementCanonical(e)
	if err != nil {
		return false
	}
	return crypto.Verify(content, e.Signature, e.EndorserIdentityHash)
}
