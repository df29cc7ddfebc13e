// Package stake implements the economic commitment records of the trust
// engine: stakes pledged against covenants, sponsor/protégé delegations, and
// third-party endorsements.
//
// Every lifecycle transition is value-to-value: the input record is never
// modified, a resolved copy is returned.
package stake

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/covenantos/trustcore/pkg/canonicalize"
	"github.com/covenantos/trustcore/pkg/crypto"
)

// StakeStatus is the lifecycle state of a stake.
type StakeStatus string

const (
	StakeActive   StakeStatus = "active"
	StakeReleased StakeStatus = "released"
	StakeBurned   StakeStatus = "burned"
)

// Stake is collateral pledged by an agent against a covenant.
type Stake struct {
	ID                string      `json:"id"`
	AgentIdentityHash string      `json:"agent_identity_hash"`
	CovenantID        string      `json:"covenant_id"`
	Amount            float64     `json:"amount"`
	Status            StakeStatus `json:"status"`
	StakedAt          time.Time   `json:"staked_at"`
	ResolvedAt        *time.Time  `json:"resolved_at,omitempty"`
	Signature         string      `json:"signature"`
}

type stakeContent struct {
	ID                string    `json:"id"`
	AgentIdentityHash string    `json:"agent_identity_hash"`
	CovenantID        string    `json:"covenant_id"`
	Amount            float64   `json:"amount"`
	StakedAt          time.Time `json:"staked_at"`
}

// CreateStake pledges a signed, active stake. Amount is a fraction of the
// agent's collateral and must lie in [0, 1].
func CreateStake(signer crypto.Signer, agentIdentityHash, covenantID string, amount float64, stakedAt time.Time) (Stake, error) {
	if amount < 0 || amount > 1 {
		return Stake{}, fmt.Errorf("amount must be within [0, 1], got %v", amount)
	}
	s := Stake{
		ID:                uuid.New().String(),
		AgentIdentityHash: agentIdentityHash,
		CovenantID:        covenantID,
		Amount:            amount,
		Status:            StakeActive,
		StakedAt:          stakedAt,
	}
	content, err := canonicalize.JCSString(stakeContent{
		ID:                s.ID,
		AgentIdentityHash: s.AgentIdentityHash,
		CovenantID:        s.CovenantID,
		Amount:            s.Amount,
		StakedAt:          s.StakedAt,
	})
	if err != nil {
		return Stake{}, err
	}
	sig, err := signer.Sign(content)
	if err != nil {
		return Stake{}, fmt.Errorf("stake signature failed: %w", err)
	}
	s.Signature = sig
	return s, nil
}

// ReleaseStake returns a released copy of s with the resolution time set.
// Only active stakes can be released; released and burned are terminal.
func ReleaseStake(s Stake, resolvedAt time.Time) (Stake, error) {
	return resolveStake(s, StakeReleased, resolvedAt)
}

// BurnStake returns a burned copy of s with the resolution time set.
func BurnStake(s Stake, resolvedAt time.Time) (Stake, error) {
	return resolveStake(s, StakeBurned, resolvedAt)
}

func resolveStake(s Stake, status StakeStatus, resolvedAt time.Time) (Stake, error) {
	if s.Status != StakeActive {
		return Stake{}, fmt.Errorf("stake %s is %s, not active", s.ID, s.Status)
	}
	resolved := s
	resolved.Status = status
	resolved.ResolvedAt = &resolvedAt
	return resolved, nil
}
