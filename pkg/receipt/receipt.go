// Package receipt implements signed, hash-linked execution receipts and the
// integrity structures over them: linear chains, Merkle roots, and the
// receipt DAG.
//
// A receipt is content-addressed: its ID is the SHA-256 hash of its canonical
// content, which excludes the ID itself, the stored hash, and both
// signatures. Receipts are immutable; counter-signing produces a new record.
package receipt

import (
	"fmt"
	"time"

	"github.com/covenantos/trustcore/pkg/canonicalize"
	"github.com/covenantos/trustcore/pkg/crypto"
	"github.com/covenantos/trustcore/pkg/observability"
)

// Outcome classifies how an execution under a covenant ended.
type Outcome string

const (
	OutcomeFulfilled Outcome = "fulfilled"
	OutcomePartial   Outcome = "partial"
	OutcomeFailed    Outcome = "failed"
	OutcomeBreached  Outcome = "breached"
)

// Severity classifies a breached obligation.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// DefaultBreachPenalty is the per-severity score penalty applied to breached
// outcomes.
var DefaultBreachPenalty = map[Severity]float64{
	SeverityCritical: 0.5,
	SeverityHigh:     0.3,
	SeverityMedium:   0.15,
	SeverityLow:      0.05,
}

// Receipt is a signed record of one execution outcome under a covenant.
type Receipt struct {
	ID                  string    `json:"id"`
	CovenantID          string    `json:"covenant_id"`
	AgentIdentityHash   string    `json:"agent_identity_hash"`
	PrincipalPublicKey  string    `json:"principal_public_key"`
	Outcome             Outcome   `json:"outcome"`
	BreachSeverity      Severity  `json:"breach_severity,omitempty"`
	ProofHash           string    `json:"proof_hash"`
	DurationMs          int64     `json:"duration_ms"`
	CompletedAt         time.Time `json:"completed_at"`
	PreviousReceiptHash string    `json:"previous_receipt_hash,omitempty"`
	AgentSignature      string    `json:"agent_signature"`
	PrincipalSignature  string    `json:"principal_signature,omitempty"`
	ReceiptHash         string    `json:"receipt_hash"`
}

// receiptContent is the canonical, signable subset of a receipt. It excludes
// ID, ReceiptHash, and both signatures.
type receiptContent struct {
	CovenantID          string    `json:"covenant_id"`
	AgentIdentityHash   string    `json:"agent_identity_hash"`
	PrincipalPublicKey  string    `json:"principal_public_key"`
	Outcome             Outcome   `json:"outcome"`
	BreachSeverity      Severity  `json:"breach_severity,omitempty"`
	ProofHash           string    `json:"proof_hash"`
	DurationMs          int64     `json:"duration_ms"`
	CompletedAt         time.Time `json:"completed_at"`
	PreviousReceiptHash string    `json:"previous_receipt_hash,omitempty"`
}

// CanonicalContent returns the RFC 8785 canonical JSON of the signable
// fields.
func (r Receipt) CanonicalContent() (string, error) {
	return canonicalize.JCSString(receiptContent{
		CovenantID:          r.CovenantID,
		AgentIdentityHash:   r.AgentIdentityHash,
		PrincipalPublicKey:  r.PrincipalPublicKey,
		Outcome:             r.Outcome,
		BreachSeverity:      r.BreachSeverity,
		ProofHash:           r.ProofHash,
		DurationMs:          r.DurationMs,
		CompletedAt:         r.CompletedAt,
		PreviousReceiptHash: r.PreviousReceiptHash,
	})
}

// IssueParams carries the inputs for issuing a new receipt.
type IssueParams struct {
	CovenantID          string
	AgentIdentityHash   string
	PrincipalPublicKey  string
	Outcome             Outcome
	BreachSeverity      Severity
	ProofHash           string
	DurationMs          int64
	CompletedAt         time.Time
	PreviousReceiptHash string
}

// Issue creates and signs a receipt. The agent signer must hold the key whose
// public half is the agent identity hash, or verification will fail later.
func Issue(signer crypto.Signer, p IssueParams) (Receipt, error) {
	if (p.Outcome == OutcomeBreached) != (p.BreachSeverity != "") {
		return Receipt{}, fmt.Errorf("breach_severity must be present iff outcome is breached")
	}
	r := Receipt{
		CovenantID:          p.CovenantID,
		AgentIdentityHash:   p.AgentIdentityHash,
		PrincipalPublicKey:  p.PrincipalPublicKey,
		Outcome:             p.Outcome,
		BreachSeverity:      p.BreachSeverity,
		ProofHash:           p.ProofHash,
		DurationMs:          p.DurationMs,
		CompletedAt:         p.CompletedAt,
		PreviousReceiptHash: p.PreviousReceiptHash,
	}
	content, err := r.CanonicalContent()
	if err != nil {
		return Receipt{}, err
	}
	sig, err := signer.Sign(content)
	if err != nil {
		return Receipt{}, fmt.Errorf("agent signature failed: %w", err)
	}
	hash := crypto.SHA256Hex(content)
	r.ID = hash
	r.ReceiptHash = hash
	r.AgentSignature = sig
	return r, nil
}

// CounterSign returns a copy of r carrying the principal's signature over the
// same canonical content. The input receipt is unchanged.
func CounterSign(r Receipt, principal crypto.Signer) (Receipt, error) {
	content, err := r.CanonicalContent()
	if err != nil {
		return Receipt{}, err
	}
	sig, err := principal.Sign(content)
	if err != nil {
		return Receipt{}, fmt.Errorf("principal signature failed: %w", err)
	}
	signed := r
	signed.PrincipalSignature = sig
	return signed, nil
}

// Verify recomputes the canonical content hash and checks the agent
// signature. Any single-field tamper, including the previous-hash link or
// the timestamp, invalidates the receipt.
func Verify(r Receipt) bool {
	valid := verify(r)
	observability.RecordReceiptVerified(valid)
	return valid
}

func verify(r Receipt) bool {
	content, err := r.CanonicalContent()
	if err != nil {
		return false
	}
	hash := crypto.SHA256Hex(content)
	if hash != r.ReceiptHash || hash != r.ID {
		return false
	}
	return crypto.Verify(content, r.AgentSignature, r.AgentIdentityHash)
}

// VerifyCounterSignature checks the principal signature, when present,
// against the principal public key recorded in the receipt.
func VerifyCounterSignature(r Receipt) bool {
	if r.PrincipalSignature == "" {
		return false
	}
	content, err := r.CanonicalContent()
	if err != nil {
		return false
	}
	return crypto.Verify(content, r.PrincipalSignature, r.PrincipalPublicKey)
}

// OutcomeValue maps a receipt's outcome to its base score contribution:
// fulfilled 1.0, partial 0.5, failed 0.0, breached the negated severity
// penalty.
func OutcomeValue(r Receipt, penalty map[Severity]float64) float64 {
	switch r.Outcome {
	case OutcomeFulfilled:
		return 1.0
	case OutcomePartial:
		return 0.5
	case OutcomeBreached:
		return 0 - penalty[r.BreachSeverity]
	default:
		return 0.0
	}
}
