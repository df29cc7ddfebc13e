// Package reputation converts receipt histories, decay models, and
// endorsements into bounded trust scores, and reconciles scores reported by
// multiple observers into a Byzantine-fault-tolerant consensus value.
package reputation

import (
	"math"
	"time"

	"github.com/covenantos/trustcore/pkg/receipt"
	"github.com/covenantos/trustcore/pkg/stake"
)

// ScoringConfig tunes outcome weighting and endorsement blending.
type ScoringConfig struct {
	RecencyDecay         float64                              `yaml:"recency_decay" json:"recency_decay"`
	RecencyPeriodSeconds float64                              `yaml:"recency_period_seconds" json:"recency_period_seconds"`
	BreachPenalty        map[receipt.Severity]float64         `yaml:"breach_penalty" json:"breach_penalty"`
	MinimumExecutions    int                                  `yaml:"minimum_executions" json:"minimum_executions"`
	EndorsementWeight    float64                              `yaml:"endorsement_weight" json:"endorsement_weight"`
}

// DefaultScoringConfig returns the standard engine parameters.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		RecencyDecay:         0.95,
		RecencyPeriodSeconds: 86400,
		BreachPenalty: map[receipt.Severity]float64{
			receipt.SeverityCritical: 0.5,
			receipt.SeverityHigh:     0.3,
			receipt.SeverityMedium:   0.15,
			receipt.SeverityLow:      0.05,
		},
		MinimumExecutions: 10,
		EndorsementWeight: 0.15,
	}
}

// Score is an agent's derived reputation record. It is recomputed on demand
// from receipts, never incrementally maintained.
type Score struct {
	AgentIdentityHash  string    `json:"agent_identity_hash"`
	TotalExecutions    int       `json:"total_executions"`
	Fulfilled          int       `json:"fulfilled"`
	Partial            int       `json:"partial"`
	Failed             int       `json:"failed"`
	Breached           int       `json:"breached"`
	SuccessRate        float64   `json:"success_rate"`
	WeightedScore      float64   `json:"weighted_score"`
	ReceiptsMerkleRoot string    `json:"receipts_merkle_root"`
	LastUpdatedAt      time.Time `json:"last_updated_at"`
	CurrentStake       float64   `json:"current_stake"`
	TotalBurned        float64   `json:"total_burned"`
}

// Scorer computes reputation scores under a fixed configuration.
type Scorer struct {
	config ScoringConfig
	model  *DecayModel
	clock  func() time.Time
}

// NewScorer creates a scorer with the given configuration.
func NewScorer(cfg ScoringConfig) *Scorer {
	return &Scorer{config: cfg, clock: time.Now}
}

// WithClock overrides clock for testing.
func (s *Scorer) WithClock(clock func() time.Time) *Scorer {
	s.clock = clock
	return s
}

// WithDecayModel replaces the default recency_decay^age weighting with an
// explicit survival model.
func (s *Scorer) WithDecayModel(m DecayModel) *Scorer {
	s.model = &m
	return s
}

// Score computes an agent's bounded, time-decayed reputation from its
// receipts, blended with any supplied endorsements.
func (s *Scorer) Score(agentIdentityHash string, receipts []receipt.Receipt, endorsements []stake.Endorsement) (Score, error) {
	now := s.clock()
	score := Score{
		AgentIdentityHash:  agentIdentityHash,
		TotalExecutions:    len(receipts),
		ReceiptsMerkleRoot: receipt.MerkleRoot(receipts),
		LastUpdatedAt:      now,
	}

	var weightedSum, weightTotal float64
	for _, r := range receipts {
		switch r.Outcome {
		case receipt.OutcomeFulfilled:
			score.Fulfilled++
		case receipt.OutcomePartial:
			score.Partial++
		case receipt.OutcomeFailed:
			score.Failed++
		case receipt.OutcomeBreached:
			score.Breached++
		}

		age := now.Sub(r.CompletedAt).Seconds() / s.config.RecencyPeriodSeconds
		if age < 0 {
			age = 0 // future-dated receipts decay as fresh
		}
		weight, err := s.decayWeight(age)
		if err != nil {
			return Score{}, err
		}
		weightedSum += receipt.OutcomeValue(r, s.config.BreachPenalty) * weight
		weightTotal += weight
	}

	var raw float64
	if weightTotal > 0 {
		raw = weightedSum / weightTotal
	}

	scaled := raw
	if s.config.MinimumExecutions > 0 && score.TotalExecutions < s.config.MinimumExecutions {
		scaled = raw * float64(score.TotalExecutions) / float64(s.config.MinimumExecutions)
	}

	final := scaled
	if len(endorsements) > 0 {
		var sum float64
		for _, e := range endorsements {
			sum += e.Weight
		}
		mean := sum / float64(len(endorsements))
		final = scaled*(1-s.config.EndorsementWeight) + s.config.EndorsementWeight*mean
	}
	score.WeightedScore = clamp01(final)

	if score.TotalExecutions > 0 {
		score.SuccessRate = float64(score.Fulfilled+score.Partial) / float64(score.TotalExecutions)
	}
	return score, nil
}

func (s *Scorer) decayWeight(age float64) (float64, error) {
	if s.model != nil {
		return s.model.Decay(age)
	}
	return math.Pow(s.config.RecencyDecay, age), nil
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
