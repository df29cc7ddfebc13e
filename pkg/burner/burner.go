// Package burner computes graduated slash fractions from breach severity and
// an agent's breach history. The curve is configurable: a curve exponent
// above 1 is lenient toward low severities and neutral at severity 1.
package burner

import (
	"fmt"
	"math"

	"github.com/covenantos/trustcore/pkg/observability"
	"github.com/covenantos/trustcore/pkg/receipt"
)

// severityBase maps breach severity to its base slash score.
var severityBase = map[receipt.Severity]float64{
	receipt.SeverityCritical: 1.0,
	receipt.SeverityHigh:     0.75,
	receipt.SeverityMedium:   0.5,
	receipt.SeverityLow:      0.25,
}

// Config tunes the burn curve.
type Config struct {
	MinBurnFraction float64 `yaml:"min_burn_fraction" json:"min_burn_fraction"`
	MaxBurnFraction float64 `yaml:"max_burn_fraction" json:"max_burn_fraction"`
	CurveExponent   float64 `yaml:"curve_exponent" json:"curve_exponent"`
	HistoryWeight   float64 `yaml:"history_weight" json:"history_weight"`
}

// DefaultConfig returns the standard burn curve.
func DefaultConfig() Config {
	return Config{
		MinBurnFraction: 0.1,
		MaxBurnFraction: 1.0,
		CurveExponent:   2.0,
		HistoryWeight:   0.3,
	}
}

// GraduatedBurner converts breach severity and history into burn amounts.
type GraduatedBurner struct {
	config Config
}

// NewGraduatedBurner validates the curve configuration.
func NewGraduatedBurner(cfg Config) (*GraduatedBurner, error) {
	if cfg.MinBurnFraction < 0 || cfg.MinBurnFraction > 1 {
		return nil, fmt.Errorf("min_burn_fraction must be within [0, 1], got %v", cfg.MinBurnFraction)
	}
	if cfg.MaxBurnFraction < cfg.MinBurnFraction || cfg.MaxBurnFraction > 1 {
		return nil, fmt.Errorf("max_burn_fraction must be within [min_burn_fraction, 1], got %v", cfg.MaxBurnFraction)
	}
	if cfg.CurveExponent <= 0 {
		return nil, fmt.Errorf("curve_exponent must be strictly positive, got %v", cfg.CurveExponent)
	}
	if cfg.HistoryWeight < 0 || cfg.HistoryWeight > 1 {
		return nil, fmt.Errorf("history_weight must be within [0, 1], got %v", cfg.HistoryWeight)
	}
	return &GraduatedBurner{config: cfg}, nil
}

// BurnResult is the computed slash for one breach.
type BurnResult struct {
	Severity         receipt.Severity `json:"severity"`
	SeverityBase     float64          `json:"severity_base"`
	BreachRatio      float64          `json:"breach_ratio"`
	AdjustedSeverity float64          `json:"adjusted_severity"`
	BurnFraction     float64          `json:"burn_fraction"`
	BurnAmount       float64          `json:"burn_amount"`
}

// CalculateBurn computes the slash for a breach of the given severity
// against a stake, adjusted upward by the agent's past breach ratio.
func (b *GraduatedBurner) CalculateBurn(stakeAmount float64, severity receipt.Severity, pastBreachCount, totalPastExecutions int) (BurnResult, error) {
	if stakeAmount < 0 {
		return BurnResult{}, fmt.Errorf("stake_amount must be non-negative, got %v", stakeAmount)
	}
	if pastBreachCount < 0 {
		return BurnResult{}, fmt.Errorf("past_breach_count must be a non-negative integer, got %d", pastBreachCount)
	}
	if totalPastExecutions < 0 {
		return BurnResult{}, fmt.Errorf("total_past_executions must be a non-negative integer, got %d", totalPastExecutions)
	}
	base, ok := severityBase[severity]
	if !ok {
		return BurnResult{}, fmt.Errorf("unknown breach severity %q", severity)
	}

	var breachRatio float64
	if totalPastExecutions > 0 {
		breachRatio = float64(pastBreachCount) / float64(totalPastExecutions)
	}
	adjusted := clamp01(base + b.config.HistoryWeight*breachRatio)
	fraction := clamp01(b.config.MinBurnFraction +
		(b.config.MaxBurnFraction-b.config.MinBurnFraction)*math.Pow(adjusted, b.config.CurveExponent))

	result := BurnResult{
		Severity:         severity,
		SeverityBase:     base,
		BreachRatio:      breachRatio,
		AdjustedSeverity: adjusted,
		BurnFraction:     fraction,
		BurnAmount:       stakeAmount * fraction,
	}
	observability.RecordBurn(result.BurnAmount)
	observability.Logger().Info("graduated burn computed",
		"severity", string(severity),
		"burn_fraction", fraction,
		"burn_amount", result.BurnAmount)
	return result, nil
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
