// Package config loads engine configuration from YAML, with defaults
// matching the standard scoring and burn parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/covenantos/trustcore/pkg/burner"
	"github.com/covenantos/trustcore/pkg/reputation"
)

// EnvConfigPath overrides the configuration file path when set.
const EnvConfigPath = "TRUSTCORE_CONFIG"

// DecayConfig selects and parameterizes a decay model.
type DecayConfig struct {
	Model  string  `yaml:"model" json:"model"` // "exponential" | "weibull" | "gamma"
	Lambda float64 `yaml:"lambda,omitempty" json:"lambda,omitempty"`
	K      float64 `yaml:"k,omitempty" json:"k,omitempty"`
	Alpha  float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	Beta   float64 `yaml:"beta,omitempty" json:"beta,omitempty"`
}

// EngineConfig is the full engine configuration.
type EngineConfig struct {
	Scoring reputation.ScoringConfig `yaml:"scoring" json:"scoring"`
	Burner  burner.Config            `yaml:"burner" json:"burner"`
	Decay   *DecayConfig             `yaml:"decay,omitempty" json:"decay,omitempty"`
	Pool    PoolConfig               `yaml:"pool" json:"pool"`
}

// PoolConfig seeds the collateral pool.
type PoolConfig struct {
	TotalCollateral float64 `yaml:"total_collateral" json:"total_collateral"`
}

// Default returns the standard engine configuration.
func Default() EngineConfig {
	return EngineConfig{
		Scoring: reputation.DefaultScoringConfig(),
		Burner:  burner.DefaultConfig(),
		Pool:    PoolConfig{TotalCollateral: 1000},
	}
}

// Load reads an EngineConfig from path, or from $TRUSTCORE_CONFIG when path
// is empty. An empty path with no env override returns the defaults.
func Load(path string) (EngineConfig, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DecayModel builds the configured decay model, or nil when the config
// leaves the scorer on its default recency weighting.
func (c EngineConfig) DecayModel() (*reputation.DecayModel, error) {
	if c.Decay == nil {
		return nil, nil
	}
	var (
		m   reputation.DecayModel
		err error
	)
	switch c.Decay.Model {
	case "exponential":
		m, err = reputation.NewExponentialDecay(c.Decay.Lambda)
	case "weibull":
		m, err = reputation.NewWeibullDecay(c.Decay.K, c.Decay.Lambda)
	case "gamma":
		m, err = reputation.NewGammaDecay(c.Decay.Alpha, c.Decay.Beta)
	default:
		return nil, fmt.Errorf("unknown decay model %q", c.Decay.Model)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
