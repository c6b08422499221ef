// Package config holds the router's tunable hyperparameters in a single
// immutable struct, threaded by value or pointer into every component that
// needs it rather than read from package-level globals.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pcbroute/pkg/fixedpoint"
)

// Config collects every tunable constant the router's subsystems use.
type Config struct {
	// Geometry / A* lattice.
	GridStride          fixedpoint.Q `json:"grid_stride"`
	EstimateCoefficient float64      `json:"estimate_coefficient"`
	TurnPenalty         float64      `json:"turn_penalty"`
	UseTurnPenalty      bool         `json:"use_turn_penalty"`
	CollisionStrict     bool         `json:"collision_strict"`

	// A* trial budget, one value shared by every connection's search.
	AStarTrialBudget int `json:"astar_trial_budget"`

	// Probabilistic model.
	HalfProbabilityScore    float64    `json:"half_probability_score"`
	IterationPriorMass      [4]float64 `json:"iteration_prior_mass"`
	IterationCandidateCount [4]int     `json:"iteration_candidate_count"`
	MaxGenerationAttempts   int        `json:"max_generation_attempts"`
	MaxIteration            int        `json:"max_iteration"`
	LinearLearningRate      float64    `json:"linear_learning_rate"`
	ConstantLearningRate    float64    `json:"constant_learning_rate"`
	ScoreWeight             float64    `json:"score_weight"`
	OpportunityCostWeight   float64    `json:"opportunity_cost_weight"`

	// Visualization hook.
	DisplayAStar  bool          `json:"display_astar"`
	BlockThread   bool          `json:"block_thread"`
	DisplayPeriod time.Duration `json:"display_period"`
}

// Default returns the router's built-in constants, matching the values
// the routing engine was originally tuned against.
func Default() Config {
	return Config{
		GridStride:          fixedpoint.FromFloat(1.27) + fixedpoint.Q(1), // +Delta
		EstimateCoefficient: 1.0,
		TurnPenalty:         1.0,
		UseTurnPenalty:      false,
		CollisionStrict:     true,

		AStarTrialBudget: 200,

		HalfProbabilityScore:    10.0,
		IterationPriorMass:      [4]float64{0.5, 0.25, 0.125, 0.0625},
		IterationCandidateCount: [4]int{1, 3, 4, 2},
		MaxGenerationAttempts:   10,
		MaxIteration:            4,
		LinearLearningRate:      0.2,
		ConstantLearningRate:    0.01,
		ScoreWeight:             0.3,
		OpportunityCostWeight:   0.3,

		DisplayAStar:  false,
		BlockThread:   false,
		DisplayPeriod: 10 * time.Millisecond,
	}
}

// PriorMass returns P_k for 1-indexed iteration k.
func (c Config) PriorMass(k int) float64 {
	return c.IterationPriorMass[k-1]
}

// CandidateCount returns N_k for 1-indexed iteration k.
func (c Config) CandidateCount(k int) int {
	return c.IterationCandidateCount[k-1]
}

// NormalisedPrior returns P_k / N_k, the exact normalised prior for every
// probabilistic trace generated during iteration k.
func (c Config) NormalisedPrior(k int) float64 {
	return c.PriorMass(k) / float64(c.CandidateCount(k))
}

// RemainingMass returns the probability mass not yet accounted for by
// iterations 1..k-1, the weight assigned to sampling "no trace" when
// iteration k samples an obstacle connection.
func (c Config) RemainingMass(k int) float64 {
	remaining := 1.0
	for i := 1; i < k; i++ {
		remaining -= c.PriorMass(i)
	}
	return remaining
}

// Load reads a Config from a JSON file, starting from Default() so that
// a partial file only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
