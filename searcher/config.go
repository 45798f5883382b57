package searcher

import (
	"carcassonne/meta"

	"github.com/pkg/errors"
)

// Config holds the tunables of an MCTS agent. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Policy           string  `yaml:"policy"`
	Exploration      float64 `yaml:"exploration"`       // c, epsilon or temperature depending on Policy
	ExplorationDelta float64 `yaml:"exploration_delta"` // added to Exploration after every decision
	Iterations       int     `yaml:"iterations"`
	Playout          string  `yaml:"playout"`
	TokenProbability float64 `yaml:"token_probability"`
	WeightDelta      float64 `yaml:"weight_delta"`    // backup weight change per iteration
	WeightDoubling   float64 `yaml:"weight_doubling"` // backup weight doubles every this many iterations; 0 disables
	Ensemble         int     `yaml:"ensemble"`
	EnsembleWorkers  int     `yaml:"ensemble_workers"`
	Playouts         int     `yaml:"playouts"` // per leaf; -1 means iteration+1
	DeckCheat        bool    `yaml:"deck_cheat"`
	Seed             int64   `yaml:"seed"`     // -1 picks a random seed
	DotPath          string  `yaml:"dot_path"` // experiments suffix it with game id and seat
}

func DefaultConfig() Config {
	return Config{
		Policy:           "uct",
		Exploration:      meta.EXPLORATION,
		Iterations:       meta.ITERATIONS,
		Playout:          RandomPlayout.String(),
		TokenProbability: meta.TOKEN_PROBABILITY,
		Ensemble:         1,
		EnsembleWorkers:  1,
		Playouts:         1,
		Seed:             -1,
	}
}

// Validate reports the first configuration error. An out-of-range token
// probability is not an error; NewMCTS replaces it.
func (c Config) Validate() error {
	policy, err := ParsePolicy(c.Policy)
	if err != nil {
		return err
	}
	if _, err := ParsePlayout(c.Playout); err != nil {
		return err
	}
	if c.Iterations < 1 {
		return errors.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Exploration < 0 {
		return errors.Errorf("exploration must not be negative, got %v", c.Exploration)
	}
	if policy.epsilon() && !policy.fixedEpsilon() && c.Exploration >= 1 {
		return errors.Errorf("invalid epsilon %v for %s: must be in [0, 1)", c.Exploration, c.Policy)
	}
	if policy.family == boltzmannFamily && c.Exploration <= 0 {
		return errors.Errorf("boltzmann temperature must be positive, got %v", c.Exploration)
	}
	if c.WeightDoubling < 0 {
		return errors.Errorf("weight doubling must not be negative, got %v", c.WeightDoubling)
	}
	if c.Ensemble < 1 {
		return errors.Errorf("ensemble must be at least 1, got %d", c.Ensemble)
	}
	if c.EnsembleWorkers < 1 {
		return errors.Errorf("ensemble workers must be at least 1, got %d", c.EnsembleWorkers)
	}
	if c.Playouts == 0 || c.Playouts < -1 {
		return errors.Errorf("playouts must be positive or -1, got %d", c.Playouts)
	}
	if c.Seed < -1 {
		return errors.Errorf("seed must be -1 or non-negative, got %d", c.Seed)
	}
	return nil
}
