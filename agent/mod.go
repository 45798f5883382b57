package agent

import (
	"carcassonne/experiments/metrics"
	"carcassonne/game"
	"carcassonne/meta"
	"carcassonne/searcher"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

// Decider chooses a turn for the player to move. It returns an index into
// legal and a token point on the rotated tile, or game.NoToken. state and deck
// must not be modified.
type Decider interface {
	Decide(state *game.State, tile game.Tile, deck game.Deck, legal []game.Move) (int, int)
}

// Metered is implemented by deciders that record search statistics.
type Metered interface {
	LastMetric() metrics.SearchMetric
}

const (
	MCTSKind      = "mcts"
	RandomKind    = "random"
	HeuristicKind = "heuristic"
	MinimaxKind   = "minimax"
)

// Config describes one agent of an experiment.
type Config struct {
	Name             string          `yaml:"name"`
	Kind             string          `yaml:"kind"`
	Seed             int64           `yaml:"seed"`              // -1 picks a random seed
	Depth            int             `yaml:"depth"`             // minimax only
	TokenProbability float64         `yaml:"token_probability"` // minimax only
	Metrics          bool            `yaml:"metrics"`           // mcts only
	Search           searcher.Config `yaml:"search"`
}

func DefaultConfig() Config {
	return Config{
		Kind:             MCTSKind,
		Seed:             -1,
		Depth:            meta.MINIMAX_DEPTH,
		TokenProbability: meta.TOKEN_PROBABILITY,
		Search:           searcher.DefaultConfig(),
	}
}

// UnmarshalYAML fills the fields missing from the document with defaults.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	p := plain(DefaultConfig())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

func (c Config) Validate() error {
	if c.Seed < -1 {
		return errors.Errorf("agent %q: invalid seed %d", c.Name, c.Seed)
	}
	switch c.Kind {
	case MCTSKind:
		return errors.Wrapf(c.Search.Validate(), "agent %q", c.Name)
	case RandomKind, HeuristicKind:
	case MinimaxKind:
		if c.Depth < 1 {
			return errors.Errorf("agent %q: minimax depth must be positive, got %d", c.Name, c.Depth)
		}
		if c.TokenProbability < 0 || c.TokenProbability > 1 {
			return errors.Errorf("agent %q: token probability %v not in [0, 1]", c.Name, c.TokenProbability)
		}
	default:
		return errors.Errorf("agent %q: unknown kind %q", c.Name, c.Kind)
	}
	return nil
}

// New builds the decider described by c. A seed other than -1 also seeds the
// search of an MCTS agent.
func New(c Config) (Decider, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch c.Kind {
	case MCTSKind:
		options := []searcher.Option{searcher.WithConfig(c.Search)}
		if c.Seed != -1 {
			options = append(options, searcher.WithSeed(c.Seed))
		}
		if c.Metrics {
			options = append(options, searcher.WithMetrics())
		}
		m, err := searcher.NewMCTS(options...)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %q", c.Name)
		}
		return NewMCTS(m), nil
	case RandomKind:
		return NewRandom(newRand(c.Seed)), nil
	case HeuristicKind:
		return NewHeuristic(newRand(c.Seed)), nil
	default:
		return NewMinimax(newRand(c.Seed), c.Depth, c.TokenProbability), nil
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == -1 {
		return rand.New(rand.NewSource(frand.Uint64n(math.MaxInt64)))
	}
	return rand.New(rand.NewSource(uint64(seed)))
}
