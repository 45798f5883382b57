package searcher

import (
	"carcassonne/experiments/metrics"
	"carcassonne/game"
	"carcassonne/meta"
	"carcassonne/utils"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type Option func(mcts *MCTS)

// MCTS picks moves by Monte Carlo tree search over placements, token points
// and tile draws.
type MCTS struct {
	config           Config
	policy           Policy
	playoutPolicy    Playout
	tokenProbability float64
	exploration      float64 // drifts by ExplorationDelta after each decision
	rng              *rand.Rand
	metrics          metrics.Collector
	last             metrics.SearchMetric
	lastTree         *tree // first repetition of the last decision
}

func WithConfig(config Config) Option {
	return func(m *MCTS) {
		m.config = config
	}
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.config.Iterations = iterations
		}
	}
}

func WithPolicy(name string) Option {
	return func(m *MCTS) {
		m.config.Policy = name
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		m.config.Exploration = c
	}
}

func WithPlayout(name string) Option {
	return func(m *MCTS) {
		m.config.Playout = name
	}
}

func WithSeed(seed int64) Option {
	return func(m *MCTS) {
		m.config.Seed = seed
	}
}

func WithEnsemble(repetitions, workers int) Option {
	return func(m *MCTS) {
		m.config.Ensemble = repetitions
		m.config.EnsembleWorkers = workers
	}
}

func WithDeckCheat() Option {
	return func(m *MCTS) {
		m.config.DeckCheat = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		config:  DefaultConfig(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	m.policy, _ = ParsePolicy(m.config.Policy)
	m.playoutPolicy, _ = ParsePlayout(m.config.Playout)
	m.exploration = m.config.Exploration
	m.tokenProbability = m.config.TokenProbability
	if m.tokenProbability < 0 || m.tokenProbability > 1 {
		log.Warn().Msgf("token probability %v out of range, using %v", m.tokenProbability, meta.FALLBACK_TOKEN_PROBABILITY)
		m.tokenProbability = meta.FALLBACK_TOKEN_PROBABILITY
	}

	seed := uint64(m.config.Seed)
	if m.config.Seed == -1 {
		seed = frand.Uint64n(math.MaxInt64)
	}
	m.rng = rand.New(rand.NewSource(seed))
	return m, nil
}

func (m *MCTS) Config() Config {
	return m.config
}

// Exploration is the exploration term the next decision starts from.
func (m *MCTS) Exploration() float64 {
	return m.exploration
}

// LastMetric returns the search statistics of the last decision. It is empty
// unless the searcher was built WithMetrics.
func (m *MCTS) LastMetric() metrics.SearchMetric {
	return m.last
}

// Decide trains a fresh tree for the drawn tile and returns the index of the
// chosen move in legal and the chosen token point (game.NoToken for none).
// state and deck are not modified. With an ensemble, independent repetitions
// vote and the most frequent (move, point) pair wins.
func (m *MCTS) Decide(state *game.State, tile game.Tile, deck game.Deck, legal []game.Move) (int, int) {
	if len(legal) == 0 {
		panic("decide called without legal moves")
	}
	m.metrics.Start(m.policy.Name, m.config.Ensemble)

	repetitions := m.config.Ensemble
	seeds := make([]uint64, repetitions)
	for k := range seeds {
		seeds[k] = m.rng.Uint64()
	}

	decisions := make([]decision, repetitions)
	trees := make([]*tree, repetitions)
	var g errgroup.Group
	g.SetLimit(m.config.EnsembleWorkers)
	for k := 0; k < repetitions; k++ {
		g.Go(func() error {
			t := m.newTree(state, tile, deck, legal, seeds[k])
			t.train()
			decisions[k] = t.extract()
			trees[k] = t
			return nil
		})
	}
	_ = g.Wait() // repetitions never return errors

	chosen := decisions[0]
	if repetitions > 1 {
		chosen = vote(decisions)
	}

	m.lastTree = trees[0]
	m.last = m.metrics.Complete()
	m.exploration = math.Max(0, m.exploration+m.config.ExplorationDelta)

	log.Debug().Msgf("mcts %s decided move %v token %d after %d iterations (%d nodes in first tree)",
		m.policy, legal[chosen.move], chosen.point, m.config.Iterations, len(trees[0].nodes))

	if m.config.DotPath != "" {
		if err := os.WriteFile(m.config.DotPath, []byte(m.ToDot()), 0644); err != nil {
			log.Warn().Err(err).Msg("failed to write search tree")
		}
	}
	return chosen.move, chosen.point
}

// vote returns the most frequent decision. Ties go to the smallest
// (move, point) pair.
func vote(decisions []decision) decision {
	keys := make([]int, len(decisions))
	for i, d := range decisions {
		keys[i] = d.key()
	}
	return decisionFromKey(utils.MostFrequent(keys))
}

const pointSlots = game.NumPoints + 1 // token points plus game.NoToken

func (d decision) key() int {
	return d.move*pointSlots + d.point + 1
}

func decisionFromKey(key int) decision {
	return decision{move: key / pointSlots, point: key%pointSlots - 1}
}
