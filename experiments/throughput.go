package experiments

import (
	"carcassonne/agent"
	"carcassonne/engine"
	"carcassonne/searcher"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Throughput struct {
	Policy     string
	Decisions  int
	Iterations int
	Playouts   int
	Duration   time.Duration
}

func (t Throughput) IterationsPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Iterations) / t.Duration.Seconds()
}

// RunThroughput times up to decisions MCTS searches on the positions of one
// game between random players.
func RunThroughput(config searcher.Config, decisions int, seed uint64) (Throughput, error) {
	m, err := searcher.NewMCTS(searcher.WithConfig(config), searcher.WithSeed(int64(seed)), searcher.WithMetrics())
	if err != nil {
		return Throughput{}, err
	}
	random := agent.NewRandom(rand.New(rand.NewSource(seed + 1)))
	g, err := engine.New([]agent.Decider{random, random}, rand.New(rand.NewSource(seed)))
	if err != nil {
		return Throughput{}, err
	}

	result := Throughput{Policy: config.Policy}
	for result.Decisions < decisions && !g.State.IsOver() {
		tile, legal, ok := g.Draw()
		if !ok {
			break
		}
		m.Decide(g.State, tile, g.Deck.Copy(), legal)
		metric := m.LastMetric()
		result.Decisions++
		result.Iterations += metric.Iterations
		result.Playouts += metric.Playouts
		result.Duration += metric.Duration

		move, point := random.Decide(g.State, tile, g.Deck, legal)
		if err := g.Play(tile, legal, move, point); err != nil {
			return Throughput{}, err
		}
	}
	log.Info().Msgf("%s: %d decisions, %.0f iterations/s, %d playouts in %v",
		result.Policy, result.Decisions, result.IterationsPerSecond(), result.Playouts, result.Duration)
	return result, nil
}
