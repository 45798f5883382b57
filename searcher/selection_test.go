package searcher

import (
	"carcassonne/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// newManualTree builds a root with three TokenPlacement children whose
// statistics the test fills in. Every node's mover is player 0.
func newManualTree(t *testing.T, options ...Option) *tree {
	t.Helper()
	m, err := NewMCTS(append([]Option{WithSeed(1)}, options...)...)
	require.NoError(t, err)

	tr := &tree{MCTS: m, rng: rand.New(rand.NewSource(1))}
	state := game.NewState()
	tr.root = tr.alloc(node{parent: nilNode, kind: Placement, state: state, index: -1, point: game.NoToken})
	for i := 0; i < 3; i++ {
		tr.alloc(node{parent: tr.root, kind: TokenPlacement, state: state, index: i, point: game.NoToken})
	}
	return tr
}

func (t *tree) setStats(kid int, visits int, payoff0, payoff1 float64) {
	n := t.nodeFromNaughty(t.children[t.root][kid])
	n.visits = visits
	n.payoff = [game.NumPlayers]float64{payoff0, payoff1}
}

func TestBestChild(t *testing.T) {
	t.Run("unvisited child is preferred while exploring", func(t *testing.T) {
		tr := newManualTree(t)
		tr.setStats(0, 10, 500, 0)
		tr.setStats(2, 5, 400, 0)
		tr.nodes[tr.root].visits = 15

		got := tr.bestChild(tr.root, 1)

		require.Equal(t, tr.children[tr.root][1], got, "Unvisited child should win over any visited sibling")
	})

	t.Run("exploitation only skips unvisited children", func(t *testing.T) {
		tr := newManualTree(t)
		tr.setStats(0, 10, 50, 0)
		tr.setStats(2, 5, 40, 0)
		tr.nodes[tr.root].visits = 15

		got := tr.bestChild(tr.root, 0)

		require.Equal(t, tr.children[tr.root][2], got, "Child with the higher mean should win")
	})

	t.Run("exploitation reads the payoff of the child's mover", func(t *testing.T) {
		tr := newManualTree(t)
		tr.setStats(0, 10, 10, 900)
		tr.setStats(1, 10, 20, 0)
		tr.setStats(2, 10, 15, 0)
		tr.nodes[tr.root].visits = 30

		got := tr.bestChild(tr.root, 0)

		require.Equal(t, tr.children[tr.root][1], got, "Opponent payoff should be ignored")
	})

	t.Run("ties keep the earlier child", func(t *testing.T) {
		tr := newManualTree(t)
		tr.setStats(0, 10, 20, 0)
		tr.setStats(1, 4, 8, 0)
		tr.setStats(2, 5, 10, 0)
		tr.nodes[tr.root].visits = 19

		require.Equal(t, tr.children[tr.root][0], tr.bestChild(tr.root, 0))
	})

	t.Run("exploration bonus favours rarely visited children", func(t *testing.T) {
		tr := newManualTree(t)
		tr.setStats(0, 10, 20, 0)  // mean 2
		tr.setStats(1, 1, -100, 0) // mean -100
		tr.setStats(2, 5, 9.5, 0)  // mean 1.9
		tr.nodes[tr.root].visits = 16

		require.Equal(t, tr.children[tr.root][2], tr.bestChild(tr.root, 1))
		require.Equal(t, tr.children[tr.root][0], tr.bestChild(tr.root, 0))
	})

	t.Run("no visited child falls back to a random child", func(t *testing.T) {
		tr := newManualTree(t)

		got := tr.bestChild(tr.root, 0)

		require.Contains(t, tr.children[tr.root], got)
	})
}

func TestBonus(t *testing.T) {
	t.Run("uct bonus", func(t *testing.T) {
		tr := newManualTree(t)
		child := &node{visits: 4, state: game.NewState()}

		require.InDelta(t, math.Sqrt(2*math.Log(16)/4), tr.bonus(child, 16), 1e-9)
	})

	t.Run("tuned bonus caps the variance estimate", func(t *testing.T) {
		tr := newManualTree(t, WithPolicy("uct-tuned"))
		child := &node{state: game.NewState()}
		for _, x := range []float64{2, 4, 2, 4} {
			child.accumulate([game.NumPlayers]float64{x, 0}, 1)
		}

		require.InDelta(t, 1.0, tr.variance(child), 1e-9, "Sample variance of 2,4,2,4 is 1")
		require.InDelta(t, math.Sqrt(math.Log(16)/4*0.25), tr.bonus(child, 16), 1e-9)
	})

	t.Run("tuned variance grows with the iteration count", func(t *testing.T) {
		tr := newManualTree(t, WithPolicy("uct-tuned"))
		child := &node{state: game.NewState()}
		child.accumulate([game.NumPlayers]float64{3, 0}, 1)
		child.accumulate([game.NumPlayers]float64{3, 0}, 1)

		require.InDelta(t, 0.0, tr.variance(child), 1e-9)
		tr.iteration = 10
		require.InDelta(t, math.Sqrt(2*math.Log(10)/2), tr.variance(child), 1e-9)
	})
}

func TestBestHeuristic(t *testing.T) {
	tr := newManualTree(t, WithPolicy("heuristic-mcts"))
	for i, h := range []int{3, 7, 7} {
		tr.nodes[tr.children[tr.root][i]].heuristic = h
	}

	require.Equal(t, tr.children[tr.root][1], tr.bestHeuristic(tr.root), "First maximum should win")
}

func TestBoltzmann(t *testing.T) {
	t.Run("probabilities form a distribution", func(t *testing.T) {
		tr := newManualTree(t, WithPolicy("boltzmann"), WithExploration(1))
		tr.setStats(0, 2, 2, 0)
		tr.setStats(1, 3, 6, 0)
		tr.setStats(2, 4, 12, 0)

		probabilities, unvisited := tr.boltzmannProbabilities(tr.children[tr.root], 1)

		require.False(t, unvisited.isValid())
		sum := 0.0
		for _, p := range probabilities {
			sum += p
		}
		require.InDelta(t, 1.0, sum, 0.02)
		require.InDelta(t, 0.0900, probabilities[0], 1e-3)
		require.InDelta(t, 0.2447, probabilities[1], 1e-3)
		require.InDelta(t, 0.6652, probabilities[2], 1e-3)
	})

	t.Run("large payoffs do not overflow", func(t *testing.T) {
		tr := newManualTree(t, WithPolicy("boltzmann"), WithExploration(0.01))
		tr.setStats(0, 1, 90, 0)
		tr.setStats(1, 1, 100, 0)
		tr.setStats(2, 1, 95, 0)

		probabilities, _ := tr.boltzmannProbabilities(tr.children[tr.root], 0.01)

		require.InDelta(t, 1.0, probabilities[1], 1e-6)
	})

	t.Run("unvisited child is returned first", func(t *testing.T) {
		tr := newManualTree(t, WithPolicy("boltzmann"), WithExploration(1))
		tr.setStats(0, 2, 2, 0)
		tr.setStats(2, 4, 12, 0)

		require.Equal(t, tr.children[tr.root][1], tr.boltzmann(tr.root, 1))
	})

	t.Run("sampling returns a child", func(t *testing.T) {
		tr := newManualTree(t, WithPolicy("boltzmann"), WithExploration(1))
		tr.setStats(0, 2, 2, 0)
		tr.setStats(1, 3, 6, 0)
		tr.setStats(2, 4, 12, 0)

		counts := map[naughty]int{}
		for i := 0; i < 300; i++ {
			counts[tr.boltzmann(tr.root, 1)]++
		}
		require.Greater(t, counts[tr.children[tr.root][2]], counts[tr.children[tr.root][0]],
			"Higher value child should be sampled more often")
	})
}
