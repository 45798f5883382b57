package engine

import (
	"carcassonne/agent"
	"carcassonne/game"
	"carcassonne/meta"
	"carcassonne/searcher"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type scripted struct {
	move, point int
}

func (s scripted) Decide(*game.State, game.Tile, game.Deck, []game.Move) (int, int) {
	return s.move, s.point
}

func randomGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	g, err := New([]agent.Decider{
		agent.NewRandom(rand.New(rand.NewSource(seed + 1))),
		agent.NewRandom(rand.New(rand.NewSource(seed + 2))),
	}, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return g
}

func TestNew(t *testing.T) {
	t.Run("deals the full deck", func(t *testing.T) {
		g := randomGame(t, 1)

		require.Equal(t, game.TotalTiles, g.State.Placed()+len(g.Deck))
		require.Equal(t, len(g.Deck), g.State.Remaining())
	})

	t.Run("needs one agent per player", func(t *testing.T) {
		_, err := New([]agent.Decider{scripted{}}, rand.New(rand.NewSource(1)))

		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	t.Run("random game places every tile", func(t *testing.T) {
		g := randomGame(t, 4)

		result, err := g.Run()

		require.NoError(t, err)
		require.True(t, g.State.IsOver())
		require.Empty(t, g.Deck)
		require.Equal(t, game.TotalTiles-1, result.Game.TotalMoves)
		require.Len(t, result.Decisions, result.Game.TotalMoves)
		require.Equal(t, g.State.Score(), result.Game.Scores)
		require.Equal(t, game.Winner(result.Game.Scores), result.Game.Winner)
		for p := 0; p < game.NumPlayers; p++ {
			require.Equal(t, game.TokensPerPlayer, g.State.Tokens(p), "Final scoring should return every token")
		}
		for i, d := range result.Decisions {
			require.Equal(t, i+1, d.Step)
			require.Equal(t, i%2, d.Player, "Players should alternate starting with player 0")
		}
	})

	t.Run("same seed replays the same game", func(t *testing.T) {
		first, err := randomGame(t, 8).Run()
		require.NoError(t, err)
		second, err := randomGame(t, 8).Run()
		require.NoError(t, err)

		require.Equal(t, first.Game.Scores, second.Game.Scores)
		require.Equal(t, first.Decisions, second.Decisions)
	})

	t.Run("illegal decision aborts the game", func(t *testing.T) {
		g, err := New([]agent.Decider{scripted{move: 1000, point: game.NoToken}, scripted{}}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		_, err = g.Run()

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("search metrics are recorded for metered agents", func(t *testing.T) {
		m, err := searcher.NewMCTS(searcher.WithIterations(5), searcher.WithSeed(1), searcher.WithMetrics())
		require.NoError(t, err)
		g, err := New([]agent.Decider{agent.NewMCTS(m), scripted{point: game.NoToken}}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		more, err := g.Step()
		require.NoError(t, err)
		require.True(t, more)
		more, err = g.Step()
		require.NoError(t, err)
		require.True(t, more)

		require.Len(t, g.decisions, 2)
		require.Equal(t, 5, g.decisions[0].Iterations)
		require.Equal(t, "uct", g.decisions[0].Policy)
		require.Zero(t, g.decisions[1].Iterations, "Unmetered agents record no search metrics")
	})
}

func TestPlay(t *testing.T) {
	g := randomGame(t, 2)
	tile, legal, ok := g.Draw()
	require.True(t, ok)
	before := g.State.Copy()

	t.Run("negative move index", func(t *testing.T) {
		require.ErrorIs(t, g.Play(tile, legal, -1, game.NoToken), ErrIllegalMove)
	})

	t.Run("move index out of range", func(t *testing.T) {
		require.ErrorIs(t, g.Play(tile, legal, len(legal), game.NoToken), ErrIllegalMove)
	})

	t.Run("token point out of range", func(t *testing.T) {
		require.ErrorIs(t, g.Play(tile, legal, 0, game.NumPoints+1), ErrIllegalMove)
		require.Equal(t, before, g.State, "Rejected turns should not change the state")
	})

	t.Run("legal turn is applied", func(t *testing.T) {
		require.NoError(t, g.Play(tile, legal, 0, game.NoToken))
		require.Equal(t, before.Placed()+1, g.State.Placed())
	})
}

func TestDraw(t *testing.T) {
	t.Run("unplaceable tile is put back", func(t *testing.T) {
		g := &Game{
			State: game.NewStateWithStart(game.NewTile(12, false), 2),
			Deck:  game.Deck{game.NewTile(18, false), game.NewTile(12, false)},
			rng:   rand.New(rand.NewSource(1)),
		}

		tile, legal, ok := g.Draw()

		require.True(t, ok)
		require.Equal(t, 12, tile.Archetype)
		require.NotEmpty(t, legal)
		require.Len(t, g.Deck, 1)
		require.GreaterOrEqual(t, g.redraws, 1)
	})

	t.Run("game ends when nothing fits", func(t *testing.T) {
		g := &Game{
			State: game.NewStateWithStart(game.NewTile(12, false), 2),
			Deck:  game.Deck{game.NewTile(18, false), game.NewTile(18, false)},
			rng:   rand.New(rand.NewSource(1)),
		}

		result, err := g.Run()

		require.NoError(t, err)
		require.Zero(t, result.Game.TotalMoves)
		require.Equal(t, meta.MAX_REDRAWS+1, result.Game.Redraws)
		require.Len(t, g.Deck, 2)
	})
}
