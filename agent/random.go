package agent

import (
	"carcassonne/game"

	"golang.org/x/exp/rand"
)

const randomTokenProbability = 0.5

type randomAgent struct {
	rng *rand.Rand
}

// NewRandom returns a decider playing a uniformly random move and, half of the
// time, a random legal token.
func NewRandom(rng *rand.Rand) Decider {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) Decide(state *game.State, tile game.Tile, deck game.Deck, legal []game.Move) (int, int) {
	i := a.rng.Intn(len(legal))
	if state.Tokens(state.Mover()) == 0 || a.rng.Float64() >= randomTokenProbability {
		return i, game.NoToken
	}
	points := game.EnumerateTokenPlacements(state, tile.Rotated(legal[i].Rotation), legal[i].Coordinate)
	if len(points) == 0 {
		return i, game.NoToken
	}
	return i, points[a.rng.Intn(len(points))]
}
