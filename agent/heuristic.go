package agent

import (
	"carcassonne/game"

	"golang.org/x/exp/rand"
)

type heuristicAgent struct {
	rng *rand.Rand
}

// NewHeuristic returns a greedy decider: the first move with the highest
// MoveHeuristic, then the token point with the highest positive
// TokenHeuristic. Token candidates are shuffled so equal ratings break
// randomly.
func NewHeuristic(rng *rand.Rand) Decider {
	return &heuristicAgent{rng: rng}
}

func (a *heuristicAgent) Decide(state *game.State, tile game.Tile, deck game.Deck, legal []game.Move) (int, int) {
	mover := state.Mover()
	best, bestScore := 0, 0
	for i, move := range legal {
		if h := game.MoveHeuristic(state, move, tile, mover); i == 0 || h > bestScore {
			best, bestScore = i, h
		}
	}
	if state.Tokens(mover) == 0 {
		return best, game.NoToken
	}

	move := legal[best]
	rotated := tile.Rotated(move.Rotation)
	points := game.EnumerateTokenPlacements(state, rotated, move.Coordinate)
	a.rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	return best, bestToken(state, rotated, move.Coordinate, points, mover)
}

// bestToken returns the first point of points with the highest positive
// TokenHeuristic, or game.NoToken.
func bestToken(state *game.State, tile game.Tile, at game.Coordinate, points []int, player int) int {
	best, bestScore := game.NoToken, 0
	for _, point := range points {
		if h := game.TokenHeuristic(state, tile, at, point, player); h > bestScore {
			best, bestScore = point, h
		}
	}
	return best
}
