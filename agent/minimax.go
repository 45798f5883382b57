package agent

import (
	"carcassonne/game"
	"carcassonne/meta"
	"math"

	"golang.org/x/exp/rand"
)

type minimaxAgent struct {
	rng              *rand.Rand
	rate             game.Evaluate // rates the final position of a playout
	depth            int
	tokenProbability float64
}

// NewMinimax returns a decider running depth-limited alpha-beta search over
// tiles drawn from a shuffled copy of the deck. Leaves are rated by the final
// score margin of a random playout. Tokens go to the best heuristic point
// with probability tokenProbability.
func NewMinimax(rng *rand.Rand, depth int, tokenProbability float64) Decider {
	return &minimaxAgent{
		rng:              rng,
		rate:             game.EvaluateFinalScoreDifference,
		depth:            depth,
		tokenProbability: tokenProbability,
	}
}

func (a *minimaxAgent) Decide(state *game.State, tile game.Tile, deck game.Deck, legal []game.Move) (int, int) {
	player := state.Mover()
	sample := deck.Copy()
	sample.Shuffle(a.rng)

	best, bestValue := 0, math.MinInt
	for i, move := range legal {
		next := state.Copy()
		next.Play(move, tile, game.NoToken)
		if v := a.minimax(next, sample, 0, player, math.MinInt, math.MaxInt); i == 0 || v > bestValue {
			best, bestValue = i, v
		}
	}
	move := legal[best]
	return best, a.chooseToken(state, tile.Rotated(move.Rotation), move.Coordinate)
}

func (a *minimaxAgent) minimax(state *game.State, deck game.Deck, depth, player, alpha, beta int) int {
	if len(deck) == 0 || state.IsOver() || depth == a.depth {
		return a.evaluate(state, deck, player)
	}
	tile := deck.Draw()
	moves := game.EnumeratePlacements(state, tile)
	if len(moves) == 0 {
		return a.evaluate(state, deck, player)
	}

	maximising := state.Mover() == player
	value := math.MaxInt
	if maximising {
		value = math.MinInt
	}
	for _, move := range moves {
		next := state.Copy()
		next.Play(move, tile, a.chooseToken(next, tile.Rotated(move.Rotation), move.Coordinate))
		v := a.minimax(next, deck, depth+1, player, alpha, beta)
		if maximising {
			value = max(value, v)
			if value >= beta {
				break
			}
			alpha = max(alpha, value)
		} else {
			value = min(value, v)
			if value <= alpha {
				break
			}
			beta = min(beta, value)
		}
	}
	return value
}

func (a *minimaxAgent) chooseToken(state *game.State, tile game.Tile, at game.Coordinate) int {
	mover := state.Mover()
	if state.Tokens(mover) == 0 || a.rng.Float64() >= a.tokenProbability {
		return game.NoToken
	}
	return bestToken(state, tile, at, game.EnumerateTokenPlacements(state, tile, at), mover)
}

// evaluate plays the rest of the game at random on copies and returns
// player's final score margin.
func (a *minimaxAgent) evaluate(state *game.State, deck game.Deck, player int) int {
	state = state.Copy()
	deck = deck.Copy()
	redraws := 0
	for len(deck) > 0 && !state.IsOver() && redraws <= meta.MAX_REDRAWS {
		tile := deck.Draw()
		moves := game.EnumeratePlacements(state, tile)
		if len(moves) == 0 {
			deck.PutBack(tile)
			deck.Shuffle(a.rng)
			redraws++
			continue
		}
		redraws = 0

		move := moves[a.rng.Intn(len(moves))]
		point := game.NoToken
		if state.Tokens(state.Mover()) > 0 && a.rng.Float64() < randomTokenProbability {
			if points := game.EnumerateTokenPlacements(state, tile.Rotated(move.Rotation), move.Coordinate); len(points) > 0 {
				point = points[a.rng.Intn(len(points))]
			}
		}
		state.Play(move, tile, point)
	}
	return int(a.rate(state, player))
}
