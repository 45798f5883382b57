package searcher

import (
	"carcassonne/game"
	"carcassonne/meta"
)

// playout completes the game below n on copies of its state and of the
// iteration's deck and returns the final scores.
func (t *tree) playout(n naughty) [game.NumPlayers]float64 {
	nd := t.nodeFromNaughty(n)
	state := nd.state.Copy()
	deck := t.sim.Copy()

	switch nd.kind {
	case Placement:
		// The tile in hand is played first.
		deck = append(game.Deck{nd.tile}, deck...)
	case TokenPlacement:
		commit(state, nd.move.Coordinate, nd.tile, t.chooseToken(state, nd.tile, nd.move.Coordinate))
	case Chance:
		commit(state, nd.move.Coordinate, nd.tile, nd.point)
	}

	if t.playoutPolicy != DirectHeuristicPlayout {
		t.simulate(state, &deck)
	}
	state.TriggerScoring(true)

	var payoff [game.NumPlayers]float64
	for p, score := range state.Score() {
		payoff[p] = float64(score)
	}
	return payoff
}

// simulate plays out deck on state with the playout policy. A drawn tile
// without a legal placement goes back into the deck, which is reshuffled.
func (t *tree) simulate(state *game.State, deck *game.Deck) {
	redraws := 0
	for len(*deck) > 0 && !state.IsOver() {
		tile := deck.Draw()
		moves := game.EnumeratePlacements(state, tile)
		if len(moves) == 0 {
			deck.PutBack(tile)
			deck.Shuffle(t.rng)
			redraws++
			if redraws > meta.MAX_REDRAWS {
				return
			}
			continue
		}
		redraws = 0

		move := t.chooseMove(state, tile, moves)
		rotated := tile.Rotated(move.Rotation)
		commit(state, move.Coordinate, rotated, t.chooseToken(state, rotated, move.Coordinate))
	}
}

func (t *tree) chooseMove(state *game.State, tile game.Tile, moves []game.Move) game.Move {
	if !t.playoutPolicy.greedyMoves() {
		return moves[t.rng.Intn(len(moves))]
	}
	mover := state.Mover()
	best, bestScore := 0, 0
	for i, move := range moves {
		if h := game.MoveHeuristic(state, move, tile, mover); i == 0 || h > bestScore {
			best, bestScore = i, h
		}
	}
	return moves[best]
}

// chooseToken picks a token point for the rotated tile about to go to at.
func (t *tree) chooseToken(state *game.State, tile game.Tile, at game.Coordinate) int {
	if state.Tokens(state.Mover()) == 0 {
		return game.NoToken
	}
	if t.playoutPolicy == HeuristicPlayout {
		mover := state.Mover()
		best, bestScore := game.NoToken, 0
		for _, point := range game.EnumerateTokenPlacements(state, tile, at) {
			if h := game.TokenHeuristic(state, tile, at, point, mover); h > bestScore {
				best, bestScore = point, h
			}
		}
		return best
	}
	if t.rng.Float64() >= t.tokenProbability {
		return game.NoToken
	}
	points := game.EnumerateTokenPlacements(state, tile, at)
	if len(points) == 0 {
		return game.NoToken
	}
	return points[t.rng.Intn(len(points))]
}
