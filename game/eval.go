package game

const scoreSwingWeight = 10

// MoveHeuristic rates placing tile with move for player: the score swing from
// the completions the placement triggers, then how many neighbours it touches.
func MoveHeuristic(s *State, move Move, tile Tile, player int) int {
	sim := s.Copy()
	before := sim.Score()
	tile = tile.Rotated(move.Rotation)
	tile.TokenPoint, tile.TokenOwner = NoToken, NoPlayer
	sim.ApplyPlacement(move.Coordinate, tile)
	sim.TriggerScoring(false)
	after := sim.Score()

	idx := len(sim.tiles) - 1
	neighbours := 0
	for side := Side(0); side < NumSides; side++ {
		if sim.neighbour(idx, side) != empty {
			neighbours++
		}
	}
	return scoreSwingWeight*ScoreDifference(after, player) - scoreSwingWeight*ScoreDifference(before, player) + neighbours
}

// TokenHeuristic rates claiming point of tile, already rotated and about to be
// placed at at, by what the region would be worth. NoToken rates 0.
func TokenHeuristic(s *State, tile Tile, at Coordinate, point, player int) int {
	if point == NoToken {
		return 0
	}
	sim := s.Copy()
	tile.TokenPoint, tile.TokenOwner = NoToken, NoPlayer
	sim.ApplyPlacement(at, tile)
	idx := len(sim.tiles) - 1
	if point == Middle && tile.Centre == Cloister {
		return 1 + sim.surrounding(idx)
	}
	root := sim.regionOf(idx, point)
	switch sim.regionFeature(root) {
	case City, Road:
		return sim.regionValue(root)
	case Field:
		return fieldCityPoints * len(sim.adjacentCompletedCities(root))
	default:
		return 0
	}
}

// ScoreDifference is player's score minus the best opposing score.
func ScoreDifference(scores [NumPlayers]int, player int) int {
	best := 0
	first := true
	for p, v := range scores {
		if p == player {
			continue
		}
		if first || v > best {
			best = v
			first = false
		}
	}
	return scores[player] - best
}
