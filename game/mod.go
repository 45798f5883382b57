package game

// Evaluate rates a position from player's perspective; larger is better.
type Evaluate func(s *State, player int) float64

// EvaluateFinalScoreDifference rates a position by the margin it would have if
// the game were scored as final right now.
func EvaluateFinalScoreDifference(s *State, player int) float64 {
	sim := s.Copy()
	sim.TriggerScoring(true)
	return float64(ScoreDifference(sim.Score(), player))
}

// Winner returns the player with the strictly highest score, or NoPlayer on a tie.
func Winner(scores [NumPlayers]int) int {
	winner, best, tie := NoPlayer, 0, false
	for p, v := range scores {
		switch {
		case winner == NoPlayer || v > best:
			winner, best, tie = p, v, false
		case v == best:
			tie = true
		}
	}
	if tie {
		return NoPlayer
	}
	return winner
}
