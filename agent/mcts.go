package agent

import "carcassonne/searcher"

type mctsAgent struct {
	*searcher.MCTS
}

// NewMCTS returns a decider backed by m. It is Metered.
func NewMCTS(m *searcher.MCTS) Decider {
	return mctsAgent{MCTS: m}
}
