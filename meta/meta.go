// meta/meta.go
package meta

// ITERATIONS defines the number of MCTS training iterations per decision.
const ITERATIONS = 150

// EXPLORATION defines the default exploration term of the tree policy.
const EXPLORATION = 4.0

// TOKEN_PROBABILITY defines how often a random playout considers placing a token.
const TOKEN_PROBABILITY = 0.3

// FALLBACK_TOKEN_PROBABILITY replaces a token probability outside [0, 1].
const FALLBACK_TOKEN_PROBABILITY = 0.5

// MINIMAX_DEPTH defines the default search depth in turns for minimax agents.
const MINIMAX_DEPTH = 2

// MAX_REDRAWS bounds consecutive unplaceable draws before a game or playout gives up.
const MAX_REDRAWS = 100
