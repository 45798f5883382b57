package searcher

import (
	"carcassonne/game"
	"fmt"
)

// naughty is an index into the tree's node arena; it stands in for *node.
type naughty int

const nilNode naughty = -1

func (n naughty) isValid() bool { return n >= 0 }

// Kind tags the three levels of a turn in the search tree.
type Kind uint8

const (
	Placement      Kind = iota // tile in hand; children choose where it goes
	TokenPlacement             // placement chosen; children choose a token point
	Chance                     // turn chosen; children are the possible next draws
)

func (k Kind) String() string {
	switch k {
	case Placement:
		return "Placement"
	case TokenPlacement:
		return "TokenPlacement"
	case Chance:
		return "Chance"
	}
	return "UNKNOWN KIND"
}

// node is a search tree node. Placement nodes own their state. TokenPlacement
// and Chance nodes point at the state of the Placement node above them, and
// siblings below one Chance node share a state. States in the tree are never
// mutated.
type node struct {
	id     naughty
	parent naughty
	kind   Kind
	state  *game.State

	tile  game.Tile // Placement: tile in hand; otherwise the tile rotated by move
	index int       // position of move among the parent's placements
	move  game.Move
	point int // Chance: token point or game.NoToken

	heuristic int // static score of the action leading here, for heuristic policies

	visits  int
	payoff  [game.NumPlayers]float64
	squares [game.NumPlayers]float64 // sums of squared weighted payoffs
}

func (n *node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v Kind: %v Move: %v Point: %v Visits: %v Payoff: %v}", n.id, n.kind, n.move, n.point, n.visits, n.payoff)
}

// mover is the player to move in the node's state. Below a Placement node
// that is the player whose choice led to the node.
func (n *node) mover() int {
	return n.state.Mover()
}

// mean is the average weighted payoff for player. The node must be visited.
func (n *node) mean(player int) float64 {
	return n.payoff[player] / float64(n.visits)
}

func (n *node) accumulate(payoff [game.NumPlayers]float64, weight float64) {
	n.visits++
	for p, x := range payoff {
		v := weight * x
		n.payoff[p] += v
		n.squares[p] += v * v
	}
}
