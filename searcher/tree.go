package searcher

import (
	"carcassonne/game"
	"carcassonne/utils"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// tree is one training run for one decision: the node arena plus the
// simulation context of a single ensemble repetition. It is not safe for
// concurrent use; repetitions each build their own.
type tree struct {
	*MCTS // read-only during a decision

	nodes    []node
	children [][]naughty
	root     naughty

	rng   *rand.Rand
	legal []game.Move
	deck  game.Deck // the repetition's view of the hidden draw pile
	sim   game.Deck // draw pile of the running iteration

	c         float64 // exploration term of the running iteration
	iteration int
}

type decision struct {
	move  int
	point int
}

func (m *MCTS) newTree(state *game.State, tile game.Tile, deck game.Deck, legal []game.Move, seed uint64) *tree {
	t := &tree{
		MCTS:  m,
		rng:   rand.New(rand.NewSource(seed)),
		legal: legal,
		deck:  deck.Copy(),
	}
	if m.config.Ensemble > 1 {
		t.deck.Shuffle(t.rng)
	}
	t.root = t.alloc(node{
		parent: nilNode,
		kind:   Placement,
		state:  state.Copy(),
		tile:   tile,
		index:  -1,
		point:  game.NoToken,
	})
	t.expandPlacement(t.root, legal)
	return t
}

func (t *tree) alloc(n node) naughty {
	id := naughty(len(t.nodes))
	n.id = id
	t.nodes = append(t.nodes, n)
	t.children = append(t.children, nil)
	if n.parent.isValid() {
		t.children[n.parent] = append(t.children[n.parent], id)
	}
	return id
}

func (t *tree) nodeFromNaughty(n naughty) *node {
	return &t.nodes[n]
}

// terminal reports whether no tile is left to draw after the one in play.
func (t *tree) terminal(n naughty) bool {
	return t.nodes[n].state.Remaining() <= 1
}

// cheats reports whether Chance nodes sample the front of the deck instead
// of branching on every remaining archetype.
func (t *tree) cheats() bool {
	return t.config.Ensemble > 1 || t.config.DeckCheat
}

// train runs the configured number of select, expand, playout and backup iterations.
func (t *tree) train() {
	for i := 0; i < t.config.Iterations; i++ {
		t.iteration = i
		t.c = t.policy.coefficient(t.exploration, i)
		t.sim = t.deck.Copy()
		if !t.cheats() {
			t.sim.Shuffle(t.rng)
		}

		leaf := t.descend()

		playouts := t.config.Playouts
		if playouts == -1 {
			playouts = i + 1
		}
		weight := t.weight(i)
		for j := 0; j < playouts; j++ {
			t.backup(leaf, t.playout(leaf), weight)
			t.metrics.AddPlayout()
		}
		t.metrics.AddIteration()
	}
	t.metrics.AddNodes(len(t.nodes))
}

// weight is the backup weight of iteration i.
func (t *tree) weight(i int) float64 {
	w := math.Max(0, 1+float64(i)*t.config.WeightDelta)
	if k := t.config.WeightDoubling; k > 0 {
		w *= math.Pow(2, float64(i)/k)
	}
	return w
}

// descend walks from the root with the tree policy and expands the first
// leaf it meets. It returns the node to run playouts from.
func (t *tree) descend() naughty {
	n := t.root
	for {
		if len(t.children[n]) == 0 {
			if t.terminal(n) {
				return n
			}
			return t.expandChain(n)
		}
		n = t.selectChild(n)
		if t.terminal(n) {
			return n
		}
	}
}

// expandChain expands until it reaches a fresh Placement node, a terminal
// node or a node that cannot be expanded.
func (t *tree) expandChain(n naughty) naughty {
	for {
		child := t.expand(n)
		if child == n {
			return n
		}
		n = child
		if t.nodes[n].kind == Placement || t.terminal(n) {
			return n
		}
	}
}

// expand materializes the children of n and returns one of them at random,
// or n itself when there are none.
func (t *tree) expand(n naughty) naughty {
	switch nd := t.nodes[n]; nd.kind {
	case Placement:
		t.expandPlacement(n, game.EnumeratePlacements(nd.state, nd.tile))
	case TokenPlacement:
		t.expandTokenPlacement(n)
	case Chance:
		return t.expandChance(n)
	default:
		panic(fmt.Sprintf("unexpected node kind %v", nd.kind))
	}
	return t.randomChild(n)
}

func (t *tree) expandPlacement(n naughty, moves []game.Move) {
	nd := t.nodes[n]
	mover := nd.state.Mover()
	for i, move := range moves {
		child := node{
			parent: n,
			kind:   TokenPlacement,
			state:  nd.state,
			tile:   nd.tile.Rotated(move.Rotation),
			index:  i,
			move:   move,
			point:  game.NoToken,
		}
		if t.policy.heuristic() {
			child.heuristic = game.MoveHeuristic(nd.state, move, nd.tile, mover)
		}
		t.alloc(child)
	}
}

func (t *tree) expandTokenPlacement(n naughty) {
	nd := t.nodes[n]
	mover := nd.state.Mover()
	points := append([]int{game.NoToken}, game.EnumerateTokenPlacements(nd.state, nd.tile, nd.move.Coordinate)...)
	for _, point := range points {
		child := node{
			parent: n,
			kind:   Chance,
			state:  nd.state,
			tile:   nd.tile,
			index:  nd.index,
			move:   nd.move,
			point:  point,
		}
		if t.policy.heuristic() {
			child.heuristic = game.TokenHeuristic(nd.state, nd.tile, nd.move.Coordinate, point, mover)
		}
		t.alloc(child)
	}
}

// expandChance commits the turn of n and creates one Placement child per
// possible next tile. The tile of the returned child leaves the simulated deck.
func (t *tree) expandChance(n naughty) naughty {
	if len(t.sim) == 0 {
		return n
	}
	nd := t.nodes[n]
	next := nd.state.Copy()
	commit(next, nd.move.Coordinate, nd.tile, nd.point)

	placement := node{parent: n, kind: Placement, state: next, index: -1, point: game.NoToken}
	if t.cheats() {
		placement.tile = t.sim.Draw()
		return t.alloc(placement)
	}
	for _, tile := range t.sim.Archetypes() {
		placement.tile = tile
		t.alloc(placement)
	}
	child := t.randomChild(n)
	t.consume(child)
	return child
}

// consume removes the tile of Placement node n from the simulated deck.
func (t *tree) consume(n naughty) {
	if !t.sim.RemoveArchetype(t.nodes[n].tile.Archetype) && len(t.sim) > 0 {
		t.sim.RemoveAt(t.rng.Intn(len(t.sim)))
	}
}

func (t *tree) randomChild(n naughty) naughty {
	kids := t.children[n]
	if len(kids) == 0 {
		return n
	}
	return kids[t.rng.Intn(len(kids))]
}

// selectChild picks the child of an expanded node to descend into. Nature
// picks the draw below Chance nodes regardless of the tree policy.
func (t *tree) selectChild(n naughty) naughty {
	if t.nodes[n].kind == Chance {
		child := t.randomChild(n)
		t.consume(child)
		return child
	}

	switch t.policy.family {
	case uctFamily, tunedFamily:
		return t.bestChild(n, t.c)
	case epsilonGreedy:
		if t.rng.Float64() < t.c {
			return t.randomChild(n)
		}
		return t.bestChild(n, 0)
	case heuristicEpsilonGreedy:
		if t.rng.Float64() < t.c {
			return t.randomChild(n)
		}
		return t.bestHeuristic(n)
	case heuristicGreedy:
		return t.bestHeuristic(n)
	case boltzmannFamily:
		if t.c <= 0 {
			// Zero temperature is the greedy limit.
			return t.bestChild(n, 0)
		}
		return t.boltzmann(n, t.c)
	}
	panic(fmt.Sprintf("unexpected tree policy %v", t.policy))
}

// backup adds one weighted payoff sample to n and every ancestor.
func (t *tree) backup(n naughty, payoff [game.NumPlayers]float64, weight float64) {
	for n.isValid() {
		nd := t.nodeFromNaughty(n)
		nd.accumulate(payoff, weight)
		n = nd.parent
	}
}

// extract reads the decision off the trained tree without exploration.
func (t *tree) extract() decision {
	chosen := t.bestChild(t.root, 0)
	move := utils.FindIndex(t.legal, t.nodes[chosen].move)
	if move < 0 {
		panic(fmt.Sprintf("chosen move %v is not among the legal moves", t.nodes[chosen].move))
	}
	if len(t.children[chosen]) == 0 {
		return decision{move: move, point: game.NoToken}
	}
	token := t.bestChild(chosen, 0)
	return decision{move: move, point: t.nodes[token].point}
}

func commit(state *game.State, at game.Coordinate, tile game.Tile, point int) {
	state.ApplyTokenPlacement(point, state.Mover(), &tile)
	state.ApplyPlacement(at, tile)
	state.TriggerScoring(false)
}
