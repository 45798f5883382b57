package searcher

import (
	"strings"

	"github.com/pkg/errors"
)

const decayingPrefix = "decaying-"

type family int

const (
	uctFamily family = iota
	tunedFamily
	epsilonGreedy
	heuristicEpsilonGreedy
	heuristicGreedy
	boltzmannFamily
)

var families = map[string]family{
	"uct":                      uctFamily,
	"uct-tuned":                tunedFamily,
	"epsilon-greedy":           epsilonGreedy,
	"heuristic-epsilon-greedy": heuristicEpsilonGreedy,
	"heuristic-mcts":           heuristicGreedy,
	"boltzmann":                boltzmannFamily,
}

// Policy is a tree policy: how the search descends through expanded nodes.
type Policy struct {
	Name     string
	family   family
	decaying bool
}

// ParsePolicy resolves a policy name such as "uct" or "decaying-boltzmann".
func ParsePolicy(name string) (Policy, error) {
	base := strings.TrimPrefix(name, decayingPrefix)
	f, ok := families[base]
	if !ok {
		return Policy{}, errors.Errorf("unknown tree policy %q", name)
	}
	return Policy{Name: name, family: f, decaying: base != name}, nil
}

func (p Policy) String() string {
	return p.Name
}

func (p Policy) epsilon() bool {
	return p.family == epsilonGreedy || p.family == heuristicEpsilonGreedy
}

// fixedEpsilon reports whether the policy ignores the configured exploration
// and decays from epsilon 1 instead.
func (p Policy) fixedEpsilon() bool {
	return p.decaying && p.family == epsilonGreedy
}

func (p Policy) heuristic() bool {
	return p.family == heuristicEpsilonGreedy || p.family == heuristicGreedy
}

// coefficient is the exploration term at training iteration i.
func (p Policy) coefficient(base float64, i int) float64 {
	if !p.decaying {
		return base
	}
	if p.fixedEpsilon() {
		base = 1
	}
	return base / float64(i+1)
}

// Playout is the default policy that completes a simulated game from a leaf.
type Playout int

const (
	RandomPlayout          Playout = iota // random moves, tokens at a configured rate
	HeuristicPlayout                      // greedy moves and tokens
	RandomHeuristicPlayout                // greedy moves, random tokens
	DirectHeuristicPlayout                // final-score the leaf without simulating
)

var playoutNames = []string{"random", "heuristic", "random-heuristic", "direct-heuristic"}

func (p Playout) String() string {
	if p < 0 || int(p) >= len(playoutNames) {
		return "unknown"
	}
	return playoutNames[p]
}

func ParsePlayout(name string) (Playout, error) {
	for i, n := range playoutNames {
		if n == name {
			return Playout(i), nil
		}
	}
	return 0, errors.Errorf("unknown playout policy %q", name)
}

func (p Playout) greedyMoves() bool {
	return p == HeuristicPlayout || p == RandomHeuristicPlayout
}
