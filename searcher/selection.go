package searcher

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	tunedVarianceCap = 0.25
	probabilitySlack = 0.02
)

// bestChild returns the child maximizing exploitation + 2·c·bonus. With c != 0
// the first unvisited child wins outright; with c == 0 unvisited children are
// skipped, and if none is visited a random child is returned. Ties keep the
// earlier child.
func (t *tree) bestChild(n naughty, c float64) naughty {
	parentVisits := float64(t.nodes[n].visits)

	best := nilNode
	bestScore := math.Inf(-1)
	visited := false
	for _, kid := range t.children[n] {
		child := t.nodeFromNaughty(kid)
		if child.visits == 0 {
			if c != 0 {
				return kid
			}
			continue
		}
		visited = true

		score := child.mean(child.mover())
		if c != 0 {
			score += 2 * c * t.bonus(child, parentVisits)
		}
		if score > bestScore {
			bestScore = score
			best = kid
		}
	}

	if !visited {
		return t.randomChild(n)
	}
	if best == nilNode {
		panic(fmt.Sprintf("node %d has visited children but none could be selected", n))
	}
	return best
}

// bonus is the exploration bonus of a visited child.
func (t *tree) bonus(child *node, parentVisits float64) float64 {
	visits := float64(child.visits)
	if t.policy.family != tunedFamily {
		return math.Sqrt(2 * math.Log(parentVisits) / visits)
	}
	v := math.Max(0, math.Min(tunedVarianceCap, t.variance(child)))
	return math.Sqrt(math.Log(parentVisits) / visits * v)
}

// variance is the UCB1-Tuned upper estimate of the payoff variance of child
// for its mover, using the training iteration count in the confidence term.
func (t *tree) variance(child *node) float64 {
	player := child.mover()
	visits := float64(child.visits)
	mean := child.mean(player)
	logIterations := 0.0
	if t.iteration > 0 {
		logIterations = math.Log(float64(t.iteration))
	}
	return child.squares[player]/visits - mean*mean + math.Sqrt(2*logIterations/visits)
}

// bestHeuristic returns the child with the highest static heuristic score.
// Ties keep the earlier child.
func (t *tree) bestHeuristic(n naughty) naughty {
	best := nilNode
	bestScore := math.MinInt
	for _, kid := range t.children[n] {
		if h := t.nodes[kid].heuristic; best == nilNode || h > bestScore {
			best, bestScore = kid, h
		}
	}
	if best == nilNode {
		return n
	}
	return best
}

// boltzmann samples a child with probability proportional to
// exp(exploitation / temperature). Unvisited children are returned first.
func (t *tree) boltzmann(n naughty, temperature float64) naughty {
	kids := t.children[n]
	probabilities, unvisited := t.boltzmannProbabilities(kids, temperature)
	if unvisited.isValid() {
		return unvisited
	}
	for {
		i := t.rng.Intn(len(kids))
		if t.rng.Float64() < probabilities[i] {
			return kids[i]
		}
	}
}

func (t *tree) boltzmannProbabilities(kids []naughty, temperature float64) ([]float64, naughty) {
	values := make([]float64, len(kids))
	for i, kid := range kids {
		child := t.nodeFromNaughty(kid)
		if child.visits == 0 {
			return nil, kid
		}
		values[i] = child.mean(child.mover()) / temperature
	}

	norm := floats.LogSumExp(values)
	for i, v := range values {
		values[i] = math.Exp(v - norm)
	}
	if sum := floats.Sum(values); !(math.Abs(sum-1) <= probabilitySlack) {
		panic(fmt.Sprintf("boltzmann probabilities sum to %v", sum))
	}
	return values, nilNode
}
