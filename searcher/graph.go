package searcher

import (
	"carcassonne/game"
	"fmt"

	"github.com/awalterschulze/gographviz"
)

var shapes = map[Kind]string{
	Placement:      "box",
	TokenPlacement: "ellipse",
	Chance:         "diamond",
}

// ToDot renders the tree of the last decision in Graphviz format. Only the
// first ensemble repetition is kept. It returns an empty string before the
// first decision.
func (m *MCTS) ToDot() string {
	if m.lastTree == nil {
		return ""
	}
	return m.lastTree.toDot()
}

func (t *tree) toDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	for i := range t.nodes {
		n := &t.nodes[i]
		attrs := map[string]string{
			"shape": shapes[n.kind],
			"label": fmt.Sprintf("%q", label(n)),
		}
		if err := g.AddNode("G", dotName(n.id), attrs); err != nil {
			panic(err)
		}
	}
	for i, kids := range t.children {
		for _, kid := range kids {
			if err := g.AddEdge(dotName(naughty(i)), dotName(kid), true, nil); err != nil {
				panic(err)
			}
		}
	}
	return g.String()
}

func dotName(n naughty) string {
	return fmt.Sprintf("n%d", n)
}

func label(n *node) string {
	var action string
	switch n.kind {
	case Placement:
		action = n.tile.String()
	case TokenPlacement:
		action = n.move.String()
	case Chance:
		action = "no token"
		if n.point != game.NoToken {
			action = fmt.Sprintf("token %d", n.point)
		}
	}
	if n.visits == 0 {
		return fmt.Sprintf("%s\nunvisited", action)
	}
	return fmt.Sprintf("%s\nN=%d Q=%.1f/%.1f", action, n.visits, n.mean(0), n.mean(1))
}
