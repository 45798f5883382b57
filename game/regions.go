package game

// regions is a union-find over (placed tile, point) pairs. Node ids are
// tile*NumPoints + point. Roots carry the region's feature and its number of
// unmatched edge points; a city or road with no open points is complete.
type regions struct {
	parent  []int
	size    []int
	feature []Feature
	open    []int
}

func (g regions) copy() regions {
	return regions{
		parent:  append([]int(nil), g.parent...),
		size:    append([]int(nil), g.size...),
		feature: append([]Feature(nil), g.feature...),
		open:    append([]int(nil), g.open...),
	}
}

func node(tile, point int) int {
	return tile*NumPoints + point
}

// find does not compress paths so that lookups never write; union by size keeps trees shallow.
func (g *regions) find(n int) int {
	for g.parent[n] != n {
		n = g.parent[n]
	}
	return n
}

func (g *regions) union(a, b int) int {
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return ra
	}
	if g.size[ra] < g.size[rb] {
		ra, rb = rb, ra
	}
	g.parent[rb] = ra
	g.size[ra] += g.size[rb]
	g.open[ra] += g.open[rb]
	return ra
}

// add registers the points of tile idx and joins them to its neighbours.
func (g *regions) add(s *State, idx int) {
	tile := s.tiles[idx]
	base := node(idx, 0)
	for p := 0; p < NumPoints; p++ {
		g.parent = append(g.parent, base+p)
		g.size = append(g.size, 1)
		g.feature = append(g.feature, tile.Point(p))
		g.open = append(g.open, 0)
	}

	label := tile.groups()
	var first [NumPoints + 1]int
	for i := range first {
		first[i] = -1
	}
	for p := 0; p < NumPoints; p++ {
		if q := first[label[p]]; q >= 0 {
			g.union(base+q, base+p)
		} else {
			first[label[p]] = p
		}
	}

	for p := 0; p < NumEdgePoints; p++ {
		nb := s.neighbour(idx, sideOf(p))
		if nb == empty {
			g.open[g.find(base+p)]++
			continue
		}
		other := g.find(node(nb, oppositePoint(p)))
		g.open[other]--
		g.union(base+p, other)
	}
}

// regionOf returns the root of the region that a point of a placed tile belongs to.
func (s *State) regionOf(tile, point int) int {
	return s.regions.find(node(tile, point))
}

func (s *State) regionFeature(root int) Feature {
	return s.regions.feature[root]
}

func (s *State) regionComplete(root int) bool {
	return s.regions.open[root] == 0
}

// regionTiles lists the placed tiles that contain at least one point of the region.
func (s *State) regionTiles(root int) []int {
	var tiles []int
	for t := range s.tiles {
		for p := 0; p < NumPoints; p++ {
			if s.regions.find(node(t, p)) == root {
				tiles = append(tiles, t)
				break
			}
		}
	}
	return tiles
}
