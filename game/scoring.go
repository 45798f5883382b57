package game

import "sort"

const (
	cloisterBonus      = 9
	cityTilePoints     = 2
	pennantPoints      = 2
	fieldCityPoints    = 3
	completeSurrounded = 8
)

type claim struct {
	tile   int
	point  int
	owner  int
	region int
}

// claims lists every token on the board with the region it sits in.
func (s *State) claims() []claim {
	var claims []claim
	for i, tile := range s.tiles {
		if !tile.HasToken() {
			continue
		}
		claims = append(claims, claim{
			tile:   i,
			point:  tile.TokenPoint,
			owner:  tile.TokenOwner,
			region: s.regionOf(i, tile.TokenPoint),
		})
	}
	return claims
}

// owners returns the players holding the most tokens in region. Ties share ownership.
func owners(claims []claim, region int) []int {
	var count [NumPlayers]int
	for _, c := range claims {
		if c.region == region {
			count[c.owner]++
		}
	}
	best := 0
	for _, n := range count {
		if n > best {
			best = n
		}
	}
	if best == 0 {
		return nil
	}
	var players []int
	for p, n := range count {
		if n == best {
			players = append(players, p)
		}
	}
	return players
}

func (s *State) returnToken(tile int) {
	owner := s.tiles[tile].TokenOwner
	s.tiles[tile].TokenPoint = NoToken
	s.tiles[tile].TokenOwner = NoPlayer
	s.tokens[owner]++
}

func (s *State) isCloisterClaim(c claim) bool {
	return c.point == Middle && s.tiles[c.tile].Centre == Cloister
}

// TriggerScoring scores claimed regions. Without final it scores only
// completed cloisters, cities and roads and returns their tokens. With final
// it does that first and then scores every region that is still claimed.
func (s *State) TriggerScoring(final bool) {
	s.scoreCompleted()
	if final {
		s.scoreUnfinished()
	}
}

func (s *State) scoreCompleted() {
	claims := s.claims()
	scored := map[int]bool{}
	for _, c := range claims {
		if s.isCloisterClaim(c) {
			if s.surrounding(c.tile) == completeSurrounded {
				s.scores[c.owner] += cloisterBonus
				s.returnToken(c.tile)
			}
			continue
		}
		if scored[c.region] || !s.regionComplete(c.region) {
			continue
		}
		feature := s.regionFeature(c.region)
		if feature != City && feature != Road {
			continue
		}
		scored[c.region] = true
		points := s.regionValue(c.region)
		for _, p := range owners(claims, c.region) {
			s.scores[p] += points
		}
	}
	for _, c := range claims {
		if scored[c.region] && !s.isCloisterClaim(c) {
			s.returnToken(c.tile)
		}
	}
}

func (s *State) scoreUnfinished() {
	claims := s.claims()
	scored := map[int]bool{}
	for _, c := range claims {
		if s.isCloisterClaim(c) {
			s.scores[c.owner] += 1 + s.surrounding(c.tile)
			continue
		}
		if scored[c.region] {
			continue
		}
		scored[c.region] = true
		var points int
		switch s.regionFeature(c.region) {
		case City, Road:
			points = len(s.regionTiles(c.region))
		case Field:
			points = fieldCityPoints * len(s.adjacentCompletedCities(c.region))
		}
		for _, p := range owners(claims, c.region) {
			s.scores[p] += points
		}
	}
	for _, c := range claims {
		s.returnToken(c.tile)
	}
}

// regionValue is what a completed region scores: cities count two per tile and
// pennant, roads one per tile.
func (s *State) regionValue(root int) int {
	tiles := s.regionTiles(root)
	if s.regionFeature(root) != City {
		return len(tiles)
	}
	pennants := 0
	for _, t := range tiles {
		if s.tiles[t].Pennant {
			pennants++
		}
	}
	return cityTilePoints*len(tiles) + pennantPoints*pennants
}

// adjacentCompletedCities returns the completed city regions that share a tile with field.
func (s *State) adjacentCompletedCities(field int) []int {
	seen := map[int]bool{}
	for _, t := range s.regionTiles(field) {
		for p := 0; p < NumPoints; p++ {
			if s.tiles[t].Point(p) != City {
				continue
			}
			root := s.regionOf(t, p)
			if s.regionFeature(root) == City && s.regionComplete(root) {
				seen[root] = true
			}
		}
	}
	cities := make([]int, 0, len(seen))
	for root := range seen {
		cities = append(cities, root)
	}
	sort.Ints(cities)
	return cities
}
