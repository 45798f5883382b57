package game

import "fmt"

// Move places a tile at a placement-space coordinate after rotating it
// Rotation times counter-clockwise.
type Move struct {
	Coordinate
	Rotation int
}

func (m Move) String() string {
	return fmt.Sprintf("%v r%d", m.Coordinate, m.Rotation)
}

// EnumeratePlacements lists every legal (coordinate, rotation) for tile, scanning
// the placement space row by row, then column, then rotation ascending.
// Callers address moves by their position in this list.
func EnumeratePlacements(s *State, tile Tile) []Move {
	rows, cols := s.Dimensions()
	var moves []Move
	for row := 0; row < rows+2; row++ {
		for col := 0; col < cols+2; col++ {
			at := Coordinate{Row: row, Col: col}
			candidate := tile
			for rotation := 0; rotation < NumSides; rotation++ {
				if isLegalPlacement(s, at, candidate) {
					moves = append(moves, Move{Coordinate: at, Rotation: rotation})
				}
				candidate.Rotate()
			}
		}
	}
	return moves
}

func isLegalPlacement(s *State, at Coordinate, tile Tile) bool {
	rows, cols := s.Dimensions()
	outsideRows := at.Row == 0 || at.Row == rows+1
	outsideCols := at.Col == 0 || at.Col == cols+1
	// A corner of the enlarged box touches no existing tile.
	if outsideRows && outsideCols {
		return false
	}
	if s.tileAtPlacement(at) != empty {
		return false
	}

	connected := 0
	for side := Side(0); side < NumSides; side++ {
		dr, dc := side.delta()
		nb := s.tileAtPlacement(Coordinate{Row: at.Row + dr, Col: at.Col + dc})
		if nb == empty {
			continue
		}
		if s.tiles[nb].Edge(side.Opposite()) != tile.Edge(side) {
			return false
		}
		connected++
	}
	return connected > 0
}

// EnumerateTokenPlacements lists the points of tile, already rotated and about
// to be placed at the placement-space coordinate at, whose region would not yet
// hold a token. It is empty when the mover has no tokens left.
func EnumerateTokenPlacements(s *State, tile Tile, at Coordinate) []int {
	if s.Tokens(s.Mover()) < 1 {
		return nil
	}
	sim := s.Copy()
	tile.TokenPoint, tile.TokenOwner = NoToken, NoPlayer
	sim.ApplyPlacement(at, tile)
	idx := len(sim.tiles) - 1

	claimed := map[int]bool{}
	for _, c := range sim.claims() {
		claimed[c.region] = true
	}

	var points []int
	for p := 0; p < NumPoints; p++ {
		if p == Middle && tile.Centre == Junction {
			continue
		}
		if !claimed[sim.regionOf(idx, p)] {
			points = append(points, p)
		}
	}
	return points
}

// IsLegalToken reports whether point is NoToken or one of the legal token points for the placement.
func IsLegalToken(s *State, tile Tile, at Coordinate, point int) bool {
	if point == NoToken {
		return true
	}
	for _, p := range EnumerateTokenPlacements(s, tile, at) {
		if p == point {
			return true
		}
	}
	return false
}
