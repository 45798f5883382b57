package game

import "fmt"

const (
	NumPlayers      = 2
	TokensPerPlayer = 7
)

// State is the board position of a game: placed tiles, claimed regions, token
// inventories and scores. The draw pile lives beside it (see Deck); State only
// tracks how many tiles are still unplaced so that
// placed + Remaining == TotalTiles holds in every copy.
type State struct {
	board     Board
	tiles     []Tile       // placed tiles in placement order
	positions []Coordinate // absolute position of each placed tile
	regions   regions
	tokens    [NumPlayers]int
	scores    [NumPlayers]int
	remaining int
}

// NewState creates the opening position: the starting tile at the origin and
// every other tile still to be placed.
func NewState() *State {
	return NewStateWithStart(NewTile(StartArchetype, false), TotalTiles-1)
}

// NewStateWithStart creates a position with a custom starting tile and
// remaining count, for scenarios and tests.
func NewStateWithStart(start Tile, remaining int) *State {
	s := &State{
		board:     newBoard(),
		remaining: remaining + 1,
	}
	for p := range s.tokens {
		s.tokens[p] = TokensPerPlayer
	}
	s.ApplyPlacement(Coordinate{Row: 1, Col: 1}, start)
	return s
}

// Copy returns a deep copy that shares no mutable memory with s.
func (s *State) Copy() *State {
	return &State{
		board:     s.board.copy(),
		tiles:     append([]Tile(nil), s.tiles...),
		positions: append([]Coordinate(nil), s.positions...),
		regions:   s.regions.copy(),
		tokens:    s.tokens,
		scores:    s.scores,
		remaining: s.remaining,
	}
}

// Remaining counts the tiles not yet placed, including a tile in hand.
func (s *State) Remaining() int {
	return s.remaining
}

func (s *State) Placed() int {
	return len(s.tiles)
}

// IsOver reports whether every tile has been placed.
func (s *State) IsOver() bool {
	return s.remaining == 0
}

// Mover is the player who places the next tile.
func (s *State) Mover() int {
	if s.remaining%2 == 1 {
		return 0
	}
	return 1
}

func (s *State) Tokens(player int) int {
	return s.tokens[player]
}

func (s *State) Score() [NumPlayers]int {
	return s.scores
}

func (s *State) Dimensions() (rows, cols int) {
	return s.board.Dimensions()
}

// TileAt returns the tile at a board-space cell.
func (s *State) TileAt(c Coordinate) (Tile, bool) {
	idx := s.board.index(c.Row, c.Col)
	if idx == empty {
		return Tile{}, false
	}
	return s.tiles[idx], true
}

// tileAtPlacement returns the tile index at a placement-space cell or empty.
func (s *State) tileAtPlacement(c Coordinate) int {
	return s.board.index(c.Row-1, c.Col-1)
}

// neighbour returns the index of the tile across side of placed tile idx, or empty.
func (s *State) neighbour(idx int, side Side) int {
	dr, dc := side.delta()
	pos := s.positions[idx]
	return s.board.indexAbs(Coordinate{Row: pos.Row + dr, Col: pos.Col + dc})
}

// surrounding counts the occupied cells among the 8 around placed tile idx.
func (s *State) surrounding(idx int) int {
	pos := s.positions[idx]
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if s.board.indexAbs(Coordinate{Row: pos.Row + dr, Col: pos.Col + dc}) != empty {
				count++
			}
		}
	}
	return count
}

// ApplyPlacement puts tile on the placement-space coordinate c, growing the
// board by a row or column when c lies on its border. It returns the
// board-space cell the tile now occupies. A token already set on the tile is
// kept. The caller is responsible for legality; placing on an occupied or
// unreachable cell panics.
func (s *State) ApplyPlacement(c Coordinate, tile Tile) Coordinate {
	if s.remaining <= 0 {
		panic("no tiles left to place")
	}
	idx := len(s.tiles)
	cell, abs := s.board.place(c, idx)
	s.tiles = append(s.tiles, tile)
	s.positions = append(s.positions, abs)
	s.regions.add(s, idx)
	s.remaining--
	return cell
}

// ApplyTokenPlacement puts one of player's tokens on point of tile before the
// tile is placed. It reports false without changes for NoToken or when the
// player has no tokens left.
func (s *State) ApplyTokenPlacement(point, player int, tile *Tile) bool {
	if point == NoToken || s.tokens[player] <= 0 {
		return false
	}
	if point < 0 || point >= NumPoints {
		panic(fmt.Sprintf("invalid token point %d", point))
	}
	s.tokens[player]--
	tile.TokenPoint = point
	tile.TokenOwner = player
	return true
}

// Play applies a complete turn: rotate, claim, place and score.
func (s *State) Play(move Move, tile Tile, point int) {
	tile = tile.Rotated(move.Rotation)
	s.ApplyTokenPlacement(point, s.Mover(), &tile)
	s.ApplyPlacement(move.Coordinate, tile)
	s.TriggerScoring(false)
}

func (s *State) String() string {
	return fmt.Sprintf("state(placed=%d remaining=%d score=%v tokens=%v)", len(s.tiles), s.remaining, s.scores, s.tokens)
}
