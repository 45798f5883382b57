package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// playRandomTurns advances s by n random legal turns drawn from deck.
func playRandomTurns(t *testing.T, s *State, deck *Deck, rng *rand.Rand, n int) {
	t.Helper()
	for i := 0; i < n && len(*deck) > 0; i++ {
		tile := deck.Draw()
		moves := EnumeratePlacements(s, tile)
		if len(moves) == 0 {
			deck.PutBack(tile)
			continue
		}
		move := moves[rng.Intn(len(moves))]
		point := NoToken
		points := EnumerateTokenPlacements(s, tile.Rotated(move.Rotation), move.Coordinate)
		if len(points) > 0 && rng.Float64() < 0.5 {
			point = points[rng.Intn(len(points))]
		}
		s.Play(move, tile, point)
	}
}

func TestEnumeratePlacements(t *testing.T) {
	t.Run("single legal placement against a lone road edge", func(t *testing.T) {
		start := NewTile(11, false).Rotated(3) // cloister, road leaving west
		s := NewStateWithStart(start, 5)
		drawn := NewTile(16, false).Rotated(3) // city on three sides, road on the west

		moves := EnumeratePlacements(s, drawn)

		expected := []Move{{Coordinate: Coordinate{Row: 1, Col: 0}, Rotation: 2}}
		if diff := cmp.Diff(expected, moves); diff != "" {
			t.Fatalf("unexpected placements (-want +got):\n%s", diff)
		}
	})

	t.Run("placed cell holds the rotated tile", func(t *testing.T) {
		start := NewTile(11, false).Rotated(3)
		s := NewStateWithStart(start, 5)
		drawn := NewTile(16, false).Rotated(3)
		move := EnumeratePlacements(s, drawn)[0]

		cell := s.ApplyPlacement(move.Coordinate, drawn.Rotated(move.Rotation))
		got, ok := s.TileAt(cell)

		require.True(t, ok, "Placed cell should hold a tile")
		require.Equal(t, drawn.Rotated(move.Rotation), got)
		require.Equal(t, Road, got.Edge(East), "Road should face the starting tile")
		require.Equal(t, Coordinate{Row: 0, Col: 0}, cell, "Growing west should shift the origin")
		origin, _ := s.TileAt(Coordinate{Row: 0, Col: 1})
		require.Equal(t, start, origin)
	})

	t.Run("order is row major then rotation", func(t *testing.T) {
		s := NewState()
		moves := EnumeratePlacements(s, NewTile(8, false))

		for i := 1; i < len(moves); i++ {
			prev, cur := moves[i-1], moves[i]
			before := prev.Row < cur.Row ||
				(prev.Row == cur.Row && prev.Col < cur.Col) ||
				(prev.Coordinate == cur.Coordinate && prev.Rotation < cur.Rotation)
			require.True(t, before, "move %v should come before %v", prev, cur)
		}
	})

	t.Run("corners of the enlarged board are never legal", func(t *testing.T) {
		s := NewState()
		rows, cols := s.Dimensions()
		for _, move := range EnumeratePlacements(s, NewTile(12, false)) {
			corner := (move.Row == 0 || move.Row == rows+1) && (move.Col == 0 || move.Col == cols+1)
			require.False(t, corner, "move %v is on a corner", move)
		}
	})

	t.Run("every placement matches all existing neighbours", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		s := NewState()
		deck := NewDeck(rng)
		playRandomTurns(t, s, &deck, rng, 25)

		for _, tile := range deck[:10] {
			for _, move := range EnumeratePlacements(s, tile) {
				rotated := tile.Rotated(move.Rotation)
				connected := 0
				for side := Side(0); side < NumSides; side++ {
					dr, dc := side.delta()
					nb, ok := s.TileAt(Coordinate{Row: move.Row - 1 + dr, Col: move.Col - 1 + dc})
					if !ok {
						continue
					}
					connected++
					require.Equal(t, nb.Edge(side.Opposite()), rotated.Edge(side),
						"move %v side %d should match its neighbour", move, side)
				}
				require.Positive(t, connected, "move %v should touch a tile", move)
				_, occupied := s.TileAt(Coordinate{Row: move.Row - 1, Col: move.Col - 1})
				require.False(t, occupied, "move %v targets an occupied cell", move)
			}
		}
	})
}

func TestEnumerateTokenPlacements(t *testing.T) {
	t.Run("claimed road is excluded", func(t *testing.T) {
		s := NewState()
		road := NewTile(7, false)
		s.Play(Move{Coordinate: Coordinate{Row: 1, Col: 2}}, road, 4)

		points := EnumerateTokenPlacements(s, NewTile(7, false), Coordinate{Row: 1, Col: 3})

		require.Equal(t, []int{0, 1, 2, 3, 5, 6, 7, 8, 9, 11}, points,
			"Road points should be excluded because the road is claimed")
	})

	t.Run("junction middle is never offered", func(t *testing.T) {
		s := NewState()
		tile := NewTile(3, false).Rotated(2) // city south, facing the starting city
		at := Coordinate{Row: 0, Col: 1}
		require.Contains(t, EnumeratePlacements(s, NewTile(3, false)), Move{Coordinate: at, Rotation: 2})

		points := EnumerateTokenPlacements(s, tile, at)

		require.NotContains(t, points, Middle)
		require.NotEmpty(t, points)
	})

	t.Run("no tokens left means no points", func(t *testing.T) {
		s := NewState()
		s.tokens[s.Mover()] = 0

		points := EnumerateTokenPlacements(s, NewTile(7, false), Coordinate{Row: 1, Col: 2})

		require.Empty(t, points)
	})

	t.Run("enumeration does not change the state", func(t *testing.T) {
		s := NewState()
		before := s.Copy()

		EnumerateTokenPlacements(s, NewTile(7, false), Coordinate{Row: 1, Col: 2})

		require.Equal(t, before, s)
	})
}
