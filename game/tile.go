package game

import "fmt"

// Feature is the terrain code of a tile point.
type Feature uint8

const (
	Field Feature = iota
	City
	Road
	Junction // middle only
	Cloister // middle only
)

func (f Feature) String() string {
	switch f {
	case Field:
		return "field"
	case City:
		return "city"
	case Road:
		return "road"
	case Junction:
		return "junction"
	case Cloister:
		return "cloister"
	default:
		return fmt.Sprintf("feature(%d)", uint8(f))
	}
}

// Side of a tile. Side s owns edge points 3s, 3s+1 and 3s+2.
type Side int

const (
	South Side = iota
	East
	North
	West
)

const NumSides = 4

func (s Side) Opposite() Side {
	return (s + 2) % NumSides
}

// delta returns the row and column offset of the neighbouring cell across s.
func (s Side) delta() (int, int) {
	switch s {
	case South:
		return 1, 0
	case East:
		return 0, 1
	case North:
		return -1, 0
	case West:
		return 0, -1
	default:
		panic(fmt.Sprintf("invalid side %d", s))
	}
}

const (
	NumEdgePoints = 12
	Middle        = 12 // point id of the tile centre
	NumPoints     = 13
	NoToken       = -1 // token point meaning "no token placed"
	NoPlayer      = -1
)

// sideOf returns the side an edge point lies on.
func sideOf(point int) Side {
	return Side(point / 3)
}

// oppositePoint returns the point that touches the given edge point on the neighbouring tile.
func oppositePoint(point int) int {
	switch point {
	case 0, 1, 2:
		return 8 - point
	case 3, 4, 5:
		return 14 - point
	case 6, 7, 8:
		return 8 - point
	case 9, 10, 11:
		return 14 - point
	default:
		return -1
	}
}

// Tile is a value type: copying a Tile yields an independent tile.
type Tile struct {
	Archetype  int
	Pennant    bool
	Rotation   int
	Points     [NumEdgePoints]Feature
	Centre     Feature
	TokenPoint int
	TokenOwner int
}

// NewTile instantiates an unrotated tile of the given archetype.
func NewTile(archetype int, pennant bool) Tile {
	if archetype < 0 || archetype >= NumArchetypes {
		panic(fmt.Sprintf("unknown tile archetype %d", archetype))
	}
	a := Catalog[archetype]
	return Tile{
		Archetype:  archetype,
		Pennant:    pennant,
		Points:     a.Points,
		Centre:     a.Centre,
		TokenPoint: NoToken,
		TokenOwner: NoPlayer,
	}
}

// Point returns the feature at a point id, including the middle.
func (t Tile) Point(point int) Feature {
	if point == Middle {
		return t.Centre
	}
	return t.Points[point]
}

// Edge returns the feature code of a side, read at its centre point.
func (t Tile) Edge(s Side) Feature {
	return t.Points[3*int(s)+1]
}

func (t Tile) HasToken() bool {
	return t.TokenPoint != NoToken
}

// Rotate turns the tile 90 degrees counter-clockwise.
func (t *Tile) Rotate() {
	var points [NumEdgePoints]Feature
	for p, f := range t.Points {
		points[(p+3)%NumEdgePoints] = f
	}
	t.Points = points
	t.Rotation = (t.Rotation + 1) % NumSides
	if t.TokenPoint != NoToken && t.TokenPoint != Middle {
		t.TokenPoint = (t.TokenPoint + 3) % NumEdgePoints
	}
}

// Rotated returns a copy of the tile turned n times.
func (t Tile) Rotated(n int) Tile {
	for i := 0; i < ((n%NumSides)+NumSides)%NumSides; i++ {
		t.Rotate()
	}
	return t
}

// groups labels every point with the id of the feature segment it belongs to
// within this tile. Points sharing a label are connected.
func (t Tile) groups() [NumPoints]int {
	var label [NumPoints]int
	next := 1
	for p := 1; p < NumEdgePoints; p++ {
		if t.Points[p] == t.Points[p-1] {
			label[p] = label[p-1]
		} else {
			label[p] = next
			next++
		}
	}
	// Wrap around: the last segment continues the first.
	if t.Points[NumEdgePoints-1] == t.Points[0] && label[NumEdgePoints-1] != 0 {
		relabel(&label, label[NumEdgePoints-1], 0)
	}

	label[Middle] = next
	switch t.Centre {
	case Field, City, Road:
		joined := -1
		for p := 0; p < NumEdgePoints; p++ {
			if t.Points[p] != t.Centre {
				continue
			}
			if joined == -1 {
				joined = label[p]
			} else if label[p] != joined {
				relabel(&label, label[p], joined)
			}
		}
		if joined != -1 {
			label[Middle] = joined
		}
	}

	if t.Archetype == roadBendArchetype {
		joined := -1
		for s := 0; s < NumSides; s++ {
			p := 3*s + 1
			if t.Points[p] != Road {
				continue
			}
			if joined == -1 {
				joined = label[p]
			} else {
				relabel(&label, label[p], joined)
			}
		}
	}
	return label
}

func relabel(label *[NumPoints]int, from, to int) {
	for i := range label {
		if label[i] == from {
			label[i] = to
		}
	}
}

func (t Tile) String() string {
	token := ""
	if t.HasToken() {
		token = fmt.Sprintf(" token=%d@%d", t.TokenOwner, t.TokenPoint)
	}
	return fmt.Sprintf("tile(%d r%d%s)", t.Archetype, t.Rotation, token)
}
