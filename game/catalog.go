package game

import (
	"golang.org/x/exp/rand"
)

// Archetype describes one of the fixed tile designs and how many copies the deck holds.
type Archetype struct {
	Points  [NumEdgePoints]Feature
	Centre  Feature
	Plain   int // copies without a pennant
	Pennant int // copies with a pennant
}

const (
	NumArchetypes      = 19
	StartArchetype     = 0
	TotalTiles         = 72 // drawable tiles plus the starting tile
	roadBendArchetype  = 15
	startingTileCopies = 1
)

const (
	ff = Field
	cc = City
	rr = Road
)

// Catalog lists the standard tile designs in archetype order. The starting tile
// is an extra copy of StartArchetype and is not counted in Plain.
var Catalog = [NumArchetypes]Archetype{
	{Points: [12]Feature{ff, ff, ff, ff, rr, ff, cc, cc, cc, ff, rr, ff}, Centre: Road, Plain: 3},
	{Points: [12]Feature{ff, rr, ff, ff, ff, ff, cc, cc, cc, ff, rr, ff}, Centre: Road, Plain: 3},
	{Points: [12]Feature{ff, rr, ff, ff, rr, ff, cc, cc, cc, ff, ff, ff}, Centre: Road, Plain: 3},
	{Points: [12]Feature{ff, rr, ff, ff, rr, ff, cc, cc, cc, ff, rr, ff}, Centre: Junction, Plain: 3},
	{Points: [12]Feature{ff, ff, ff, ff, ff, ff, cc, cc, cc, ff, ff, ff}, Centre: Field, Plain: 5},
	{Points: [12]Feature{cc, cc, cc, ff, ff, ff, cc, cc, cc, ff, ff, ff}, Centre: Field, Plain: 3},
	{Points: [12]Feature{ff, ff, ff, ff, ff, ff, cc, cc, cc, cc, cc, cc}, Centre: Field, Plain: 2},
	{Points: [12]Feature{ff, ff, ff, ff, rr, ff, ff, ff, ff, ff, rr, ff}, Centre: Road, Plain: 8},
	{Points: [12]Feature{ff, rr, ff, ff, ff, ff, ff, ff, ff, ff, rr, ff}, Centre: Road, Plain: 9},
	{Points: [12]Feature{ff, rr, ff, ff, rr, ff, ff, ff, ff, ff, rr, ff}, Centre: Junction, Plain: 4},
	{Points: [12]Feature{ff, rr, ff, ff, rr, ff, ff, rr, ff, ff, rr, ff}, Centre: Junction, Plain: 1},
	{Points: [12]Feature{ff, rr, ff, ff, ff, ff, ff, ff, ff, ff, ff, ff}, Centre: Cloister, Plain: 2},
	{Points: [12]Feature{ff, ff, ff, ff, ff, ff, ff, ff, ff, ff, ff, ff}, Centre: Cloister, Plain: 4},
	{Points: [12]Feature{ff, ff, ff, cc, cc, cc, ff, ff, ff, cc, cc, cc}, Centre: City, Plain: 1, Pennant: 2},
	{Points: [12]Feature{ff, ff, ff, ff, ff, ff, cc, cc, cc, cc, cc, cc}, Centre: City, Plain: 3, Pennant: 2},
	{Points: [12]Feature{ff, rr, ff, ff, rr, ff, cc, cc, cc, cc, cc, cc}, Centre: City, Plain: 3, Pennant: 2},
	{Points: [12]Feature{ff, rr, ff, cc, cc, cc, cc, cc, cc, cc, cc, cc}, Centre: City, Plain: 1, Pennant: 2},
	{Points: [12]Feature{ff, ff, ff, cc, cc, cc, cc, cc, cc, cc, cc, cc}, Centre: City, Plain: 3, Pennant: 1},
	{Points: [12]Feature{cc, cc, cc, cc, cc, cc, cc, cc, cc, cc, cc, cc}, Centre: City, Pennant: 1},
}

// Deck is an ordered draw pile; index 0 is drawn next.
type Deck []Tile

// NewDeck assembles every drawable tile of the catalog and shuffles it.
func NewDeck(rng *rand.Rand) Deck {
	deck := make(Deck, 0, TotalTiles-startingTileCopies)
	for a, arch := range Catalog {
		for i := 0; i < arch.Plain; i++ {
			deck = append(deck, NewTile(a, false))
		}
		for i := 0; i < arch.Pennant; i++ {
			deck = append(deck, NewTile(a, true))
		}
	}
	deck.Shuffle(rng)
	return deck
}

func (d Deck) Copy() Deck {
	deck := make(Deck, len(d))
	copy(deck, d)
	return deck
}

func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw removes and returns the front tile. It panics on an empty deck.
func (d *Deck) Draw() Tile {
	if len(*d) == 0 {
		panic("draw from empty deck")
	}
	tile := (*d)[0]
	*d = (*d)[1:]
	return tile
}

// PutBack returns a drawn tile to the back of the deck.
func (d *Deck) PutBack(tile Tile) {
	*d = append(*d, tile)
}

// RemoveAt deletes the tile at index i while keeping the order of the rest.
func (d *Deck) RemoveAt(i int) Tile {
	tile := (*d)[i]
	*d = append((*d)[:i:i], (*d)[i+1:]...)
	return tile
}

// RemoveArchetype deletes the first tile of the given archetype. It reports
// whether such a tile was present.
func (d *Deck) RemoveArchetype(archetype int) bool {
	for i, tile := range *d {
		if tile.Archetype == archetype {
			d.RemoveAt(i)
			return true
		}
	}
	return false
}

// Archetypes returns the distinct archetypes in the deck, in order of first appearance,
// together with the first tile of each.
func (d Deck) Archetypes() []Tile {
	var seen [NumArchetypes]bool
	var tiles []Tile
	for _, tile := range d {
		if seen[tile.Archetype] {
			continue
		}
		seen[tile.Archetype] = true
		tiles = append(tiles, tile)
	}
	return tiles
}
