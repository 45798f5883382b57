package game

import "fmt"

const empty = -1

// Coordinate addresses a cell. Depending on context it is either in board space
// (0..rows-1, 0..cols-1) or in placement space, which is the board enlarged by
// one row and column on every side: placement (r, c) is board (r-1, c-1).
type Coordinate struct {
	Row int
	Col int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Board is a dense rectangular grid of indices into State.tiles. Rows always
// have equal length; growth inserts whole rows or columns.
type Board struct {
	top, left  int // absolute position of board cell (0, 0)
	rows, cols int
	cells      []int
}

func newBoard() Board {
	return Board{rows: 1, cols: 1, cells: []int{empty}}
}

func (b Board) Dimensions() (rows, cols int) {
	return b.rows, b.cols
}

func (b Board) copy() Board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	b.cells = cells
	return b
}

// index returns the tile index at a board-space cell or empty.
func (b Board) index(row, col int) int {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return empty
	}
	return b.cells[row*b.cols+col]
}

// indexAbs returns the tile index at an absolute position or empty.
func (b Board) indexAbs(abs Coordinate) int {
	return b.index(abs.Row-b.top, abs.Col-b.left)
}

// place puts tile index idx at placement-space coordinate at, growing the grid
// when the coordinate lies on the enlarged border. It returns the board-space
// cell and the absolute position of the placed tile.
func (b *Board) place(at Coordinate, idx int) (Coordinate, Coordinate) {
	row, col := at.Row-1, at.Col-1
	if row < -1 || row > b.rows || col < -1 || col > b.cols {
		panic(fmt.Sprintf("placement %v outside board %dx%d", at, b.rows, b.cols))
	}
	if row == -1 {
		b.insertRow(0)
		b.top--
		row = 0
	} else if row == b.rows {
		b.insertRow(b.rows)
	}
	if col == -1 {
		b.insertCol(0)
		b.left--
		col = 0
	} else if col == b.cols {
		b.insertCol(b.cols)
	}
	if b.cells[row*b.cols+col] != empty {
		panic(fmt.Sprintf("cell %v already occupied", at))
	}
	b.cells[row*b.cols+col] = idx
	return Coordinate{Row: row, Col: col}, Coordinate{Row: b.top + row, Col: b.left + col}
}

func (b *Board) insertRow(at int) {
	cells := make([]int, 0, (b.rows+1)*b.cols)
	cells = append(cells, b.cells[:at*b.cols]...)
	for i := 0; i < b.cols; i++ {
		cells = append(cells, empty)
	}
	cells = append(cells, b.cells[at*b.cols:]...)
	b.cells = cells
	b.rows++
}

func (b *Board) insertCol(at int) {
	cells := make([]int, 0, b.rows*(b.cols+1))
	for row := 0; row < b.rows; row++ {
		line := b.cells[row*b.cols : (row+1)*b.cols]
		cells = append(cells, line[:at]...)
		cells = append(cells, empty)
		cells = append(cells, line[at:]...)
	}
	b.cells = cells
	b.cols++
}
