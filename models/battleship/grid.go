package battleship

import (
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-duel/internal/error"
)

const (
	GridWidth  int = 8
	GridHeight int = 8

	// Number of ship cells each client has to destroy before
	// it knows it has won. Both players are expected to place
	// exactly this many ship cells.
	ShipCellsToDestroy int = 8

	// Coordinates travel as a single byte each
	maxGridSide int = 256
)

// Cell values are the bytes that travel on the wire and are
// stored in layout files.
type Cell byte

const (
	CellEmpty  Cell = '.'
	CellShip   Cell = 'X'
	CellSplash Cell = 'o'
	CellHit    Cell = '*'
)

func (c Cell) String() string {
	return string(rune(c))
}

type Move struct {
	X uint8
	Y uint8
}

func NewMove(x, y uint8) Move {
	return Move{X: x, Y: y}
}

// Grid is indexed as cells[x][y].
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// Creates a new grid with every cell set to CellEmpty
func NewGrid(width, height int) (Grid, error) {
	if width <= 0 || height <= 0 || width > maxGridSide || height > maxGridSide {
		return Grid{}, cerr.ErrInvalidGridSize(width, height)
	}

	cells := make([][]Cell, width)
	for x := range cells {
		cells[x] = make([]Cell, height)
		for y := range cells[x] {
			cells[x][y] = CellEmpty
		}
	}

	return Grid{width: width, height: height, cells: cells}, nil
}

// ParseLayout turns a flat fleet layout into a grid. Byte x*height+y
// maps to cell (x, y). A byte equal to CellShip becomes a ship, anything
// else is empty. Missing bytes are empty and extra bytes are ignored;
// no check is made on ship shapes or counts.
func ParseLayout(layout []byte, width, height int) (Grid, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return Grid{}, err
	}

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			i := x*height + y
			if i < len(layout) && Cell(layout[i]) == CellShip {
				grid.cells[x][y] = CellShip
			}
		}
	}
	return grid, nil
}

// Bytes serializes the grid in the same order ParseLayout reads it.
func (g Grid) Bytes() []byte {
	out := make([]byte, 0, g.width*g.height)
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			out = append(out, byte(g.cells[x][y]))
		}
	}
	return out
}

func (g Grid) Width() int {
	return g.width
}

func (g Grid) Height() int {
	return g.height
}

func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return CellEmpty, cerr.ErrXorYOutOfGridBound(x, y)
	}
	return g.cells[x][y], nil
}

func (g Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return cerr.ErrXorYOutOfGridBound(x, y)
	}
	g.cells[x][y] = c
	return nil
}

func (g Grid) Count(c Cell) int {
	var n int
	for x := range g.cells {
		for _, cell := range g.cells[x] {
			if cell == c {
				n++
			}
		}
	}
	return n
}

// String renders the grid with x along the columns and y down the rows.
func (g Grid) String() string {
	var sb strings.Builder

	sb.WriteString("    ")
	for x := 0; x < g.width; x++ {
		sb.WriteString(strconv.Itoa(x))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for y := 0; y < g.height; y++ {
		sb.WriteString(strconv.Itoa(y))
		sb.WriteString(" | ")
		for x := 0; x < g.width; x++ {
			sb.WriteByte(byte(g.cells[x][y]))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
