package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Empty marks an unset cell.
	Empty byte = '_'
	// Mismatch marks a differing cell in Difference output.
	Mismatch byte = 'X'
)

var (
	ErrNotSquare     = errors.New("grid: not square")
	ErrInvalidSymbol = errors.New("grid: invalid symbol")
)

// Grid is a square matrix of single-byte symbols.
type Grid struct {
	size  int
	cells [][]byte
}

// New returns a size x size grid with every cell set to Empty.
// Sizes below 1 are raised to 1.
func New(size int) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{size: size, cells: blankCells(size)}
}

// FromMatrix copies rows into a new grid. Rows must form a non-empty square of
// valid symbols.
func FromMatrix(rows [][]byte) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrNotSquare)
	}
	g := New(n)
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r+1, len(row), n)
		}
		for c, v := range row {
			if !ValidSymbol(v) {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidSymbol, v, r+1, c+1)
			}
			g.cells[r][c] = v
		}
	}
	return g, nil
}

// FromFlatString rebuilds a grid from its row-major flat form. The input
// length must be a positive perfect square.
func FromFlatString(data string) (*Grid, error) {
	side := isqrt(len(data))
	if side == 0 || side*side != len(data) {
		return nil, fmt.Errorf("%w: length %d", ErrNotSquare, len(data))
	}
	g := New(side)
	for i := 0; i < len(data); i++ {
		v := data[i]
		if !ValidSymbol(v) {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, v, i)
		}
		g.cells[i/side][i%side] = v
	}
	return g, nil
}

// ValidSymbol reports whether v belongs to the grid alphabet.
func ValidSymbol(v byte) bool {
	return (v >= 'A' && v <= 'Z') || (v >= '0' && v <= '9') || v == Empty
}

func (g *Grid) Size() int { return g.size }

// Get returns the symbol at (row, col), or Empty when out of range.
func (g *Grid) Get(row, col int) byte {
	if !g.inBounds(row, col) {
		return Empty
	}
	return g.cells[row][col]
}

// Set writes v at (row, col). Out of range writes and symbols outside
// the alphabet are ignored.
func (g *Grid) Set(row, col int, v byte) {
	if !g.inBounds(row, col) || !ValidSymbol(v) {
		return
	}
	g.cells[row][col] = v
}

func (g *Grid) FillRow(row int, v byte) {
	if !g.inBounds(row, 0) || !ValidSymbol(v) {
		return
	}
	for col := range g.cells[row] {
		g.cells[row][col] = v
	}
}

func (g *Grid) FillColumn(col int, v byte) {
	if !g.inBounds(0, col) || !ValidSymbol(v) {
		return
	}
	for row := range g.cells {
		g.cells[row][col] = v
	}
}

// ReplaceAll swaps every occurrence of old for v. A v outside the
// alphabet leaves the grid unchanged.
func (g *Grid) ReplaceAll(old, v byte) {
	if !ValidSymbol(v) {
		return
	}
	for _, row := range g.cells {
		for col, cell := range row {
			if cell == old {
				row[col] = v
			}
		}
	}
}

func (g *Grid) Clear() {
	g.cells = blankCells(g.size)
}

// Rotate90 rotates the grid clockwise.
func (g *Grid) Rotate90() {
	next := blankCells(g.size)
	for r, row := range g.cells {
		for c, v := range row {
			next[c][g.size-1-r] = v
		}
	}
	g.cells = next
}

// FlipHorizontal mirrors each row left to right.
func (g *Grid) FlipHorizontal() {
	next := blankCells(g.size)
	for r, row := range g.cells {
		for c, v := range row {
			next[r][g.size-1-c] = v
		}
	}
	g.cells = next
}

// FlipVertical mirrors the rows top to bottom.
func (g *Grid) FlipVertical() {
	next := blankCells(g.size)
	for r, row := range g.cells {
		copy(next[g.size-1-r], row)
	}
	g.cells = next
}

// Clone returns an independent snapshot.
func (g *Grid) Clone() *Grid {
	out := New(g.size)
	for r, row := range g.cells {
		copy(out.cells[r], row)
	}
	return out
}

// Rows returns a copy of the cell matrix.
func (g *Grid) Rows() [][]byte {
	return g.Clone().cells
}

// FlatString returns all cells in row-major order.
func (g *Grid) FlatString() string {
	var b strings.Builder
	b.Grow(g.size * g.size)
	for _, row := range g.cells {
		b.Write(row)
	}
	return b.String()
}

// String renders one line per row with space separated symbols.
func (g *Grid) String() string {
	lines := make([]string, 0, g.size)
	for _, row := range g.cells {
		syms := make([]string, len(row))
		for i, v := range row {
			syms[i] = string(v)
		}
		lines = append(lines, strings.Join(syms, " "))
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

func blankCells(size int) [][]byte {
	cells := make([][]byte, size)
	for r := range cells {
		row := make([]byte, size)
		for c := range row {
			row[c] = Empty
		}
		cells[r] = row
	}
	return cells
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := 0
	for (x+1)*(x+1) <= n {
		x++
	}
	return x
}
