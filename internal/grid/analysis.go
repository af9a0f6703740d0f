package grid

import "fmt"

// NoPattern is returned by DetectPattern when no uniform line exists.
const NoPattern = "No obvious patterns"

// DetectPattern reports the first fully uniform row, then the first fully
// uniform column, using 1-based indices.
func (g *Grid) DetectPattern() string {
	for r := 0; r < g.size; r++ {
		if g.uniformRow(r) {
			return fmt.Sprintf("Full row %d of %c", r+1, g.cells[r][0])
		}
	}
	for c := 0; c < g.size; c++ {
		if g.uniformColumn(c) {
			return fmt.Sprintf("Full column %d of %c", c+1, g.cells[0][c])
		}
	}
	return NoPattern
}

// HasFullRow reports whether any row consists only of sym.
func (g *Grid) HasFullRow(sym byte) bool {
	for r := 0; r < g.size; r++ {
		if g.cells[r][0] == sym && g.uniformRow(r) {
			return true
		}
	}
	return false
}

// HasFullColumn reports whether any column consists only of sym.
func (g *Grid) HasFullColumn(sym byte) bool {
	for c := 0; c < g.size; c++ {
		if g.cells[0][c] == sym && g.uniformColumn(c) {
			return true
		}
	}
	return false
}

// UniformRow reports whether row r holds a single repeated symbol.
func (g *Grid) UniformRow(r int) bool {
	return g.inBounds(r, 0) && g.uniformRow(r)
}

func (g *Grid) Count(sym byte) int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			if v == sym {
				n++
			}
		}
	}
	return n
}

// Equal reports exact cell-wise equality.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size {
		return false
	}
	for r, row := range g.cells {
		for c, v := range row {
			if other.cells[r][c] != v {
				return false
			}
		}
	}
	return true
}

// Difference copies matching cells through and marks the rest with Mismatch.
// The result has the receiver's size; cells of other are read through Get.
func (g *Grid) Difference(other *Grid) *Grid {
	diff := New(g.size)
	for r, row := range g.cells {
		for c, v := range row {
			if other != nil && other.Get(r, c) == v && other.inBounds(r, c) {
				diff.cells[r][c] = v
				continue
			}
			diff.cells[r][c] = Mismatch
		}
	}
	return diff
}

// Accuracy is the percentage of matching cells, or 0 when sizes differ.
func (g *Grid) Accuracy(other *Grid) float64 {
	if other == nil || g.size != other.size {
		return 0
	}
	matches := 0
	for r, row := range g.cells {
		for c, v := range row {
			if other.cells[r][c] == v {
				matches++
			}
		}
	}
	return float64(matches) / float64(g.size*g.size) * 100
}

func (g *Grid) uniformRow(r int) bool {
	first := g.cells[r][0]
	for _, v := range g.cells[r] {
		if v != first {
			return false
		}
	}
	return true
}

func (g *Grid) uniformColumn(c int) bool {
	first := g.cells[0][c]
	for r := 0; r < g.size; r++ {
		if g.cells[r][c] != first {
			return false
		}
	}
	return true
}
