package describe

import (
	"fmt"
	"strings"

	"github.com/danmuck/relayctl/internal/command"
	"github.com/danmuck/relayctl/internal/grid"
)

// Describer renders a private copy of the target grid.
type Describer struct {
	target *grid.Grid
	sent   []string
}

func New(target *grid.Grid) *Describer {
	if target == nil {
		target = grid.New(1)
	}
	return &Describer{target: target.Clone()}
}

// Target returns a copy of the grid being described.
func (d *Describer) Target() *grid.Grid { return d.target.Clone() }

// Sent returns every description produced so far, oldest first.
func (d *Describer) Sent() []string {
	return append([]string(nil), d.sent...)
}

// Describe dispatches to the named strategy.
func (d *Describer) Describe(s Strategy) (string, error) {
	switch s {
	case StrategyRows:
		return d.Rows(), nil
	case StrategyColumns:
		return d.Columns(), nil
	case StrategyQuadrants:
		return d.Quadrants(), nil
	case StrategyRLE, StrategyCompressed:
		return d.RLE(), nil
	case StrategyPatterns:
		return d.Patterns(), nil
	case StrategyDetailed:
		return d.Detailed(), nil
	case StrategyScript:
		return d.log(strings.Join(d.Script(), "\n")), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Rows reads the grid row by row: "Grid is 4 by 4. Row 1: A B C D. Row 2: ...".
func (d *Describer) Rows() string {
	return d.log(d.rows())
}

func (d *Describer) rows() string {
	n := d.target.Size()
	parts := make([]string, n)
	for r := 0; r < n; r++ {
		cells := make([]string, n)
		for c := 0; c < n; c++ {
			cells[c] = string(d.target.Get(r, c))
		}
		parts[r] = fmt.Sprintf("Row %d: %s", r+1, strings.Join(cells, " "))
	}
	return fmt.Sprintf("Grid is %d by %d. ", n, n) + strings.Join(parts, ". ")
}

func (d *Describer) Columns() string {
	n := d.target.Size()
	parts := make([]string, n)
	for c := 0; c < n; c++ {
		cells := make([]string, n)
		for r := 0; r < n; r++ {
			cells[r] = string(d.target.Get(r, c))
		}
		parts[c] = fmt.Sprintf("Column %d: %s", c+1, strings.Join(cells, " "))
	}
	return d.log(fmt.Sprintf("Grid is %d by %d. ", n, n) + strings.Join(parts, ". "))
}

// Quadrants lists each quadrant's cells row-major. Odd sizes give the
// extra row and column to the bottom and right quadrants.
func (d *Describer) Quadrants() string {
	n := d.target.Size()
	half := n / 2
	quad := func(label string, r0, r1, c0, c1 int) string {
		var b strings.Builder
		b.WriteString(label)
		b.WriteString(":")
		for r := r0; r < r1; r++ {
			for c := c0; c < c1; c++ {
				b.WriteByte(' ')
				b.WriteByte(d.target.Get(r, c))
			}
		}
		return b.String()
	}
	parts := []string{
		"Grid divided into quadrants.",
		quad("Top-left", 0, half, 0, half),
		quad("Top-right", 0, half, half, n),
		quad("Bottom-left", half, n, 0, half),
		quad("Bottom-right", half, n, half, n),
	}
	return d.log(strings.Join(parts, " "))
}

// RLE run-length encodes each row; rows are separated by '/'.
func (d *Describer) RLE() string {
	return d.log("RLE encoded: " + d.rle())
}

func (d *Describer) rle() string {
	n := d.target.Size()
	rows := make([]string, n)
	for r := 0; r < n; r++ {
		var b strings.Builder
		current, count := d.target.Get(r, 0), 1
		flush := func() {
			b.WriteByte(current)
			if count > 1 {
				fmt.Fprintf(&b, "%d", count)
			}
		}
		for c := 1; c < n; c++ {
			next := d.target.Get(r, c)
			if next == current {
				count++
				continue
			}
			flush()
			current, count = next, 1
		}
		flush()
		rows[r] = b.String()
	}
	return strings.Join(rows, "/")
}

// Patterns reports the detected pattern and counts of A through D.
func (d *Describer) Patterns() string {
	return d.log(d.patterns())
}

func (d *Describer) patterns() string {
	var counts []string
	for sym := byte('A'); sym <= 'D'; sym++ {
		if n := d.target.Count(sym); n > 0 {
			counts = append(counts, fmt.Sprintf("%c:%d", sym, n))
		}
	}
	return fmt.Sprintf("Pattern analysis: %s. Symbol counts: %s", d.target.DetectPattern(), strings.Join(counts, " "))
}

func (d *Describer) Detailed() string {
	return d.log(d.rows() + " " + d.patterns())
}

func (d *Describer) Compressed() string {
	return d.RLE()
}

func (d *Describer) Custom(input string) string {
	return d.log("Custom: " + input)
}

// Script returns command lines that rebuild the target on an empty grid.
func (d *Describer) Script() []string {
	n := d.target.Size()
	lines := []string{command.ClearGrid{}.String()}
	for r := 0; r < n; r++ {
		if d.target.UniformRow(r) {
			if v := d.target.Get(r, 0); v != grid.Empty {
				lines = append(lines, command.FillRow{Row: r, Value: v}.String())
			}
			continue
		}
		for c := 0; c < n; c++ {
			if v := d.target.Get(r, c); v != grid.Empty {
				lines = append(lines, command.SetCell{Row: r, Col: c, Value: v}.String())
			}
		}
	}
	return lines
}

// Hints suggests strategies based on the target's shape.
func (d *Describer) Hints() []string {
	var hints []string
	pattern := d.target.DetectPattern()
	if strings.Contains(pattern, "Full row") {
		hints = append(hints, "Use FILL ROW commands for complete rows")
	}
	if strings.Contains(pattern, "Full column") {
		hints = append(hints, "Use FILL COLUMN commands for complete columns")
	}
	n := d.target.Size()
	many := n * n * 3 / 8
	for sym := byte('A'); sym <= 'D'; sym++ {
		if d.target.Count(sym) > many {
			hints = append(hints, fmt.Sprintf("Many %c symbols - consider using REPLACE if needed", sym))
		}
	}
	if len(hints) == 0 {
		hints = append(hints,
			"Describe rows one by one for maximum clarity",
			"Use SET commands for individual cell corrections",
		)
	}
	return hints
}

// Effectiveness scores a strategy name in [0, 1] by keyword, with a bonus
// when it matches a full row or column in the target.
func (d *Describer) Effectiveness(strategy string) float64 {
	s := strings.ToLower(strategy)
	score := 0.0
	weights := []struct {
		key    string
		weight float64
	}{
		{"row", 0.3},
		{"pattern", 0.4},
		{"rle", 0.5},
		{"quadrant", 0.2},
		{"column", 0.1},
	}
	for _, w := range weights {
		if strings.Contains(s, w.key) {
			score += w.weight
		}
	}
	pattern := d.target.DetectPattern()
	if strings.Contains(pattern, "Full row") && strings.Contains(s, "row") {
		score += 0.3
	}
	if strings.Contains(pattern, "Full column") && strings.Contains(s, "column") {
		score += 0.3
	}
	return min(1.0, score)
}

func (d *Describer) log(msg string) string {
	d.sent = append(d.sent, msg)
	return msg
}
