package builder

import (
	"fmt"
	"strings"

	"github.com/danmuck/relayctl/internal/command"
	"github.com/danmuck/relayctl/internal/grid"
)

// Builder reconstructs a grid from instructions it cannot verify.
type Builder struct {
	grid     *grid.Grid
	applied  []command.Command
	received []string
	log      []string
	lastErr  error
}

func New(size int) *Builder {
	return &Builder{grid: grid.New(size)}
}

// Execute parses and applies one instruction. On failure the grid is left
// untouched and the error wraps ErrUnrecognized or ErrOutOfBounds.
func (b *Builder) Execute(text string) error {
	b.received = append(b.received, text)
	return b.Apply(command.Parse(text))
}

// Apply validates and applies an already parsed command.
func (b *Builder) Apply(cmd command.Command) error {
	b.lastErr = nil
	if cmd.Kind() == command.KindInvalid {
		return b.fail(fmt.Errorf("%w: %q", ErrUnrecognized, cmd.String()))
	}
	if !command.Validate(cmd, b.grid) {
		return b.fail(fmt.Errorf("%w: %s", ErrOutOfBounds, cmd))
	}
	b.apply(cmd)
	b.applied = append(b.applied, cmd)
	b.log = append(b.log, cmd.String())
	return nil
}

// Undo reverts the last applied command by replaying the ones before it.
func (b *Builder) Undo() error {
	if len(b.applied) == 0 {
		return b.fail(ErrNothingToUndo)
	}
	b.applied = b.applied[:len(b.applied)-1]
	b.grid.Clear()
	for _, cmd := range b.applied {
		b.apply(cmd)
	}
	b.log = append(b.log, "UNDO last command")
	b.lastErr = nil
	return nil
}

// Reset clears the grid and all bookkeeping.
func (b *Builder) Reset() {
	b.grid.Clear()
	b.applied = nil
	b.received = nil
	b.log = nil
	b.lastErr = nil
}

// Grid returns a copy of the current grid.
func (b *Builder) Grid() *grid.Grid { return b.grid.Clone() }

func (b *Builder) Log() []string { return append([]string(nil), b.log...) }

func (b *Builder) Received() []string { return append([]string(nil), b.received...) }

// Applied returns the commands currently reflected in the grid.
func (b *Builder) Applied() []command.Command {
	return append([]command.Command(nil), b.applied...)
}

// LastError returns the error from the most recent operation, or nil.
func (b *Builder) LastError() error { return b.lastErr }

// Display renders the grid as bracketed rows.
func (b *Builder) Display() string {
	n := b.grid.Size()
	rows := make([]string, n)
	for r := 0; r < n; r++ {
		rows[r] = "[ " + b.rowText(r) + " ]"
	}
	return strings.Join(rows, "\n")
}

func (b *Builder) StateDescription() string {
	n := b.grid.Size()
	rows := make([]string, n)
	for r := 0; r < n; r++ {
		rows[r] = fmt.Sprintf("Row %d: %s", r+1, b.rowText(r))
	}
	return "Current grid state: " + strings.Join(rows, " | ")
}

// Suggestions flags partially filled rows.
func (b *Builder) Suggestions() []string {
	n := b.grid.Size()
	var out []string
	for r := 0; r < n; r++ {
		empty := 0
		for c := 0; c < n; c++ {
			if b.grid.Get(r, c) == grid.Empty {
				empty++
			}
		}
		if empty > 0 && empty < n {
			out = append(out, fmt.Sprintf("Row %d has %d empty cells", r+1, empty))
		}
	}
	if len(out) == 0 {
		out = append(out, "Grid looks consistent. Continue with current strategy.")
	}
	return out
}

// ProbablyWrong reports whether more than a quarter of cells differ from hint.
func (b *Builder) ProbablyWrong(hint *grid.Grid) bool {
	if hint == nil {
		return false
	}
	n := b.grid.Size()
	wrong := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if b.grid.Get(r, c) != hint.Get(r, c) {
				wrong++
			}
		}
	}
	return wrong > n*n/4
}

func (b *Builder) apply(cmd command.Command) {
	switch c := cmd.(type) {
	case command.SetCell:
		b.grid.Set(c.Row, c.Col, c.Value)
	case command.FillRow:
		b.grid.FillRow(c.Row, c.Value)
	case command.FillColumn:
		b.grid.FillColumn(c.Col, c.Value)
	case command.ReplaceAll:
		b.grid.ReplaceAll(c.Old, c.New)
	case command.ClearGrid:
		b.grid.Clear()
	}
}

func (b *Builder) fail(err error) error {
	b.lastErr = err
	b.log = append(b.log, "ERROR: "+err.Error())
	return err
}

func (b *Builder) rowText(r int) string {
	n := b.grid.Size()
	cells := make([]string, n)
	for c := 0; c < n; c++ {
		cells[c] = string(b.grid.Get(r, c))
	}
	return strings.Join(cells, " ")
}
