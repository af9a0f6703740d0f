package command

import "fmt"

// Kind tags the command variant.
type Kind int

const (
	KindInvalid Kind = iota
	KindSetCell
	KindFillRow
	KindFillColumn
	KindReplaceAll
	KindClearGrid
)

func (k Kind) String() string {
	switch k {
	case KindSetCell:
		return "set_cell"
	case KindFillRow:
		return "fill_row"
	case KindFillColumn:
		return "fill_column"
	case KindReplaceAll:
		return "replace_all"
	case KindClearGrid:
		return "clear_grid"
	default:
		return "invalid"
	}
}

// Command is one parsed grid mutation. The set of implementations is closed.
type Command interface {
	Kind() Kind
	String() string
	command()
}

// SetCell writes Value at (Row, Col), 0-based.
type SetCell struct {
	Row   int
	Col   int
	Value byte
}

type FillRow struct {
	Row   int
	Value byte
}

type FillColumn struct {
	Col   int
	Value byte
}

type ReplaceAll struct {
	Old byte
	New byte
}

type ClearGrid struct{}

// Invalid carries the raw text that failed to parse.
type Invalid struct {
	Raw string
}

func (SetCell) Kind() Kind    { return KindSetCell }
func (FillRow) Kind() Kind    { return KindFillRow }
func (FillColumn) Kind() Kind { return KindFillColumn }
func (ReplaceAll) Kind() Kind { return KindReplaceAll }
func (ClearGrid) Kind() Kind  { return KindClearGrid }
func (Invalid) Kind() Kind    { return KindInvalid }

func (c SetCell) String() string {
	return fmt.Sprintf("SET(%d,%d)=%c", c.Row+1, c.Col+1, c.Value)
}

func (c FillRow) String() string {
	return fmt.Sprintf("FILL ROW %d WITH %c", c.Row+1, c.Value)
}

func (c FillColumn) String() string {
	return fmt.Sprintf("FILL COLUMN %d WITH %c", c.Col+1, c.Value)
}

func (c ReplaceAll) String() string {
	return fmt.Sprintf("REPLACE ALL %c CELLS WITH %c", c.Old, c.New)
}

func (ClearGrid) String() string { return "CLEAR" }

func (c Invalid) String() string { return c.Raw }

func (SetCell) command()    {}
func (FillRow) command()    {}
func (FillColumn) command() {}
func (ReplaceAll) command() {}
func (ClearGrid) command()  {}
func (Invalid) command()    {}
