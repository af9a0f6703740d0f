package command

import (
	"slices"
	"strconv"
	"strings"

	"github.com/danmuck/relayctl/internal/grid"
)

// Parse turns free text into a Command. Dispatch is by substring containment
// in fixed priority order; the first match wins even when the keyword is
// embedded in another word.
func Parse(text string) Command {
	upper := strings.ToUpper(strings.TrimSpace(text))

	var cmd Command
	switch {
	case strings.Contains(upper, "SET") || strings.Contains(upper, "PUT"):
		cmd = parseSet(upper)
	case strings.Contains(upper, "FILL ROW"):
		cmd = parseFillRow(upper)
	case strings.Contains(upper, "FILL COLUMN") || strings.Contains(upper, "FILL COL"):
		cmd = parseFillColumn(upper)
	case strings.Contains(upper, "REPLACE"):
		cmd = parseReplace(upper)
	case strings.Contains(upper, "CLEAR"):
		cmd = ClearGrid{}
	}
	if cmd == nil {
		return Invalid{Raw: text}
	}
	return cmd
}

// Validate reports whether cmd only references coordinates inside g.
func Validate(cmd Command, g *grid.Grid) bool {
	if g == nil {
		return false
	}
	size := g.Size()
	switch c := cmd.(type) {
	case SetCell:
		return inRange(c.Row, size) && inRange(c.Col, size)
	case FillRow:
		return inRange(c.Row, size)
	case FillColumn:
		return inRange(c.Col, size)
	case ReplaceAll, ClearGrid:
		return true
	default:
		return false
	}
}

func parseSet(upper string) Command {
	if setPos := strings.Index(upper, "SET"); setPos >= 0 {
		openAt := indexFrom(upper, "(", setPos)
		if openAt < 0 {
			return nil
		}
		closeAt := indexFrom(upper, ")", openAt)
		if closeAt < 0 {
			return nil
		}
		eq := indexFrom(upper, "=", closeAt)
		if eq < 0 {
			return nil
		}
		row, col, ok := parseCoordinates(upper[openAt+1 : closeAt])
		if !ok {
			return nil
		}
		return SetCell{Row: row, Col: col, Value: parseValue(upper[eq+1:])}
	}

	tokens := strings.Fields(upper)
	if len(tokens) < 3 {
		return nil
	}
	row, col, ok := parseCoordinates(tokens[1])
	if !ok {
		return nil
	}
	return SetCell{Row: row, Col: col, Value: parseValue(tokens[2])}
}

func parseFillRow(upper string) Command {
	index, value, ok := parseFill(strings.Fields(upper), "ROW")
	if !ok {
		return nil
	}
	return FillRow{Row: index, Value: value}
}

func parseFillColumn(upper string) Command {
	tokens := strings.Fields(upper)
	axis := "COLUMN"
	if !slices.Contains(tokens, axis) {
		axis = "COL"
	}
	index, value, ok := parseFill(tokens, axis)
	if !ok {
		return nil
	}
	return FillColumn{Col: index, Value: value}
}

// parseFill reads "<axis> <n> ... WITH <v>" from tokens.
func parseFill(tokens []string, axis string) (int, byte, bool) {
	if len(tokens) < 5 {
		return 0, 0, false
	}
	axisAt := slices.Index(tokens, axis)
	withAt := slices.Index(tokens, "WITH")
	if axisAt < 0 || withAt <= axisAt || withAt+1 >= len(tokens) {
		return 0, 0, false
	}
	n, err := strconv.Atoi(tokens[axisAt+1])
	if err != nil {
		return 0, 0, false
	}
	return n - 1, parseValue(tokens[withAt+1]), true
}

// parseReplace needs at least six tokens, so the bare five-word
// "REPLACE ALL A WITH B" is not enough.
func parseReplace(upper string) Command {
	tokens := strings.Fields(upper)
	if len(tokens) < 6 {
		return nil
	}
	allAt := slices.Index(tokens, "ALL")
	withAt := slices.Index(tokens, "WITH")
	if allAt < 0 || withAt <= allAt || withAt+1 >= len(tokens) {
		return nil
	}
	return ReplaceAll{Old: parseValue(tokens[allAt+1]), New: parseValue(tokens[withAt+1])}
}

// parseCoordinates reads a 1-based "row,col" pair and returns 0-based values.
func parseCoordinates(raw string) (int, int, bool) {
	clean := strings.ReplaceAll(raw, " ", "")
	left, right, found := strings.Cut(clean, ",")
	if !found {
		return 0, 0, false
	}
	row, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, false
	}
	col, err := strconv.Atoi(right)
	if err != nil {
		return 0, 0, false
	}
	return row - 1, col - 1, true
}

// parseValue maps the first byte of raw onto the grid alphabet. A blank
// first byte counts as no value.
func parseValue(raw string) byte {
	if raw == "" {
		return grid.Empty
	}
	v := raw[0]
	switch {
	case v >= 'a' && v <= 'z':
		return v - 'a' + 'A'
	case v >= 'A' && v <= 'Z', v >= '0' && v <= '9', v == grid.Empty:
		return v
	default:
		return grid.Empty
	}
}

func indexFrom(s, sub string, from int) int {
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

func inRange(i, size int) bool {
	return i >= 0 && i < size
}
