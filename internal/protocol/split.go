package protocol

import "strings"

const overflowMarker = "..."

// SplitByBandwidth breaks text into lines no longer than maxLineLength,
// preferring the last space at or before the limit and hard-breaking
// otherwise. A break at a space consumes that space. When more than
// maxLines lines result, the first maxLines are kept and the last gets
// "..." appended. Non-positive limits disable the matching constraint.
func SplitByBandwidth(text string, maxLines, maxLineLength int) []string {
	if text == "" {
		return nil
	}
	pieces := strings.Split(text, "\n")
	if pieces[len(pieces)-1] == "" {
		pieces = pieces[:len(pieces)-1]
	}

	lines := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		lines = append(lines, wrap(piece, maxLineLength)...)
	}
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += overflowMarker
	}
	return lines
}

// wrap counts width in runes so a break never splits a character.
func wrap(line string, width int) []string {
	r := []rune(line)
	if width <= 0 || len(r) <= width {
		return []string{line}
	}
	var out []string
	for len(r) > width {
		cut := lastSpace(r[:width+1])
		if cut <= 0 {
			out = append(out, string(r[:width]))
			r = r[width:]
			continue
		}
		out = append(out, string(r[:cut]))
		r = r[cut+1:]
	}
	return append(out, string(r))
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}
