package noise

import "slices"

const (
	typoDelete = iota
	typoDuplicate
	typoSubstitute
	typoTranspose
	typoKinds
)

var adjacentKeys = map[rune]rune{
	'a': 's', 's': 'a', 'd': 'f', 'f': 'd',
	'A': 'S', 'S': 'A', 'D': 'F', 'F': 'D',
}

// Typo applies one random keyboard slip to word. Words of two characters
// or fewer are returned unchanged.
func (e *Engine) Typo(word string) string {
	r := []rune(word)
	if len(r) <= 2 {
		return word
	}
	switch e.src.IntN(typoKinds) {
	case typoDelete:
		pos := e.src.IntN(len(r))
		r = slices.Delete(r, pos, pos+1)
	case typoDuplicate:
		if len(r) < maxDuplicateLen {
			pos := e.src.IntN(len(r))
			r = slices.Insert(r, pos, r[pos])
		}
	case typoSubstitute:
		pos := e.src.IntN(len(r))
		if sub, ok := adjacentKeys[r[pos]]; ok {
			r[pos] = sub
		}
	case typoTranspose:
		pos := e.src.IntN(len(r) - 1)
		r[pos], r[pos+1] = r[pos+1], r[pos]
	}
	return string(r)
}
