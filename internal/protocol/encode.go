package protocol

import (
	"strconv"
	"strings"
)

const compressMinLen = 5

// Encode wraps text in the envelope for version. Unknown versions return
// text unchanged.
func Encode(text string, version Version) string {
	switch version {
	case V1:
		return dispatchOpen + text + dispatchClose
	case V2:
		return compOpen + compress(text) + frameClose
	case V3:
		return binOpen + spell(text) + frameClose
	default:
		return text
	}
}

// compress drops vowels from words longer than four characters. A word
// made only of vowels is kept as is.
func compress(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		if len(w) < compressMinLen {
			continue
		}
		stripped := strings.Map(func(r rune) rune {
			if isVowel(r) {
				return -1
			}
			return r
		}, w)
		if stripped != "" {
			words[i] = stripped
		}
	}
	return strings.Join(words, " ")
}

// spell writes letters as their alphabet position and digits as themselves,
// each followed by '-'. Spaces become '/'.
func spell(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteString(strconv.Itoa(int(r-'a') + 1))
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			b.WriteString(strconv.Itoa(int(r-'A') + 1))
			b.WriteByte('-')
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			b.WriteByte('-')
		case r == ' ':
			b.WriteByte('/')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CompressDescription shortens whole-word "row" and "column" to "r" and "c".
func CompressDescription(text string) string {
	words := strings.Split(text, " ")
	for i, w := range words {
		core := strings.TrimRight(w, ".,:;")
		tail := w[len(core):]
		switch strings.ToLower(core) {
		case "row":
			words[i] = "r" + tail
		case "column":
			words[i] = "c" + tail
		}
	}
	return strings.Join(words, " ")
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}
