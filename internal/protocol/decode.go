package protocol

import (
	"strconv"
	"strings"
)

// Decode strips the envelope from a received frame and reports its version.
// Missing closing markers are tolerated because truncation may eat them.
// Binary frames decode letters back in upper case; a lone digit token is
// read as a letter position, so digits do not survive V3.
func Decode(frame string) (Version, string, error) {
	s := strings.TrimSpace(frame)
	switch {
	case strings.HasPrefix(s, strings.TrimSpace(dispatchOpen)):
		body := strings.TrimPrefix(s, strings.TrimSpace(dispatchOpen))
		body = strings.TrimSuffix(body, strings.TrimSpace(dispatchClose))
		return V1, strings.TrimSpace(body), nil
	case strings.HasPrefix(s, compOpen):
		body := strings.TrimSuffix(strings.TrimPrefix(s, compOpen), frameClose)
		return V2, body, nil
	case strings.HasPrefix(s, binOpen):
		body := strings.TrimSuffix(strings.TrimPrefix(s, binOpen), frameClose)
		return V3, unspell(body), nil
	default:
		return 0, frame, ErrUnframed
	}
}

func unspell(body string) string {
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c == '/' {
			b.WriteByte(' ')
			i++
			continue
		}
		if c < '0' || c > '9' {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(body) && body[j] >= '0' && body[j] <= '9' {
			j++
		}
		if j >= len(body) || body[j] != '-' {
			b.WriteString(body[i:j])
			i = j
			continue
		}
		n, _ := strconv.Atoi(body[i:j])
		switch {
		case n >= 1 && n <= 26:
			b.WriteByte(byte('A' + n - 1))
		default:
			b.WriteString(body[i:j])
		}
		i = j + 1
	}
	return b.String()
}
