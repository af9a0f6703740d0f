package protocol

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/danmuck/relayctl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func TestEncodeVersions(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name    string
		text    string
		version Version
		want    string
	}{
		{"dispatch", "FILL ROW 1 WITH A", V1, "[DISPATCH] FILL ROW 1 WITH A [END]"},
		{"dispatch empty", "", V1, "[DISPATCH]  [END]"},
		{"compressed", "HELLO WORLD", V2, "[COMP:HLL WRLD]"},
		{"compressed keeps short words", "SET ROW with Column", V2, "[COMP:SET ROW with Clmn]"},
		{"compressed keeps vowel-only words", "aeiou queue", V2, "[COMP:aeiou q]"},
		{"binary", "Ab 9!", V3, "[BIN:1-2-/9-!]"},
		{"unknown", "as is", Version(9), "as is"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Encode(tc.text, tc.version); got != tc.want {
				t.Fatalf("encode %q: got %q want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestDecodeFrames(t *testing.T) {
	testlog.Start(t)
	for _, text := range []string{"FILL ROW 1 WITH A", "SET(2,3)=B"} {
		v, body, err := Decode(Encode(text, V1))
		if err != nil || v != V1 || body != text {
			t.Fatalf("v1 decode of %q: v=%v body=%q err=%v", text, v, body, err)
		}
	}

	v, body, err := Decode(Encode("clear the grid", V3))
	if err != nil || v != V3 || body != "CLEAR THE GRID" {
		t.Fatalf("v3 decode: v=%v body=%q err=%v", v, body, err)
	}

	v, body, err = Decode("[COMP:FLL RW 1 WTH A")
	if err != nil || v != V2 || body != "FLL RW 1 WTH A" {
		t.Fatalf("truncated v2 decode: v=%v body=%q err=%v", v, body, err)
	}

	if _, body, err := Decode("plain words"); !errors.Is(err, ErrUnframed) || body != "plain words" {
		t.Fatalf("expected ErrUnframed with original body, got %q %v", body, err)
	}
}

func TestVersionParsing(t *testing.T) {
	testlog.Start(t)
	for _, raw := range []string{"v1", "V2", " 3 "} {
		if _, err := ParseVersion(raw); err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
	}
	if _, err := ParseVersion("v4"); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	var v Version
	if err := v.UnmarshalText([]byte("v3")); err != nil || v != V3 {
		t.Fatalf("unmarshal text: %v %v", v, err)
	}
	if b, err := V2.MarshalText(); err != nil || string(b) != "v2" {
		t.Fatalf("marshal text: %q %v", b, err)
	}
	if _, err := Version(0).MarshalText(); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected marshal error for zero version")
	}
}

func TestCompressDescription(t *testing.T) {
	testlog.Start(t)
	got := CompressDescription("Row 1: A B. Fill column 2, then row. Arrow stays.")
	want := "r 1: A B. Fill c 2, then r. Arrow stays."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSplitByBandwidth(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name  string
		text  string
		lines int
		width int
		want  []string
	}{
		{"fits", "FILL ROW 1 WITH A", 2, 50, []string{"FILL ROW 1 WITH A"}},
		{"word wrap", "aaa bbb ccc", 5, 7, []string{"aaa bbb", "ccc"}},
		{"space at limit", "abcd efgh", 5, 4, []string{"abcd", "efgh"}},
		{"hard break keeps chars", "abcdefghij", 5, 4, []string{"abcd", "efgh", "ij"}},
		{"newlines", "one\ntwo\n", 5, 10, []string{"one", "two"}},
		{"blank line kept", "one\n\ntwo", 5, 10, []string{"one", "", "two"}},
		{"overflow marker", "l1\nl2\nl3", 2, 10, []string{"l1", "l2..."}},
		{"unlimited lines", "a\nb\nc", 0, 10, []string{"a", "b", "c"}},
		{"no wrapping", "aaaa bbbb", 3, 0, []string{"aaaa bbbb"}},
		{"empty", "", 2, 10, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitByBandwidth(tc.text, tc.lines, tc.width)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("split mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitByBandwidthRespectsLimits(t *testing.T) {
	testlog.Start(t)
	texts := []string{
		strings.Repeat("FILL COLUMN 3 WITH B and then some more words ", 6),
		strings.Repeat("rangée é ligne où ", 8),
	}
	for _, text := range texts {
		for width := 1; width < 40; width += 3 {
			lines := SplitByBandwidth(text, 3, width)
			if len(lines) > 3 {
				t.Fatalf("width %d: %d lines", width, len(lines))
			}
			for i, line := range lines {
				limit := width
				if i == len(lines)-1 {
					limit += len(overflowMarker)
				}
				if utf8.RuneCountInString(line) > limit {
					t.Fatalf("width %d: line %q too long", width, line)
				}
				if !utf8.ValidString(line) {
					t.Fatalf("width %d: line %q is not valid UTF-8", width, line)
				}
			}
		}
	}
}

func TestSplitByBandwidthKeepsRunesWhole(t *testing.T) {
	testlog.Start(t)
	got := SplitByBandwidth("ééééé", 0, 3)
	if diff := cmp.Diff([]string{"ééé", "éé"}, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
	got = SplitByBandwidth("où est la ligne", 0, 6)
	if diff := cmp.Diff([]string{"où est", "la", "ligne"}, got); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}
