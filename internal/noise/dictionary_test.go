package noise

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/relayctl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
)

func TestDefaultDictionaries(t *testing.T) {
	testlog.Start(t)
	d := DefaultDictionaries()
	for _, word := range []string{"A", "b", "Row", "column", "FILL", "set", "REPLACE", "all", "first", "fourth", "with"} {
		if v, ok := d.LookupMisheard(word); !ok || len(v) == 0 {
			t.Fatalf("missing misheard entry for %q", word)
		}
	}
	want := []string{"COLUMN", "GRID", "PATTERN", "ROW", "SYMBOL"}
	if diff := cmp.Diff(want, d.TechnicalTerms()); diff != "" {
		t.Fatalf("technical terms mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDictionariesNormalizesKeys(t *testing.T) {
	testlog.Start(t)
	d, err := LoadDictionaries(strings.NewReader(`
[misheard]
hello = ["yellow", "jello"]

[technical]
vector = ["arrow"]
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v, ok := d.LookupMisheard("HeLLo"); !ok || v[1] != "jello" {
		t.Fatalf("unexpected lookup: %v %v", v, ok)
	}
	if _, ok := d.LookupTechnical("vector"); !ok {
		t.Fatalf("expected technical entry")
	}
}

func TestLoadDictionariesRejectsBadInput(t *testing.T) {
	testlog.Start(t)
	inputs := []string{
		"[misheard]\nhello = []\n",
		"[misheard\n",
		"[technical]\n\"  \" = [\"x\"]\n",
	}
	for _, in := range inputs {
		if _, err := LoadDictionaries(strings.NewReader(in)); !errors.Is(err, ErrDictionary) {
			t.Fatalf("%q: expected ErrDictionary, got %v", in, err)
		}
	}
}

func TestLoadDictionariesFile(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "dict.toml")
	if err := os.WriteFile(path, []byte("[misheard]\nA = [\"Z\"]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := LoadDictionariesFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	e := New(&scripted{floats: []float64{0, 0.9}}, WithDictionaries(d), WithProfile(Profile{Misinterpret: 1}))
	if got := e.ApplyNoise("a"); got != "Z" {
		t.Fatalf("custom dictionary not used: %q", got)
	}
	if _, err := LoadDictionariesFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
