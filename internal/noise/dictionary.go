package noise

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed dictionaries.toml
var embeddedDictionaries []byte

// Dictionaries maps upper-case words to ordered substitute variants.
type Dictionaries struct {
	Misheard  map[string][]string `toml:"misheard"`
	Technical map[string][]string `toml:"technical"`
}

var defaultDictionaries = sync.OnceValues(func() (*Dictionaries, error) {
	return LoadDictionaries(bytes.NewReader(embeddedDictionaries))
})

// DefaultDictionaries returns the built-in tables. The result is shared and
// must not be modified.
func DefaultDictionaries() *Dictionaries {
	d, err := defaultDictionaries()
	if err != nil {
		panic(fmt.Sprintf("noise: embedded dictionaries: %v", err))
	}
	return d
}

// LoadDictionaries decodes TOML tables named misheard and technical.
func LoadDictionaries(r io.Reader) (*Dictionaries, error) {
	var raw Dictionaries
	if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionary, err)
	}
	misheard, err := normalizeTable("misheard", raw.Misheard)
	if err != nil {
		return nil, err
	}
	technical, err := normalizeTable("technical", raw.Technical)
	if err != nil {
		return nil, err
	}
	return &Dictionaries{Misheard: misheard, Technical: technical}, nil
}

// LoadDictionariesFile reads dictionaries from a TOML file.
func LoadDictionariesFile(path string) (*Dictionaries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary load failed (%s): %w", path, err)
	}
	defer f.Close()
	d, err := LoadDictionaries(f)
	if err != nil {
		return nil, fmt.Errorf("dictionary parse failed (%s): %w", path, err)
	}
	return d, nil
}

// LookupMisheard returns the misheard variants for word, ignoring case.
func (d *Dictionaries) LookupMisheard(word string) ([]string, bool) {
	v, ok := d.Misheard[strings.ToUpper(word)]
	return v, ok
}

// LookupTechnical returns the simpler synonyms for term, ignoring case.
func (d *Dictionaries) LookupTechnical(term string) ([]string, bool) {
	v, ok := d.Technical[strings.ToUpper(term)]
	return v, ok
}

// TechnicalTerms lists technical terms in sorted order.
func (d *Dictionaries) TechnicalTerms() []string {
	terms := make([]string, 0, len(d.Technical))
	for term := range d.Technical {
		terms = append(terms, term)
	}
	slices.Sort(terms)
	return terms
}

func normalizeTable(name string, in map[string][]string) (map[string][]string, error) {
	out := make(map[string][]string, len(in))
	for key, variants := range in {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			return nil, fmt.Errorf("%w: %s has an empty key", ErrDictionary, name)
		}
		if len(variants) == 0 {
			return nil, fmt.Errorf("%w: %s.%s has no variants", ErrDictionary, name, k)
		}
		out[k] = slices.Clone(variants)
	}
	return out, nil
}
