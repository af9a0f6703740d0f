package grid

import "fmt"

// DefaultSymbols is the alphabet used for generated targets.
const DefaultSymbols = "ABCD"

// IntSource is the slice of *rand.Rand that Random needs.
type IntSource interface {
	IntN(n int) int
}

// Random fills a size x size grid with symbols drawn uniformly from symbols.
func Random(size int, symbols string, rng IntSource) (*Grid, error) {
	if symbols == "" {
		return nil, fmt.Errorf("%w: empty symbol set", ErrInvalidSymbol)
	}
	for i := 0; i < len(symbols); i++ {
		if !ValidSymbol(symbols[i]) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbols[i])
		}
	}
	g := New(size)
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			g.cells[r][c] = symbols[rng.IntN(len(symbols))]
		}
	}
	return g, nil
}
