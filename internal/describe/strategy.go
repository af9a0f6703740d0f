package describe

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStrategy = errors.New("describe: unknown strategy")

// Strategy names a way of describing the target.
type Strategy string

const (
	StrategyRows       Strategy = "rows"
	StrategyColumns    Strategy = "columns"
	StrategyQuadrants  Strategy = "quadrants"
	StrategyRLE        Strategy = "rle"
	StrategyPatterns   Strategy = "patterns"
	StrategyDetailed   Strategy = "detailed"
	StrategyCompressed Strategy = "compressed"
	StrategyScript     Strategy = "script"
)

// Strategies lists every built-in strategy in display order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyScript,
		StrategyRows,
		StrategyColumns,
		StrategyQuadrants,
		StrategyRLE,
		StrategyPatterns,
		StrategyDetailed,
		StrategyCompressed,
	}
}

func ParseStrategy(raw string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Strategies() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, raw)
}

// LineOriented reports whether each output line is a standalone message.
func (s Strategy) LineOriented() bool {
	return s == StrategyScript
}
