package noise

import "errors"

var (
	ErrInvalidProbability = errors.New("noise: invalid probability")
	ErrUnknownTier        = errors.New("noise: unknown tier")
	ErrDictionary         = errors.New("noise: invalid dictionary")
)
