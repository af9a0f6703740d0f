package builder

import "errors"

var (
	ErrUnrecognized  = errors.New("I didn't understand that")
	ErrOutOfBounds   = errors.New("invalid coordinates or parameters")
	ErrNothingToUndo = errors.New("no commands to undo")
)
