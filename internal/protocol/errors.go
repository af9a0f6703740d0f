package protocol

import "errors"

var (
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
	ErrUnframed           = errors.New("protocol: missing envelope")
)
