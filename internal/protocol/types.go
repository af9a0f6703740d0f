package protocol

import (
	"fmt"
	"strings"
)

// Version selects the envelope format.
type Version int

const (
	// V1 wraps text verbatim between dispatch markers.
	V1 Version = iota + 1
	// V2 strips vowels from long words.
	V2
	// V3 spells letters and digits as numbers.
	V3
)

const (
	dispatchOpen  = "[DISPATCH] "
	dispatchClose = " [END]"
	compOpen      = "[COMP:"
	binOpen       = "[BIN:"
	frameClose    = "]"
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	case V3:
		return "v3"
	default:
		return fmt.Sprintf("v%d", int(v))
	}
}

// Valid reports whether v names a known format.
func (v Version) Valid() bool {
	return v >= V1 && v <= V3
}

// ParseVersion accepts "v1", "V2", "3" and similar.
func ParseVersion(raw string) (Version, error) {
	s := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "v")
	switch s {
	case "1":
		return V1, nil
	case "2":
		return V2, nil
	case "3":
		return V3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, raw)
	}
}

// MarshalText lets versions appear by name in TOML and YAML.
func (v Version) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, int(v))
	}
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(b []byte) error {
	parsed, err := ParseVersion(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
