package config

import (
	"bytes"
	"fmt"
	"os"

	gotoml "github.com/pelletier/go-toml/v2"
)

const templateHeader = `# relayctl configuration.
# Every key is optional; missing keys keep their defaults.
# RELAYCTL_* environment variables override values from this file.
# Leave grid.pattern empty for a random target drawn from grid.symbols.
# Add a [noise.profile] table (forget, misinterpret, reorder) to override
# the tier's probabilities.

`

// Template renders the default configuration as TOML.
func Template() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	enc := gotoml.NewEncoder(&buf)
	if err := enc.Encode(Default()); err != nil {
		return "", fmt.Errorf("render config template: %w", err)
	}
	return buf.String(), nil
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}
