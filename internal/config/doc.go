// Package config owns relayctl run configuration.
//
// Ownership boundary:
// - defaults and TOML file overlay
// - RELAYCTL_* environment overrides
// - validation and resolution into domain values
// - template rendering
package config
