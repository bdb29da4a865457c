// Package relinkcfg reads the diagnostic CLI's tuning knobs from the
// environment. The core linker (internal/reloc) never reads configuration;
// every parameter it needs is passed explicitly by its caller, per
// spec.md §6. This package only feeds cmd/walink and the in-process test
// harness.
package relinkcfg

import "github.com/xyproto/env/v2"

// Config holds the environment-derived knobs for cmd/walink.
type Config struct {
	// LogLevel is a logrus level name (e.g. "debug", "info", "warn").
	LogLevel string
	// TrampolineEntryLength is the default trampoline entry size used by
	// the `walink check` demo path when a fixture doesn't specify one.
	TrampolineEntryLength int
}

const (
	envLogLevel              = "WALINK_LOG_LEVEL"
	envTrampolineEntryLength = "WALINK_TRAMPOLINE_ENTRY_LEN"

	defaultLogLevel              = "info"
	defaultTrampolineEntryLength = 20
)

// Load reads Config from the environment, falling back to sensible
// defaults when a variable is unset.
func Load() Config {
	return Config{
		LogLevel:              env.Str(envLogLevel, defaultLogLevel),
		TrampolineEntryLength: env.Int(envTrampolineEntryLength, defaultTrampolineEntryLength),
	}
}
