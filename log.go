package alder

import (
	"os"

	"github.com/rs/zerolog"
)

// logger is the package-wide structured logger. Isolated failures (replaced
// plugins, teardown errors, panicking hooks and subscribers, payload type
// mismatches) are reported here instead of propagating to the host loop.
// Defaults to warn-level output on stderr.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	Level(zerolog.WarnLevel).
	With().Timestamp().Logger()

// SetLogger installs a structured logger for library diagnostics.
// Pass zerolog.Nop() to silence them entirely.
func SetLogger(l zerolog.Logger) { logger = l }
