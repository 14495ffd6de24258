package benchmark

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// SetLogger injects the logger used for benchmark table diagnostics.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "benchmark").Logger()
}
