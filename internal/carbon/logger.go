package carbon

import "github.com/rs/zerolog"

// logger receives table parsing diagnostics. Silent until SetLogger is called.
var logger = zerolog.Nop()

// SetLogger injects the logger used for factor table diagnostics.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "carbon").Logger()
}
