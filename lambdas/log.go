package lambdas

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// SetLogger replaces the logger used to trace reference resolution. Nothing
// is logged unless this is called; it should be called before any
// introspection takes place.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "lambdas").Logger()
}
