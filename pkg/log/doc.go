// Package log provides the logging abstraction used by crmapp components.
//
// Library code logs through the [Logger] interface so embedders can plug
// in their own logging. Two implementations ship with the package: a
// zerolog adapter and a no-op logger.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("listening", log.String("addr", ":3000"))
//
// Use [NewNoopLogger] in tests or when output is not wanted.
package log
