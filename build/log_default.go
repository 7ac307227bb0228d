//go:build !stdlog && !nolog

package build

// LoggingType is a log type that writes to the handlers configured by the
// binary.
const LoggingType = LogTypeDefault
