package build

import (
	"os"

	"github.com/btcsuite/btclog/v2"
)

// LogType is an indicating the type of logging specified by the build flag.
type LogType byte

const (
	// LogTypeNone indicates no logging.
	LogTypeNone LogType = iota

	// LogTypeStdOut all logging is written directly to stdout.
	LogTypeStdOut

	// LogTypeDefault logs through the handlers installed by the binary.
	LogTypeDefault
)

// LogLevel is the level used by stdout loggers in development builds. It can
// be overridden with -ldflags.
var LogLevel = "info"

// String returns a human readable identifier for the logging type.
func (t LogType) String() string {
	switch t {
	case LogTypeNone:
		return "none"
	case LogTypeStdOut:
		return "stdout"
	case LogTypeDefault:
		return "default"
	default:
		return "unknown"
	}
}

// NewSubLogger constructs a new subsystem logger. In production builds, and in
// development builds using the default log type, the logger comes from
// genSubLogger, if one is given. Development builds compiled with the stdlog
// tag get a standalone stdout logger instead. Every other combination results
// in a disabled logger.
func NewSubLogger(subsystem string,
	genSubLogger func(string) btclog.Logger) btclog.Logger {

	switch Deployment {
	case Production:
		if genSubLogger != nil {
			return genSubLogger(subsystem)
		}

	case Development:
		switch LoggingType {
		case LogTypeDefault:
			if genSubLogger != nil {
				return genSubLogger(subsystem)
			}

		case LogTypeStdOut:
			handler := btclog.NewDefaultHandler(os.Stdout)
			logger := btclog.NewSLogger(
				handler.SubSystem(subsystem),
			)

			level, _ := btclog.LevelFromString(LogLevel)
			logger.SetLevel(level)

			return logger
		}
	}

	return btclog.Disabled
}
