package build

import (
	"fmt"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

const (
	callSiteOff   = "off"
	callSiteShort = "short"
	callSiteLong  = "long"

	// Gzip is the name of the gzip log compressor.
	Gzip = "gzip"

	// Zstd is the name of the zstd log compressor.
	Zstd = "zstd"

	defaultLogCompressor = Gzip

	// DefaultMaxLogFiles is the default maximum number of log files to
	// keep.
	DefaultMaxLogFiles = 3

	// DefaultMaxLogFileSize is the default maximum log file size in MB.
	DefaultMaxLogFileSize = 10
)

// logCompressors maps the supported compressors to the file suffix appended
// to rotated logs.
var logCompressors = map[string]string{
	Gzip: "gz",
	Zstd: "zst",
}

// SupportedLogCompressor returns whether or not logCompressor is a supported
// compression algorithm for log files.
func SupportedLogCompressor(logCompressor string) bool {
	_, ok := logCompressors[logCompressor]
	return ok
}

// ParseLogLevel parses a log level name such as "debug" or "warn".
func ParseLogLevel(level string) (btclogv1.Level, error) {
	l, ok := btclog.LevelFromString(level)
	if !ok {
		return l, fmt.Errorf("invalid log level: %v", level)
	}

	return l, nil
}

// LogConfig holds logging configuration options.
//
//nolint:lll
type LogConfig struct {
	Console *LoggerConfig     `group:"console" namespace:"console" description:"The logger writing to stderr."`
	File    *FileLoggerConfig `group:"file" namespace:"file" description:"The logger writing to the log file."`
}

// Validate validates the LogConfig struct values.
func (c *LogConfig) Validate() error {
	if !SupportedLogCompressor(c.File.Compressor) {
		return fmt.Errorf("invalid log compressor: %v",
			c.File.Compressor)
	}

	for _, cs := range []string{c.Console.CallSite, c.File.CallSite} {
		switch cs {
		case "", callSiteOff, callSiteShort, callSiteLong:
		default:
			return fmt.Errorf("invalid call-site option: %v", cs)
		}
	}

	return nil
}

// LoggerConfig holds options for a particular logger.
//
//nolint:lll
type LoggerConfig struct {
	Disable      bool   `long:"disable" description:"Disable this logger."`
	NoTimestamps bool   `long:"no-timestamps" description:"Omit timestamps from log lines."`
	CallSite     string `long:"call-site" description:"Include the call-site of each log line." choice:"off" choice:"short" choice:"long"`
}

// DefaultLogConfig returns the default logging config options.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Console: &LoggerConfig{
			CallSite: callSiteOff,
		},
		File: &FileLoggerConfig{
			Compressor:     defaultLogCompressor,
			MaxLogFiles:    DefaultMaxLogFiles,
			MaxLogFileSize: DefaultMaxLogFileSize,
			LoggerConfig: LoggerConfig{
				CallSite: callSiteOff,
			},
		},
	}
}

// HandlerOptions returns the set of btclog.HandlerOptions that the state of the
// config struct translates to.
func (cfg *LoggerConfig) HandlerOptions() []btclog.HandlerOption {
	opts := []btclog.HandlerOption{
		// Records pass through the HandlerSet before reaching the
		// actual handler, which adds one frame to the default skip
		// depth of 6.
		btclog.WithCallSiteSkipDepth(7),
	}

	if cfg.NoTimestamps {
		opts = append(opts, btclog.WithNoTimestamp())
	}

	switch cfg.CallSite {
	case callSiteShort:
		opts = append(opts, btclog.WithCallerFlags(btclog.Lshortfile))
	case callSiteLong:
		opts = append(opts, btclog.WithCallerFlags(btclog.Llongfile))
	}

	return opts
}

// FileLoggerConfig extends LoggerConfig with specific log file options.
//
//nolint:lll
type FileLoggerConfig struct {
	LoggerConfig
	Compressor     string `long:"compressor" description:"Compression algorithm to use when rotating logs." choice:"gzip" choice:"zstd"`
	MaxLogFiles    int    `long:"max-files" description:"Maximum logfiles to keep (0 for no rotation)"`
	MaxLogFileSize int    `long:"max-file-size" description:"Maximum logfile size in MB"`
}
