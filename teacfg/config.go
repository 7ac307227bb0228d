package teacfg

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/teakit/build"
)

const (
	// DefaultConfigFilename is the default configuration file name teacli
	// tries to load.
	DefaultConfigFilename = "teakit.conf"

	// DefaultLogFilename is the default name of the log file.
	DefaultLogFilename = "teacli.log"

	// DefaultLogDirname is the name of the log directory inside the
	// teakit directory.
	DefaultLogDirname = "logs"

	// DefaultDebugLevel is the default logging level.
	DefaultDebugLevel = "info"
)

var (
	// DefaultTeaDir is the default directory holding the config file and
	// the logs.
	DefaultTeaDir = btcutil.AppDataDir("teakit", false)

	// DefaultConfigFile is the default full path of the config file.
	DefaultConfigFile = filepath.Join(DefaultTeaDir, DefaultConfigFilename)

	// DefaultLogDir is the default full path of the log directory.
	DefaultLogDir = filepath.Join(DefaultTeaDir, DefaultLogDirname)
)

// Config is the configuration of the teacli front end.
//
//nolint:lll
type Config struct {
	TeaDir     string `long:"teadir" description:"The base directory that contains the config file and logs."`
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir     string `long:"logdir" description:"Directory to log output."`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off}"`

	Stream *Stream `group:"stream" namespace:"stream"`

	Log *build.LogConfig `group:"log" namespace:"log"`
}

// DefaultConfig returns all default values for the Config struct.
func DefaultConfig() *Config {
	return &Config{
		TeaDir:     DefaultTeaDir,
		ConfigFile: DefaultConfigFile,
		LogDir:     DefaultLogDir,
		DebugLevel: DefaultDebugLevel,
		Stream:     DefaultStream(),
		Log:        build.DefaultLogConfig(),
	}
}

// LoadConfigFile reads the INI config file at path on top of cfg. A missing
// file isn't an error, a malformed one is.
func LoadConfigFile(cfg *Config, path string) error {
	err := flags.IniParse(path, cfg)
	if err == nil {
		return nil
	}

	var iniErr *flags.IniError
	if errors.As(err, &iniErr) {
		return fmt.Errorf("unable to parse config file %v: %w", path,
			err)
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// Validate checks the config for sane values and normalizes all paths. If the
// teakit directory was changed, the log directory follows it unless it was
// set explicitly.
func (c *Config) Validate() error {
	teaDir := CleanAndExpandPath(c.TeaDir)
	if teaDir != DefaultTeaDir && c.LogDir == DefaultLogDir {
		c.LogDir = filepath.Join(teaDir, DefaultLogDirname)
	}
	c.TeaDir = teaDir
	c.LogDir = CleanAndExpandPath(c.LogDir)
	c.ConfigFile = CleanAndExpandPath(c.ConfigFile)

	if _, err := build.ParseLogLevel(c.DebugLevel); err != nil {
		return err
	}

	if err := c.Log.Validate(); err != nil {
		return err
	}

	return c.Stream.Validate()
}

// LogFile returns the full path of the log file.
func (c *Config) LogFile() string {
	return filepath.Join(c.LogDir, DefaultLogFilename)
}

// CleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
// This function is taken from https://github.com/btcsuite/btcd
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
