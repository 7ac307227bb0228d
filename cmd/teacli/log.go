package main

import (
	"fmt"
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/teakit/build"
	"github.com/lightningnetwork/teakit/service"
	"github.com/lightningnetwork/teakit/teacfg"
)

// cliLog is the logger of the command line front end itself.
var cliLog = btclog.Disabled

// initLogging wires the console and log file handlers into every subsystem
// logger. The returned closure flushes and closes the log file.
func initLogging(cfg *teacfg.Config) (func(), error) {
	level, err := build.ParseLogLevel(cfg.DebugLevel)
	if err != nil {
		return nil, err
	}

	logFile := build.NewRotatingLogWriter()
	if !cfg.Log.File.Disable {
		err := logFile.InitLogRotator(cfg.Log.File, cfg.LogFile())
		if err != nil {
			return nil, err
		}
	}

	handlers := build.NewDefaultHandlers(cfg.Log, logFile)
	root := btclog.NewSLogger(build.NewHandlerSet(level, handlers...))

	cliLog = build.NewSubLogger("TCLI", root.SubSystem)
	service.UseLogger(build.NewSubLogger(service.Subsystem, root.SubSystem))

	return func() {
		if err := logFile.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "unable to close log "+
				"file: %v\n", err)
		}
	}, nil
}
