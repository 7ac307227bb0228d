package main

import (
	"crypto/rand"
	"path/filepath"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/teakit/service"
	"github.com/lightningnetwork/teakit/teacfg"
	"github.com/urfave/cli"
)

// loadConfig builds the configuration from the defaults, the config file and
// finally the global command line flags, in increasing order of precedence.
func loadConfig(ctx *cli.Context) (*teacfg.Config, error) {
	cfg := teacfg.DefaultConfig()

	if ctx.GlobalIsSet("teadir") {
		cfg.TeaDir = ctx.GlobalString("teadir")
		cfg.ConfigFile = filepath.Join(
			cfg.TeaDir, teacfg.DefaultConfigFilename,
		)
	}
	if ctx.GlobalIsSet("configfile") {
		cfg.ConfigFile = ctx.GlobalString("configfile")
	}

	err := teacfg.LoadConfigFile(
		cfg, teacfg.CleanAndExpandPath(cfg.ConfigFile),
	)
	if err != nil {
		return nil, err
	}

	if ctx.GlobalIsSet("debuglevel") {
		cfg.DebugLevel = ctx.GlobalString("debuglevel")
	}
	if ctx.GlobalIsSet("delta") {
		cfg.Stream.Delta = ctx.GlobalString("delta")
	}
	if ctx.GlobalIsSet("startsum") {
		startSum, err := teacfg.ParseUint32(
			ctx.GlobalString("startsum"),
		)
		if err != nil {
			return nil, err
		}
		cfg.Stream.StartSum = startSum
	}
	if ctx.GlobalIsSet("nonce") {
		cfg.Stream.Nonce = ctx.GlobalString("nonce")
	}
	if ctx.GlobalBool("session") {
		cfg.Stream.Session = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getService loads the configuration, sets up logging and returns the service
// together with a cleanup closure that must be called before exiting.
func getService(ctx *cli.Context) (*service.Service, func(), error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanUp, err := initLogging(cfg)
	if err != nil {
		return nil, nil, err
	}

	streamCfg, err := cfg.Stream.SessionConfig(
		clock.NewDefaultClock(), rand.Reader,
	)
	if err != nil {
		cleanUp()
		return nil, nil, err
	}

	cliLog.Debugf("Using stream delta=%#08x start_sum=%#08x",
		streamCfg.Delta, streamCfg.StartSum)

	return service.New(&service.Config{Stream: streamCfg}), cleanUp, nil
}
