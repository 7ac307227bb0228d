package main

import (
	"fmt"
	"os"

	"github.com/lightningnetwork/teakit/build"
	"github.com/urfave/cli"
)

// globalFlags are the options shared by every command.
var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:      "teadir",
		Usage:     "The path to the base directory.",
		TakesFile: true,
	},
	cli.StringFlag{
		Name:      "configfile, C",
		Usage:     "The path to the config file.",
		TakesFile: true,
	},
	cli.StringFlag{
		Name: "debuglevel, d",
		Usage: "Logging level for all subsystems {trace, " +
			"debug, info, warn, error, critical, off}.",
	},
	cli.StringFlag{
		Name: "delta",
		Usage: "The round constant used by the stream " +
			"cipher, hex (0x prefixed) or decimal.",
	},
	cli.StringFlag{
		Name: "startsum",
		Usage: "The start sum recorded with the session, hex (0x " +
			"prefixed) or decimal.",
	},
	cli.StringFlag{
		Name:  "nonce",
		Usage: "The hex encoded 8-byte stream nonce.",
	},
	cli.BoolFlag{
		Name: "session",
		Usage: "Derive a fresh round constant from the " +
			"current time. The delta is reported so it " +
			"can be passed back in to decrypt.",
	},
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[teacli] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "teacli"
	app.Version = build.Version() + " commit=" + build.Commit
	app.Usage = "hash, encrypt and decrypt text with the Tiny Encryption " +
		"Algorithm"
	app.Flags = globalFlags
	app.Commands = []cli.Command{
		hashCommand,
		encryptCommand,
		decryptCommand,
		encryptBlockCommand,
		decryptBlockCommand,
		sessionCommand,
		selfTestCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
