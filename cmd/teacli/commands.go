package main

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/teakit/service"
	"github.com/lightningnetwork/teakit/tea"
	"github.com/lightningnetwork/teakit/teacfg"
	"github.com/lightningnetwork/teakit/teastream"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

var errMissingInput = errors.New("missing input argument")

var keyFlag = cli.StringFlag{
	Name: "key, k",
	Usage: "The hex encoded 16-byte key. If omitted, the key is read " +
		"from the terminal.",
}

var blockDeltaFlag = cli.StringFlag{
	Name:  "delta",
	Value: fmt.Sprintf("%#08x", tea.Delta),
	Usage: "The round constant, hex (0x prefixed) or decimal.",
}

// actionDecorator is used to add additional information and error handling
// to command actions.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		err := f(c)
		if errors.Is(err, errMissingInput) {
			_ = cli.ShowCommandHelp(c, c.Command.Name)
		}

		return err
	}
}

func printJSON(resp interface{}) {
	b, err := json.Marshal(resp)
	if err != nil {
		fatal(err)
	}

	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "    ")
	out.WriteString("\n")
	_, _ = out.WriteTo(os.Stdout)
}

// readKey returns the key given with --key, or prompts for it on the terminal
// without echoing it.
func readKey(ctx *cli.Context) (string, error) {
	if ctx.IsSet("key") {
		return ctx.String("key"), nil
	}

	fmt.Fprint(os.Stderr, "Key (hex): ")
	key, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("unable to read key: %w", err)
	}

	return strings.TrimSpace(string(key)), nil
}

// readInput returns the first positional argument, or all of stdin if the
// argument is "-".
func readInput(ctx *cli.Context) (string, error) {
	if !ctx.Args().Present() {
		return "", errMissingInput
	}

	arg := ctx.Args().First()
	if arg != "-" {
		return arg, nil
	}

	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// runRequest is the common body of the text commands: it reads the input and
// key, hands them to the request closure and prints the response.
func runRequest(ctx *cli.Context,
	req func(*service.Service, string, string) (interface{}, error)) error {

	input, err := readInput(ctx)
	if err != nil {
		return err
	}

	svc, cleanUp, err := getService(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	key, err := readKey(ctx)
	if err != nil {
		return err
	}

	resp, err := req(svc, input, key)
	if err != nil {
		return fmt.Errorf("%v: %w", service.KindOf(err), err)
	}

	printJSON(resp)

	return nil
}

type digestResponse struct {
	Digest string `json:"digest"`
}

type encryptResponse struct {
	Ciphertext string `json:"ciphertext"`
	Delta      string `json:"delta"`
	StartSum   string `json:"start_sum"`
	Nonce      string `json:"nonce"`
}

type decryptResponse struct {
	Plaintext string `json:"plaintext"`
}

type blockResponse struct {
	Block string `json:"block"`
}

var hashCommand = cli.Command{
	Name:      "hash",
	Usage:     "Compute the block-wise TEA digest of a text.",
	ArgsUsage: "text|-",
	Description: `
	Encrypts every 8-byte block of the text independently with TEA and
	prints the concatenated blocks as hex. The digest grows with the input
	and each digest block only depends on the matching input block.`,
	Flags:  []cli.Flag{keyFlag},
	Action: actionDecorator(hash),
}

func hash(ctx *cli.Context) error {
	return runRequest(ctx, func(svc *service.Service, text,
		key string) (interface{}, error) {

		digest, err := svc.Digest(text, key).Unpack()
		if err != nil {
			return nil, err
		}

		return &digestResponse{Digest: digest}, nil
	})
}

var encryptCommand = cli.Command{
	Name:      "encrypt",
	Usage:     "Encrypt a text with the TEA stream cipher.",
	ArgsUsage: "text|-",
	Description: `
	Encrypts the text in counter mode and prints the ciphertext as hex
	together with the session it was made with. The final block is zero
	padded, so the ciphertext is always a multiple of 8 bytes. Decrypting
	requires the same delta and nonce, which matters when --session is
	used.`,
	Flags:  []cli.Flag{keyFlag},
	Action: actionDecorator(encrypt),
}

func encrypt(ctx *cli.Context) error {
	return runRequest(ctx, func(svc *service.Service, text,
		key string) (interface{}, error) {

		ciphertext, err := svc.Encrypt(text, key).Unpack()
		if err != nil {
			return nil, err
		}

		session := svc.SessionConfig()
		cliLog.Infof("Encrypted %d bytes with delta=%#08x", len(text),
			session.Delta)

		return &encryptResponse{
			Ciphertext: ciphertext,
			Delta:      fmt.Sprintf("%#08x", session.Delta),
			StartSum:   fmt.Sprintf("%#08x", session.StartSum),
			Nonce:      hex.EncodeToString(session.Nonce[:]),
		}, nil
	})
}

var decryptCommand = cli.Command{
	Name:      "decrypt",
	Usage:     "Decrypt a hex ciphertext made by encrypt.",
	ArgsUsage: "ciphertext|-",
	Description: `
	Decrypts a hex ciphertext. The delta and nonce must match the ones used
	to encrypt. The plaintext keeps the zero padding of the final block
	unless --trim is set.`,
	Flags: []cli.Flag{
		keyFlag,
		cli.BoolFlag{
			Name:  "trim",
			Usage: "Strip trailing NUL bytes from the plaintext.",
		},
	},
	Action: actionDecorator(decrypt),
}

func decrypt(ctx *cli.Context) error {
	return runRequest(ctx, func(svc *service.Service, cipherHex,
		key string) (interface{}, error) {

		plaintext, err := svc.Decrypt(
			strings.TrimSpace(cipherHex), key,
		).Unpack()
		if err != nil {
			return nil, err
		}

		if ctx.Bool("trim") {
			plaintext = teastream.TrimPadding(plaintext)
		}

		return &decryptResponse{Plaintext: plaintext}, nil
	})
}

var encryptBlockCommand = cli.Command{
	Name:      "encryptblock",
	Usage:     "Run the TEA block cipher over a single block.",
	ArgsUsage: "block",
	Description: `
	Encrypts one hex encoded 8-byte block with the given round constant and
	prints the resulting block as hex.`,
	Flags:  []cli.Flag{keyFlag, blockDeltaFlag},
	Action: actionDecorator(encryptBlock),
}

func encryptBlock(ctx *cli.Context) error {
	return runBlockRequest(ctx, (*service.Service).EncryptBlock)
}

var decryptBlockCommand = cli.Command{
	Name:      "decryptblock",
	Usage:     "Invert the TEA block cipher over a single block.",
	ArgsUsage: "block",
	Flags:     []cli.Flag{keyFlag, blockDeltaFlag},
	Action:    actionDecorator(decryptBlock),
}

func decryptBlock(ctx *cli.Context) error {
	return runBlockRequest(ctx, (*service.Service).DecryptBlock)
}

func runBlockRequest(ctx *cli.Context, req func(*service.Service, string,
	string, uint32) fn.Result[string]) error {

	delta, err := teacfg.ParseUint32(ctx.String("delta"))
	if err != nil {
		return err
	}

	return runRequest(ctx, func(svc *service.Service, block,
		key string) (interface{}, error) {

		out, err := req(svc, block, key, delta).Unpack()
		if err != nil {
			return nil, err
		}

		return &blockResponse{Block: out}, nil
	})
}

type sessionResponse struct {
	Delta    string `json:"delta"`
	StartSum string `json:"start_sum"`
}

var sessionCommand = cli.Command{
	Name:  "session",
	Usage: "Derive a fresh session round constant.",
	Description: `
	Derives a round constant from the current time and a random start sum,
	the same way --session does. Passing the printed delta with --delta
	makes ciphertexts decryptable across runs.`,
	Action: actionDecorator(newSession),
}

func newSession(_ *cli.Context) error {
	cfg, err := teastream.NewSessionConfig(
		clock.NewDefaultClock(), rand.Reader,
	)
	if err != nil {
		return err
	}

	printJSON(&sessionResponse{
		Delta:    fmt.Sprintf("%#08x", cfg.Delta),
		StartSum: fmt.Sprintf("%#08x", cfg.StartSum),
	})

	return nil
}
