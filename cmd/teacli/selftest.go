package main

import (
	"fmt"

	"github.com/lightningnetwork/teakit/service"
	"github.com/lightningnetwork/teakit/tea"
	"github.com/urfave/cli"
)

const (
	selfTestKey        = "0123456789abcdef0123456789abcdef"
	selfTestAlteredKey = "0123456789abcdef0123456789abcdee"
	selfTestText       = "The quick brown fox jumps over the lazy dog"
	selfTestAltered    = "The quick brown fox jumps over the lazy cog"

	// selfTestZeroBlock is the ciphertext of the all zero block under
	// selfTestKey with the standard round constant.
	selfTestZeroBlock = "cfb526cc3cb69f26"
)

type selfTestResponse struct {
	Digest           string `json:"digest"`
	AlteredTextHash  string `json:"altered_text_digest"`
	AlteredKeyHash   string `json:"altered_key_digest"`
	Ciphertext       string `json:"ciphertext"`
	RoundTrip        bool   `json:"round_trip"`
	BlockVectorMatch bool   `json:"block_vector_match"`
}

var selfTestCommand = cli.Command{
	Name:  "selftest",
	Usage: "Run the constructions over fixed sample inputs.",
	Description: `
	Hashes a sample text, the same text with one character changed and the
	sample text under a key with one bit flipped, round trips the text
	through the stream cipher and checks the block cipher against a known
	vector.`,
	Action: actionDecorator(selfTest),
}

func selfTest(ctx *cli.Context) error {
	svc, cleanUp, err := getService(ctx)
	if err != nil {
		return err
	}
	defer cleanUp()

	resp, err := runSelfTest(svc)
	if err != nil {
		return err
	}

	printJSON(resp)

	if !resp.RoundTrip || !resp.BlockVectorMatch {
		return fmt.Errorf("self test failed")
	}

	return nil
}

func runSelfTest(svc *service.Service) (*selfTestResponse, error) {
	var (
		resp selfTestResponse
		err  error
	)

	resp.Digest, err = svc.Digest(selfTestText, selfTestKey).Unpack()
	if err != nil {
		return nil, err
	}

	resp.AlteredTextHash, err = svc.Digest(
		selfTestAltered, selfTestKey,
	).Unpack()
	if err != nil {
		return nil, err
	}

	resp.AlteredKeyHash, err = svc.Digest(
		selfTestText, selfTestAlteredKey,
	).Unpack()
	if err != nil {
		return nil, err
	}

	resp.Ciphertext, err = svc.Encrypt(selfTestText, selfTestKey).Unpack()
	if err != nil {
		return nil, err
	}

	plaintext, err := svc.Decrypt(resp.Ciphertext, selfTestKey).Unpack()
	if err != nil {
		return nil, err
	}

	// The sample text isn't block aligned, so the plaintext carries the
	// zero padding of the final block.
	padLen := (8 - len(selfTestText)%8) % 8
	padded := selfTestText + string(make([]byte, padLen))
	resp.RoundTrip = plaintext == padded

	block, err := svc.EncryptBlock(
		"0000000000000000", selfTestKey, tea.Delta,
	).Unpack()
	if err != nil {
		return nil, err
	}
	resp.BlockVectorMatch = block == selfTestZeroBlock

	cliLog.Debugf("Self test finished: round_trip=%v vector=%v",
		resp.RoundTrip, resp.BlockVectorMatch)

	return &resp, nil
}
