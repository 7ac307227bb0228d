package teastream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/teakit/tea"
)

// NonceSize is the size of the nonce that prefixes every counter block.
const NonceSize = 8

// Config is the session configuration of a Stream. Two streams only
// interoperate if their configs match.
type Config struct {
	// Delta is the TEA round constant used to derive keystream blocks.
	Delta uint32

	// StartSum is a random per-session value. It's carried along so that
	// front ends can report it, but it doesn't influence the keystream.
	StartSum uint32

	// Nonce is copied into every counter block before the block index is
	// written over its last four bytes.
	Nonce [NonceSize]byte
}

// StaticConfig returns a config using the standard TEA round constant and a
// zero nonce. Ciphertexts produced with it can be decrypted by any process.
func StaticConfig() Config {
	return Config{
		Delta: tea.Delta,
	}
}

// NewSessionConfig derives a session config the way a fresh process would: the
// round constant is the low 32 bits of the current unix time in milliseconds
// and the start sum is drawn from entropy.
func NewSessionConfig(clk clock.Clock, entropy io.Reader) (*Config, error) {
	var buf [4]byte
	if _, err := io.ReadFull(entropy, buf[:]); err != nil {
		return nil, fmt.Errorf("unable to draw start sum: %w", err)
	}

	return &Config{
		Delta:    uint32(clk.Now().UnixMilli()),
		StartSum: binary.BigEndian.Uint32(buf[:]),
	}, nil
}
