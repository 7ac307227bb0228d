package teacfg

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/teakit/tea"
	"github.com/lightningnetwork/teakit/teastream"
)

// Stream holds the session settings of the stream cipher.
//
//nolint:lll
type Stream struct {
	// Delta is the round constant used for the keystream.
	Delta string `long:"delta" description:"Round constant used to derive the keystream, as hex (0x prefixed) or decimal."`

	// StartSum is recorded with the session but doesn't affect the
	// keystream.
	StartSum uint32 `long:"startsum" description:"Start sum recorded with the session."`

	// Nonce is the hex encoded nonce used in every counter block.
	Nonce string `long:"nonce" description:"Hex encoded 8-byte nonce placed in every counter block."`

	// Session requests a fresh round constant derived from the clock. The
	// resulting ciphertexts can only be decrypted by passing the reported
	// delta back in.
	Session bool `long:"session" description:"Derive a per-process round constant from the current time instead of using delta."`
}

// DefaultStream returns the default stream settings: the standard TEA round
// constant and a zero nonce.
func DefaultStream() *Stream {
	return &Stream{
		Delta: fmt.Sprintf("%#08x", tea.Delta),
		Nonce: hex.EncodeToString(make([]byte, teastream.NonceSize)),
	}
}

// ParseUint32 parses a 32-bit unsigned value given either in decimal or with
// a 0x prefix in hex.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid 32-bit value %q: %w", s, err)
	}

	return uint32(v), nil
}

func parseNonce(s string) ([teastream.NonceSize]byte, error) {
	var nonce [teastream.NonceSize]byte

	b, err := hex.DecodeString(s)
	if err != nil {
		return nonce, fmt.Errorf("invalid nonce: %w", err)
	}
	if len(b) != teastream.NonceSize {
		return nonce, fmt.Errorf("invalid nonce: got %d bytes, want %d",
			len(b), teastream.NonceSize)
	}
	copy(nonce[:], b)

	return nonce, nil
}

// Validate checks that the delta and nonce can be parsed.
func (s *Stream) Validate() error {
	if _, err := ParseUint32(s.Delta); err != nil {
		return err
	}

	_, err := parseNonce(s.Nonce)

	return err
}

// SessionConfig turns the settings into a teastream.Config. If Session is set,
// the delta and start sum are derived from clk and entropy and override the
// configured values.
func (s *Stream) SessionConfig(clk clock.Clock,
	entropy io.Reader) (teastream.Config, error) {

	nonce, err := parseNonce(s.Nonce)
	if err != nil {
		return teastream.Config{}, err
	}

	if s.Session {
		cfg, err := teastream.NewSessionConfig(clk, entropy)
		if err != nil {
			return teastream.Config{}, err
		}
		cfg.Nonce = nonce

		return *cfg, nil
	}

	delta, err := ParseUint32(s.Delta)
	if err != nil {
		return teastream.Config{}, err
	}

	return teastream.Config{
		Delta:    delta,
		StartSum: s.StartSum,
		Nonce:    nonce,
	}, nil
}
