package teastream

import (
	"bytes"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/teakit/tea"
	"github.com/stretchr/testify/require"
)

// TestNewSessionConfig checks that the session delta is the low 32 bits of the
// clock in milliseconds and the start sum comes from the entropy source.
func TestNewSessionConfig(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0x0123_4567_89ab)
	clk := clock.NewTestClock(now)
	entropy := bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef})

	cfg, err := NewSessionConfig(clk, entropy)
	require.NoError(t, err)
	require.Equal(t, uint32(0x456789ab), cfg.Delta)
	require.Equal(t, uint32(0xdeadbeef), cfg.StartSum)
	require.Equal(t, [NonceSize]byte{}, cfg.Nonce)

	// A later clock yields a different, incompatible session.
	clk.SetTime(now.Add(time.Millisecond))
	later, err := NewSessionConfig(clk, bytes.NewReader(make([]byte, 4)))
	require.NoError(t, err)
	require.NotEqual(t, cfg.Delta, later.Delta)
}

// TestNewSessionConfigEntropy checks that a short entropy source is reported.
func TestNewSessionConfigEntropy(t *testing.T) {
	t.Parallel()

	clk := clock.NewTestClock(time.Unix(0, 0))

	_, err := NewSessionConfig(clk, bytes.NewReader([]byte{1, 2}))
	require.Error(t, err)
}

// TestStartSumUnused asserts that the start sum doesn't influence the
// keystream.
func TestStartSumUnused(t *testing.T) {
	t.Parallel()

	a := New(Config{Delta: tea.Delta, StartSum: 1})
	b := New(Config{Delta: tea.Delta, StartSum: 2})

	ca, err := a.Encrypt("attack at dawn!!", sampleKey)
	require.NoError(t, err)
	cb, err := b.Encrypt("attack at dawn!!", sampleKey)
	require.NoError(t, err)

	require.Equal(t, ca, cb)
}

// TestStaticConfig checks that the static config uses the standard round
// constant.
func TestStaticConfig(t *testing.T) {
	t.Parallel()

	cfg := StaticConfig()
	require.Equal(t, tea.Delta, cfg.Delta)
	require.Equal(t, cfg, New(cfg).Config())
}
