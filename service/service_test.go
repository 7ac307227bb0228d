package service

import (
	"fmt"
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/teakit/codec"
	"github.com/lightningnetwork/teakit/tea"
	"github.com/lightningnetwork/teakit/teastream"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const sampleKeyHex = "0123456789ABCDEF0123456789ABCDEF"

func newTestService() *Service {
	return New(&Config{Stream: teastream.StaticConfig()})
}

func errOf(r fn.Result[string]) error {
	_, err := r.Unpack()
	return err
}

// TestParseKeyHex checks the caller side key validation.
func TestParseKeyHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		keyHex string
		kind   Kind
	}{
		{
			name:   "valid upper case",
			keyHex: sampleKeyHex,
			kind:   KindNone,
		},
		{
			name:   "valid lower case",
			keyHex: "0123456789abcdef0123456789abcdef",
			kind:   KindNone,
		},
		{
			name:   "not hex",
			keyHex: "0123456789ABCDEF0123456789ABCDEG",
			kind:   KindInvalidEncoding,
		},
		{
			name:   "odd length",
			keyHex: "0123456789ABCDEF0123456789ABCDE",
			kind:   KindInvalidEncoding,
		},
		{
			name:   "15 bytes",
			keyHex: "0123456789ABCDEF0123456789ABCD",
			kind:   KindInvalidKeyLength,
		},
		{
			name:   "17 bytes",
			keyHex: sampleKeyHex + "00",
			kind:   KindInvalidKeyLength,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			key, err := ParseKeyHex(tc.keyHex)
			require.Equal(t, tc.kind, KindOf(err))
			if tc.kind == KindNone {
				require.Len(t, key, codec.KeySize)
			}
		})
	}
}

// TestRequests runs every request type through the service and checks the
// result against known outputs.
func TestRequests(t *testing.T) {
	t.Parallel()

	s := newTestService()

	digest, err := s.Digest("hello world!", sampleKeyHex).Unpack()
	require.NoError(t, err)
	require.Equal(t, "8a90729d3112566fcdf4c894be5fb52e", digest)

	ciphertext, err := s.Encrypt("attack at dawn!!", sampleKeyHex).Unpack()
	require.NoError(t, err)
	require.Equal(t, "aec152ad5fddbf47316f751630fdc502", ciphertext)

	plaintext, err := s.Decrypt(ciphertext, sampleKeyHex).Unpack()
	require.NoError(t, err)
	require.Equal(t, "attack at dawn!!", plaintext)

	block, err := s.EncryptBlock(
		"0000000000000000", sampleKeyHex, tea.Delta,
	).Unpack()
	require.NoError(t, err)
	require.Equal(t, "cfb526cc3cb69f26", block)

	block, err = s.DecryptBlock(block, sampleKeyHex, tea.Delta).Unpack()
	require.NoError(t, err)
	require.Equal(t, "0000000000000000", block)
}

// TestRequestErrors checks that failures surface as the expected error kinds.
func TestRequestErrors(t *testing.T) {
	t.Parallel()

	s := newTestService()
	shortKey := "0123456789ABCDEF0123456789ABCD"

	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{
			name: "digest short key",
			err:  errOf(s.Digest("text", shortKey)),
			kind: KindInvalidKeyLength,
		},
		{
			name: "encrypt bad key hex",
			err:  errOf(s.Encrypt("text", "xyz")),
			kind: KindInvalidEncoding,
		},
		{
			name: "decrypt bad ciphertext",
			err:  errOf(s.Decrypt("not hex", sampleKeyHex)),
			kind: KindInvalidCiphertextEncoding,
		},
		{
			name: "decrypt partial block",
			err:  errOf(s.Decrypt("00ff", sampleKeyHex)),
			kind: KindInvalidCiphertextEncoding,
		},
		{
			name: "block too short",
			err: errOf(s.EncryptBlock(
				"00000000", sampleKeyHex, tea.Delta,
			)),
			kind: KindInvalidBlockLength,
		},
		{
			name: "block not hex",
			err: errOf(s.DecryptBlock(
				"000000000000000z", sampleKeyHex, tea.Delta,
			)),
			kind: KindInvalidEncoding,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Error(t, tc.err)
			require.Equal(t, tc.kind, KindOf(tc.err))
		})
	}
}

// TestKindOf checks the mapping of wrapped errors onto kinds.
func TestKindOf(t *testing.T) {
	t.Parallel()

	wrap := func(err error) error {
		return fmt.Errorf("outer: %w", err)
	}

	require.Equal(t, KindNone, KindOf(nil))
	require.Equal(
		t, KindValueOutOfRange, KindOf(wrap(codec.ErrValueOutOfRange)),
	)
	require.Equal(
		t, KindInvalidKeyLength,
		KindOf(wrap(codec.ErrInvalidKeyLength)),
	)
	require.Equal(t, KindUnknown, KindOf(fmt.Errorf("boom")))
	require.Equal(t, "InvalidCiphertextEncoding",
		KindInvalidCiphertextEncoding.String())
	require.Equal(t, "Unknown", Kind(200).String())
}

// TestConcurrentRequests asserts that a single service can serve requests
// from many goroutines at once with identical results.
func TestConcurrentRequests(t *testing.T) {
	t.Parallel()

	s := newTestService()

	const numWorkers = 32
	results := make([]string, numWorkers)

	var g errgroup.Group
	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			text := fmt.Sprintf("message number %d", i%4)

			ciphertext, err := s.Encrypt(text, sampleKeyHex).Unpack()
			if err != nil {
				return err
			}

			plaintext, err := s.Decrypt(
				ciphertext, sampleKeyHex,
			).Unpack()
			if err != nil {
				return err
			}
			if plaintext != text {
				return fmt.Errorf("round trip mismatch: %q",
					plaintext)
			}

			results[i] = ciphertext

			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Workers encrypting the same text must agree.
	for i := 4; i < numWorkers; i++ {
		require.Equal(t, results[i%4], results[i])
	}
}
