package teahash

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/lightningnetwork/teakit/codec"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	sampleKey, _ = hex.DecodeString("0123456789ABCDEF0123456789ABCDEF")
	zeroKey      = make([]byte, codec.KeySize)
)

// TestDigestVectors pins digests of known inputs.
func TestDigestVectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		key   []byte
		want  string
	}{
		{
			name:  "empty",
			input: "",
			key:   sampleKey,
			want:  "",
		},
		{
			name:  "zero padded block",
			input: "\x00",
			key:   sampleKey,
			want:  "cfb526cc3cb69f26",
		},
		{
			name:  "two blocks",
			input: "hello world!",
			key:   sampleKey,
			want:  "8a90729d3112566fcdf4c894be5fb52e",
		},
		{
			name:  "zero key",
			input: "abcdefgh12345678",
			key:   zeroKey,
			want:  "54173d1cf5edeb1bdd4ef1b7e299fe56",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			digest, err := Digest(tc.input, tc.key)
			require.NoError(t, err)
			require.Equal(t, tc.want, digest)
		})
	}
}

// TestDigestInvalidKey checks that keys of the wrong size are rejected.
func TestDigestInvalidKey(t *testing.T) {
	t.Parallel()

	for _, size := range []int{15, 17} {
		_, err := Digest("text", make([]byte, size))
		require.ErrorIs(t, err, codec.ErrInvalidKeyLength)
	}
}

// TestDigestProperties checks the length and independence properties of the
// digest.
func TestDigestProperties(t *testing.T) {
	t.Parallel()

	// Every started block of input yields 16 hex characters.
	t.Run("length scales with input", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			input := rapid.String().Draw(t, "input")

			digest, err := Digest(input, sampleKey)
			require.NoError(t, err)

			blocks := (len(input) + codec.BlockSize - 1) /
				codec.BlockSize
			require.Len(t, digest, 16*blocks)
		})
	})

	t.Run("deterministic", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			input := rapid.String().Draw(t, "input")

			d1, err := Digest(input, sampleKey)
			require.NoError(t, err)
			d2, err := Digest(input, sampleKey)
			require.NoError(t, err)
			require.Equal(t, d1, d2)
		})
	})

	// Blocks are hashed independently, so changing one byte only changes
	// the digest block it falls into.
	t.Run("blocks are unchained", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			data := rapid.SliceOfN(rapid.Byte(), 1, 64).Draw(
				t, "data",
			)
			pos := rapid.IntRange(0, len(data)-1).Draw(t, "pos")
			mask := rapid.ByteRange(1, 255).Draw(t, "mask")

			k, err := codec.KeyToWords(sampleKey)
			require.NoError(t, err)

			altered := bytes.Clone(data)
			altered[pos] ^= mask

			sum := Sum(data, k)
			alteredSum := Sum(altered, k)

			changed := pos / codec.BlockSize
			for i := 0; i < len(sum)/codec.BlockSize; i++ {
				start, end := i*codec.BlockSize,
					(i+1)*codec.BlockSize

				if i == changed {
					require.NotEqual(
						t, sum[start:end],
						alteredSum[start:end],
					)
					continue
				}

				require.Equal(
					t, sum[start:end], alteredSum[start:end],
				)
			}
		})
	})
}

// TestDigestKeyChange asserts that a single flipped key bit changes the
// digest of a sample text.
func TestDigestKeyChange(t *testing.T) {
	t.Parallel()

	altered := bytes.Clone(sampleKey)
	altered[len(altered)-1] ^= 1

	d1, err := Digest("The quick brown fox", sampleKey)
	require.NoError(t, err)
	d2, err := Digest("The quick brown fox", altered)
	require.NoError(t, err)

	require.NotEqual(t, d1, d2)
}
