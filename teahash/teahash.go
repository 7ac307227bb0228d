// Package teahash builds a digest by running TEA independently over every
// block of the input.
//
// This is not a cryptographic hash. There's no chaining between blocks and no
// compression to a fixed size: the digest grows with the input and each output
// block only depends on the matching input block and the key.
package teahash

import (
	"encoding/hex"

	"github.com/lightningnetwork/teakit/codec"
	"github.com/lightningnetwork/teakit/tea"
)

// Sum runs TEA with the standard round constant over each zero-padded block of
// data and returns the concatenated output blocks.
func Sum(data []byte, key codec.KeyWords) []byte {
	blocks := codec.SplitIntoBlocks(data)
	for i, b := range blocks {
		blocks[i] = tea.EncryptBlock(key, b, tea.Delta)
	}

	return codec.JoinBlocks(blocks)
}

// Digest returns the lowercase hex encoding of Sum over the raw bytes of
// input. The result is 16 hex characters per started 8-byte block, so an
// empty input yields an empty digest.
func Digest(input string, key []byte) (string, error) {
	k, err := codec.KeyToWords(key)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(Sum([]byte(input), k)), nil
}
