// Package tea implements the Tiny Encryption Algorithm block cipher over a
// single 64-bit block with a 128-bit key. The round constant is a parameter so
// that different constructions can share the same permutation.
//
// NOTE: TEA has well known related-key weaknesses and must not be relied upon
// for confidentiality.
package tea

import (
	"github.com/lightningnetwork/teakit/codec"
)

const (
	// Delta is the standard TEA round constant, derived from the golden
	// ratio.
	Delta uint32 = 0x9E3779B9

	// Rounds is the number of rounds applied to every block. Each round
	// updates both halves of the block.
	Rounds = 32
)

// EncryptBlock runs all rounds of TEA over block using the given key words and
// round constant. All arithmetic wraps modulo 2^32 and every shift is logical.
func EncryptBlock(key codec.KeyWords, block codec.Block,
	delta uint32) codec.Block {

	v0, v1 := codec.WordsFromBlock(block)
	k0, k1, k2, k3 := key[0], key[1], key[2], key[3]

	var sum uint32
	for i := 0; i < Rounds; i++ {
		sum += delta
		v0 += ((v1 << 4) + k0) ^ (v1 + sum) ^ ((v1 >> 5) + k1)
		v1 += ((v0 << 4) + k2) ^ (v0 + sum) ^ ((v0 >> 5) + k3)
	}

	return codec.BlockFromWords(v0, v1)
}

// DecryptBlock inverts EncryptBlock for the same key and round constant.
func DecryptBlock(key codec.KeyWords, block codec.Block,
	delta uint32) codec.Block {

	v0, v1 := codec.WordsFromBlock(block)
	k0, k1, k2, k3 := key[0], key[1], key[2], key[3]

	sum := delta * Rounds
	for i := 0; i < Rounds; i++ {
		v1 -= ((v0 << 4) + k2) ^ (v0 + sum) ^ ((v0 >> 5) + k3)
		v0 -= ((v1 << 4) + k0) ^ (v1 + sum) ^ ((v1 >> 5) + k1)
		sum -= delta
	}

	return codec.BlockFromWords(v0, v1)
}
