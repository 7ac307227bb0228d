package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// BlockSize is the size of a single cipher block in bytes.
	BlockSize = 8

	// KeySize is the size of a cipher key in bytes.
	KeySize = 16

	// wordSize is the size of a packed 32-bit word in bytes.
	wordSize = 4
)

var (
	// ErrInvalidKeyLength is returned when a key buffer isn't exactly
	// KeySize bytes long.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrInvalidBlockLength is returned when a block buffer isn't exactly
	// BlockSize bytes long.
	ErrInvalidBlockLength = errors.New("invalid block length")

	// ErrValueOutOfRange is returned when a value presented for packing
	// doesn't fit into an unsigned 32-bit word.
	ErrValueOutOfRange = errors.New("value out of range")
)

// Block is a single 8-byte cipher block. It's interpreted as two big-endian
// 32-bit words v0 and v1.
type Block [BlockSize]byte

// KeyWords is a 16-byte key unpacked into four big-endian 32-bit words.
type KeyWords [4]uint32

// SplitIntoBlocks segments buf into consecutive blocks. The final block is
// right-padded with zero bytes if buf isn't a multiple of BlockSize. An empty
// buffer yields no blocks.
func SplitIntoBlocks(buf []byte) []Block {
	numBlocks := (len(buf) + BlockSize - 1) / BlockSize
	blocks := make([]Block, numBlocks)
	for i := range blocks {
		copy(blocks[i][:], buf[i*BlockSize:])
	}

	return blocks
}

// JoinBlocks concatenates the passed blocks into a single byte slice.
func JoinBlocks(blocks []Block) []byte {
	buf := make([]byte, 0, len(blocks)*BlockSize)
	for _, b := range blocks {
		buf = append(buf, b[:]...)
	}

	return buf
}

// WordsFromBlock unpacks a block into its two big-endian words.
func WordsFromBlock(b Block) (uint32, uint32) {
	return binary.BigEndian.Uint32(b[:wordSize]),
		binary.BigEndian.Uint32(b[wordSize:])
}

// BlockFromWords packs two words back into a block, big-endian.
func BlockFromWords(v0, v1 uint32) Block {
	var b Block
	binary.BigEndian.PutUint32(b[:wordSize], v0)
	binary.BigEndian.PutUint32(b[wordSize:], v1)

	return b
}

// BlockFromBytes copies an exactly BlockSize long buffer into a Block.
func BlockFromBytes(buf []byte) (Block, error) {
	var b Block
	if len(buf) != BlockSize {
		return b, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidBlockLength, len(buf), BlockSize)
	}
	copy(b[:], buf)

	return b, nil
}

// KeyToWords unpacks a 16-byte key into the four words k0..k3 consumed by the
// key schedule.
func KeyToWords(key []byte) (KeyWords, error) {
	var k KeyWords
	if len(key) != KeySize {
		return k, fmt.Errorf("%w: got %d bytes, want %d",
			ErrInvalidKeyLength, len(key), KeySize)
	}

	for i := range k {
		k[i] = binary.BigEndian.Uint32(key[i*wordSize:])
	}

	return k, nil
}

// PackWord serializes v as a big-endian 32-bit word. Values outside
// [0, 2^32-1] are rejected with ErrValueOutOfRange.
//
// NOTE: The cipher paths work on uint32 words and never call this, so the
// range check only guards direct callers.
func PackWord(v int64) ([wordSize]byte, error) {
	var w [wordSize]byte
	if v < 0 || v > math.MaxUint32 {
		return w, fmt.Errorf("%w: %d", ErrValueOutOfRange, v)
	}
	binary.BigEndian.PutUint32(w[:], uint32(v))

	return w, nil
}

// PackWords serializes each word in turn with PackWord and concatenates the
// results.
func PackWords(words ...int64) ([]byte, error) {
	buf := make([]byte, 0, len(words)*wordSize)
	for _, v := range words {
		w, err := PackWord(v)
		if err != nil {
			return nil, err
		}
		buf = append(buf, w[:]...)
	}

	return buf, nil
}

// XORBlock returns the byte-wise XOR of a and b.
func XORBlock(a, b Block) Block {
	var out Block
	for i := range out {
		out[i] = a[i] ^ b[i]
	}

	return out
}
