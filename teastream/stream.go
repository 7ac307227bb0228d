// Package teastream turns TEA into a stream cipher by encrypting a nonce and
// block counter to derive a keystream which is XORed with the data.
//
// Every input is processed in whole blocks. A short final block is zero-padded
// before the XOR, so ciphertexts are always a multiple of the block size and
// decrypting them yields the original text followed by NUL bytes up to the
// block boundary. Use TrimPadding to strip them when the original text is
// known not to end in NULs.
package teastream

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/lightningnetwork/teakit/codec"
	"github.com/lightningnetwork/teakit/tea"
)

// ErrInvalidCiphertextEncoding is returned when a ciphertext isn't valid hex
// or doesn't decode to a whole number of blocks.
var ErrInvalidCiphertextEncoding = errors.New("invalid ciphertext encoding")

// Stream encrypts and decrypts data under a fixed session config. A Stream is
// immutable and safe for concurrent use.
type Stream struct {
	cfg Config
}

// New creates a Stream bound to cfg.
func New(cfg Config) *Stream {
	return &Stream{
		cfg: cfg,
	}
}

// Config returns the session config of the stream.
func (s *Stream) Config() Config {
	return s.cfg
}

// counterBlock builds the counter block for the given block index.
func (s *Stream) counterBlock(index uint32) codec.Block {
	var b codec.Block
	copy(b[:], s.cfg.Nonce[:])
	binary.BigEndian.PutUint32(b[4:], index)

	return b
}

// KeystreamBlock returns the keystream block for the given block index. It
// only depends on the key, the session config and the index.
func (s *Stream) KeystreamBlock(key codec.KeyWords, index uint32) codec.Block {
	return tea.EncryptBlock(key, s.counterBlock(index), s.cfg.Delta)
}

// xorKeystream XORs every block of data with its keystream block. The block
// index is a 32-bit counter and wraps after 2^32 blocks.
func (s *Stream) xorKeystream(key codec.KeyWords, data []byte) []byte {
	blocks := codec.SplitIntoBlocks(data)
	for i, b := range blocks {
		blocks[i] = codec.XORBlock(b, s.KeystreamBlock(key, uint32(i)))
	}

	return codec.JoinBlocks(blocks)
}

// EncryptBytes encrypts plaintext under key. The result is rounded up to a
// whole number of blocks.
func (s *Stream) EncryptBytes(plaintext, key []byte) ([]byte, error) {
	k, err := codec.KeyToWords(key)
	if err != nil {
		return nil, err
	}

	return s.xorKeystream(k, plaintext), nil
}

// DecryptBytes decrypts ciphertext under key. The ciphertext must be a whole
// number of blocks.
func (s *Stream) DecryptBytes(ciphertext, key []byte) ([]byte, error) {
	k, err := codec.KeyToWords(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext)%codec.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes isn't a multiple of the "+
			"block size", ErrInvalidCiphertextEncoding,
			len(ciphertext))
	}

	return s.xorKeystream(k, ciphertext), nil
}

// Encrypt encrypts the raw bytes of input and returns the ciphertext as
// lowercase hex.
func (s *Stream) Encrypt(input string, key []byte) (string, error) {
	ciphertext, err := s.EncryptBytes([]byte(input), key)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(ciphertext), nil
}

// Decrypt decodes cipherHex and decrypts it. Hex of either case is accepted.
// The returned text keeps any zero padding added by Encrypt.
func (s *Stream) Decrypt(cipherHex string, key []byte) (string, error) {
	// Validate the key first so a bad key is reported as such regardless
	// of the ciphertext.
	if _, err := codec.KeyToWords(key); err != nil {
		return "", err
	}

	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCiphertextEncoding,
			err)
	}

	plaintext, err := s.DecryptBytes(ciphertext, key)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// TrimPadding strips the trailing NUL bytes left behind by the zero padding of
// the final block.
func TrimPadding(text string) string {
	return strings.TrimRight(text, "\x00")
}
