package tea

import (
	"crypto/cipher"

	"github.com/lightningnetwork/teakit/codec"
)

// Cipher is a TEA instance bound to a key and round constant. It satisfies
// the cipher.Block interface so it can be plugged into the standard library
// modes.
type Cipher struct {
	key   codec.KeyWords
	delta uint32
}

// A compile time check to ensure Cipher meets the cipher.Block interface.
var _ cipher.Block = (*Cipher)(nil)

// NewCipher creates a TEA cipher using the standard round constant.
func NewCipher(key []byte) (*Cipher, error) {
	return NewCipherWithDelta(key, Delta)
}

// NewCipherWithDelta creates a TEA cipher with a custom round constant. The key
// must be exactly codec.KeySize bytes.
func NewCipherWithDelta(key []byte, delta uint32) (*Cipher, error) {
	k, err := codec.KeyToWords(key)
	if err != nil {
		return nil, err
	}

	return &Cipher{
		key:   k,
		delta: delta,
	}, nil
}

// BlockSize returns the cipher's block size.
//
// NOTE: This is part of the cipher.Block interface.
func (c *Cipher) BlockSize() int {
	return codec.BlockSize
}

// Encrypt encrypts the first block in src into dst. Like the standard library
// ciphers it panics if either buffer is shorter than a block.
//
// NOTE: This is part of the cipher.Block interface.
func (c *Cipher) Encrypt(dst, src []byte) {
	checkBuffers(dst, src)

	var in codec.Block
	copy(in[:], src)
	out := EncryptBlock(c.key, in, c.delta)
	copy(dst, out[:])
}

// Decrypt decrypts the first block in src into dst.
//
// NOTE: This is part of the cipher.Block interface.
func (c *Cipher) Decrypt(dst, src []byte) {
	checkBuffers(dst, src)

	var in codec.Block
	copy(in[:], src)
	out := DecryptBlock(c.key, in, c.delta)
	copy(dst, out[:])
}

func checkBuffers(dst, src []byte) {
	if len(src) < codec.BlockSize {
		panic("tea: input not full block")
	}
	if len(dst) < codec.BlockSize {
		panic("tea: output not full block")
	}
}
