// Package service exposes the TEA constructions to front ends as plain
// request/response calls taking text and a hex encoded key.
package service

import (
	"encoding/hex"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/teakit/build"
	"github.com/lightningnetwork/teakit/codec"
	"github.com/lightningnetwork/teakit/tea"
	"github.com/lightningnetwork/teakit/teahash"
	"github.com/lightningnetwork/teakit/teastream"
)

// Config houses the settings of a Service.
type Config struct {
	// Stream is the session config used for Encrypt and Decrypt.
	Stream teastream.Config
}

// Service answers digest, encrypt and decrypt requests. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	cfg    *Config
	stream *teastream.Stream
}

// New creates a Service from cfg.
func New(cfg *Config) *Service {
	log.Tracef("Creating service with config: %v",
		build.SpewLogClosure(cfg))

	return &Service{
		cfg:    cfg,
		stream: teastream.New(cfg.Stream),
	}
}

// ParseKeyHex decodes a hex encoded key and checks its length.
func ParseKeyHex(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyHex, err)
	}

	if len(key) != codec.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d",
			codec.ErrInvalidKeyLength, len(key), codec.KeySize)
	}

	return key, nil
}

// parseBlockHex decodes a hex encoded block and checks its length.
func parseBlockHex(blockHex string) (codec.Block, error) {
	buf, err := hex.DecodeString(blockHex)
	if err != nil {
		return codec.Block{}, fmt.Errorf("%w: %v", ErrInvalidBlockHex,
			err)
	}

	return codec.BlockFromBytes(buf)
}

// result wraps the outcome of a request into a Result and logs failures.
func result(op string, val string, err error) fn.Result[string] {
	if err != nil {
		log.Debugf("%v request failed (%v): %v", op, KindOf(err), err)
		return fn.Err[string](err)
	}

	return fn.Ok(val)
}

// Digest hashes text with the block-wise TEA digest.
func (s *Service) Digest(text, keyHex string) fn.Result[string] {
	log.Debugf("Digest request for %d bytes", len(text))

	key, err := ParseKeyHex(keyHex)
	if err != nil {
		return result("digest", "", err)
	}

	digest, err := teahash.Digest(text, key)

	return result("digest", digest, err)
}

// Encrypt encrypts text with the stream cipher and returns hex.
func (s *Service) Encrypt(text, keyHex string) fn.Result[string] {
	log.Debugf("Encrypt request for %d bytes", len(text))

	key, err := ParseKeyHex(keyHex)
	if err != nil {
		return result("encrypt", "", err)
	}

	ciphertext, err := s.stream.Encrypt(text, key)

	return result("encrypt", ciphertext, err)
}

// Decrypt decrypts hex ciphertext produced by Encrypt under the same session
// config. Zero padding of the final block is kept.
func (s *Service) Decrypt(cipherHex, keyHex string) fn.Result[string] {
	log.Debugf("Decrypt request for %d hex chars", len(cipherHex))

	key, err := ParseKeyHex(keyHex)
	if err != nil {
		return result("decrypt", "", err)
	}

	plaintext, err := s.stream.Decrypt(cipherHex, key)

	return result("decrypt", plaintext, err)
}

// EncryptBlock runs the raw block cipher over a single hex encoded block with
// the given round constant and returns the output block as hex.
func (s *Service) EncryptBlock(blockHex, keyHex string,
	delta uint32) fn.Result[string] {

	return s.cryptBlock("encryptblock", blockHex, keyHex, delta,
		tea.EncryptBlock)
}

// DecryptBlock inverts EncryptBlock.
func (s *Service) DecryptBlock(blockHex, keyHex string,
	delta uint32) fn.Result[string] {

	return s.cryptBlock("decryptblock", blockHex, keyHex, delta,
		tea.DecryptBlock)
}

// blockFunc is the signature shared by tea.EncryptBlock and tea.DecryptBlock.
type blockFunc func(codec.KeyWords, codec.Block, uint32) codec.Block

func (s *Service) cryptBlock(op, blockHex, keyHex string, delta uint32,
	f blockFunc) fn.Result[string] {

	log.Debugf("%v request with delta=%#08x", op, delta)

	key, err := ParseKeyHex(keyHex)
	if err != nil {
		return result(op, "", err)
	}

	k, err := codec.KeyToWords(key)
	if err != nil {
		return result(op, "", err)
	}

	block, err := parseBlockHex(blockHex)
	if err != nil {
		return result(op, "", err)
	}

	out := f(k, block, delta)

	return result(op, hex.EncodeToString(out[:]), nil)
}

// SessionConfig returns the stream session config the service was created
// with.
func (s *Service) SessionConfig() teastream.Config {
	return s.cfg.Stream
}
