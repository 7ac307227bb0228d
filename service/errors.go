package service

import (
	"errors"

	"github.com/lightningnetwork/teakit/codec"
	"github.com/lightningnetwork/teakit/teastream"
)

var (
	// ErrInvalidKeyHex is returned when a key isn't valid hex.
	ErrInvalidKeyHex = errors.New("key must be hex encoded")

	// ErrInvalidBlockHex is returned when a block isn't valid hex.
	ErrInvalidBlockHex = errors.New("block must be hex encoded")
)

// Kind classifies the errors a request can fail with.
type Kind uint8

const (
	// KindNone is the kind of a nil error.
	KindNone Kind = iota

	// KindInvalidKeyLength means the key wasn't exactly 16 bytes.
	KindInvalidKeyLength

	// KindInvalidEncoding means a key or block wasn't valid hex.
	KindInvalidEncoding

	// KindInvalidBlockLength means a block wasn't exactly 8 bytes.
	KindInvalidBlockLength

	// KindInvalidCiphertextEncoding means a ciphertext wasn't valid hex or
	// wasn't a whole number of blocks.
	KindInvalidCiphertextEncoding

	// KindValueOutOfRange means a value didn't fit into a 32-bit word.
	// No request can produce it, since all word arithmetic wraps.
	KindValueOutOfRange

	// KindUnknown is any other error.
	KindUnknown
)

// String returns a human readable name of the error kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindInvalidKeyLength:
		return "InvalidKeyLength"
	case KindInvalidEncoding:
		return "InvalidEncoding"
	case KindInvalidBlockLength:
		return "InvalidBlockLength"
	case KindInvalidCiphertextEncoding:
		return "InvalidCiphertextEncoding"
	case KindValueOutOfRange:
		return "ValueOutOfRange"
	default:
		return "Unknown"
	}
}

// KindOf maps err onto its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone

	case errors.Is(err, codec.ErrInvalidKeyLength):
		return KindInvalidKeyLength

	case errors.Is(err, ErrInvalidKeyHex),
		errors.Is(err, ErrInvalidBlockHex):

		return KindInvalidEncoding

	case errors.Is(err, codec.ErrInvalidBlockLength):
		return KindInvalidBlockLength

	case errors.Is(err, teastream.ErrInvalidCiphertextEncoding):
		return KindInvalidCiphertextEncoding

	case errors.Is(err, codec.ErrValueOutOfRange):
		return KindValueOutOfRange

	default:
		return KindUnknown
	}
}
