// Package seal encrypts captured fingerprints for transport through parties
// that must neither read nor alter them.
//
// A sealed record is laid out as:
//
//	[Nonce: 12 bytes (random)] [Ciphertext: N bytes] [Poly1305 tag: 16 bytes]
//
// The cipher is ChaCha20-Poly1305 (RFC 8439) under a single long-lived 256-bit
// key, with no additional authenticated data. Consumers recover the plaintext
// by splitting off the first NonceSize bytes and opening the remainder with
// the same key. This package only seals; there is no open path in the service.
package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the required key length in bytes.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the length of the random nonce prefix.
	NonceSize = chacha20poly1305.NonceSize
	// Overhead is the length of the authentication tag appended to the ciphertext.
	Overhead = chacha20poly1305.Overhead
)

// maxPlaintextSize is the largest message ChaCha20-Poly1305 accepts under a
// 96-bit nonce: 2^32-1 blocks of 64 bytes, minus the block used for the
// Poly1305 key.
const maxPlaintextSize = (1 << 38) - 64

var (
	// ErrInvalidKeyLength is returned by New when the key is not KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid encryption key length")
	// ErrSealFailed wraps every failure of Seal.
	ErrSealFailed = errors.New("sealing failed")
)

// Sealer holds the process-wide AEAD. It is immutable after New and safe for
// concurrent use.
type Sealer struct {
	aead   cipher.AEAD
	random io.Reader
}

// Option configures a Sealer.
type Option func(*Sealer)

// WithRandom replaces the nonce source. The default is crypto/rand.Reader.
func WithRandom(r io.Reader) Option {
	return func(s *Sealer) {
		if r != nil {
			s.random = r
		}
	}
}

// New builds a Sealer for key. The key bytes are copied into the cipher
// state; the caller may clear its slice afterwards.
func New(key []byte, opts ...Option) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(key), KeySize)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("creating ChaCha20-Poly1305 cipher: %w", err)
	}

	s := &Sealer{
		aead:   aead,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Seal encrypts plaintext under a fresh random nonce and returns
// nonce || ciphertext || tag in one buffer.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	if uint64(len(plaintext)) > maxPlaintextSize {
		return nil, fmt.Errorf("%w: plaintext is %d bytes, maximum is %d", ErrSealFailed, len(plaintext), uint64(maxPlaintextSize))
	}

	var nonce [NonceSize]byte
	if _, err := io.ReadFull(s.random, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: generating random nonce: %w", ErrSealFailed, err)
	}

	output := make([]byte, NonceSize, NonceSize+len(plaintext)+s.aead.Overhead())
	copy(output, nonce[:])

	// Seal appends ciphertext+tag after the nonce.
	return s.aead.Seal(output, nonce[:], plaintext, nil), nil
}
