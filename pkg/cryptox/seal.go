package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrSealedDataInvalid reports ciphertext that is truncated or fails
// authentication, which usually means the sealing key changed.
var ErrSealedDataInvalid = errors.New("cryptox: sealed data invalid")

// Sealer encrypts small secrets (bearer tokens) before they are written to
// durable storage, using ChaCha20-Poly1305 with a random nonce per seal.
// The output layout is [24-byte nonce][ciphertext+tag].
type Sealer struct {
	aead interface {
		Seal(dst, nonce, plaintext, additionalData []byte) []byte
		Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error)
	}
}

// NewSealer derives a sealing key from arbitrary key material via SHA-256
// and returns a ready Sealer.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("cryptox: empty key material")
	}

	key := sha256.Sum256(keyMaterial)
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	return &Sealer{aead: aead}, nil
}

// NewSealerFromFile loads key material in order of preference:
//  1. the file at path (if path is non-empty)
//  2. the CONSOLE_SESSION_KEY environment variable
//  3. a fresh ephemeral key (development only; sealed data will not
//     survive a restart)
func NewSealerFromFile(path string) (*Sealer, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read session key file: %w", err)
		}
		return NewSealer(data)
	}

	if envKey := os.Getenv("CONSOLE_SESSION_KEY"); envKey != "" {
		return NewSealer([]byte(envKey))
	}

	ephemeral := make([]byte, 32)
	if _, err := rand.Read(ephemeral); err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	return NewSealer(ephemeral)
}

// Seal encrypts plaintext and returns nonce-prefixed ciphertext.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < chacha20poly1305.NonceSizeX {
		return nil, ErrSealedDataInvalid
	}

	nonce, ciphertext := sealed[:chacha20poly1305.NonceSizeX], sealed[chacha20poly1305.NonceSizeX:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrSealedDataInvalid
	}

	return plaintext, nil
}
