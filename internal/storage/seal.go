package storage

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Argon2id parameters for deriving the file key from a passphrase.
const (
	sealSaltSize    = 16
	sealArgonTime   = 1
	sealArgonMemory = 64 * 1024 // KiB
	sealArgonLanes  = 4
)

var errSealedTooShort = errors.New("sealed payload too short")

// sealer encrypts payloads with XChaCha20-Poly1305 under a passphrase.
//
// Each payload carries its own salt and nonce:
//
//	salt(16) | nonce(24) | ciphertext+tag
type sealer struct {
	passphrase []byte
}

func newSealer(passphrase string) *sealer {
	if passphrase == "" {
		return nil
	}
	return &sealer{passphrase: []byte(passphrase)}
}

func (s *sealer) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(s.passphrase, salt, sealArgonTime, sealArgonMemory, sealArgonLanes, chacha20poly1305.KeySize)
	return chacha20poly1305.NewX(key)
}

// Seal encrypts plaintext, binding it to additionalData.
func (s *sealer) Seal(plaintext, additionalData []byte) ([]byte, error) {
	salt := make([]byte, sealSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("seal: salt: %w", err)
	}
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("seal: nonce: %w", err)
	}

	out := make([]byte, 0, len(salt)+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, additionalData), nil
}

// Open decrypts a payload produced by Seal.
func (s *sealer) Open(sealed, additionalData []byte) ([]byte, error) {
	if len(sealed) < sealSaltSize+chacha20poly1305.NonceSizeX {
		return nil, errSealedTooShort
	}
	salt := sealed[:sealSaltSize]
	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := sealed[sealSaltSize : sealSaltSize+aead.NonceSize()]
	return aead.Open(nil, nonce, sealed[sealSaltSize+aead.NonceSize():], additionalData)
}
