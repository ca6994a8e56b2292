// Package crypt seals short values (session ids, opaque cookies) with
// AES-256-GCM. Output is base64url(nonce || ciphertext || tag), safe for
// cookies and URLs.
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/shashiranjanraj/storefront/config"
)

// ErrDecrypt is returned for malformed, tampered or foreign ciphertext.
var ErrDecrypt = errors.New("crypt: decryption failed")

// Box seals and opens values under one key.
type Box struct {
	aead cipher.AEAD
}

// NewBox derives a 256-bit key from secret with SHA-256.
func NewBox(secret string) (*Box, error) {
	if secret == "" {
		return nil, errors.New("crypt: empty secret")
	}

	k := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, fmt.Errorf("crypt: new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypt: new GCM: %w", err)
	}
	return &Box{aead: gcm}, nil
}

// Seal encrypts data with a fresh random nonce.
func (b *Box) Seal(data []byte) (string, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("crypt: nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b.aead.Seal(nonce, nonce, data, nil)), nil
}

// Open reverses Seal.
func (b *Box) Open(encoded string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrDecrypt
	}

	n := b.aead.NonceSize()
	if len(data) < n+b.aead.Overhead() {
		return nil, ErrDecrypt
	}

	plain, err := b.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// Encrypt seals plaintext under APP_KEY, falling back to SECRET_KEY.
func Encrypt(plaintext string) (string, error) {
	b, err := appBox()
	if err != nil {
		return "", err
	}
	return b.Seal([]byte(plaintext))
}

// Decrypt opens a value produced by Encrypt.
func Decrypt(encoded string) (string, error) {
	b, err := appBox()
	if err != nil {
		return "", err
	}
	plain, err := b.Open(encoded)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func appBox() (*Box, error) {
	return NewBox(config.Get("APP_KEY", config.SecretKey()))
}
