// Package cryptox implements the encryption primitives used by the secure
// credential store: argon2id key stretching and AES-GCM sealing of stored
// values.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

const nonceSize = 12

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// DeriveKey stretches a secret and salt into a 32-byte AES-256 key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// Encrypt seals plaintext with AES-GCM under key. A fresh random 12-byte
// nonce is generated per call and prepended to the returned ciphertext.
//
// The key must be a valid AES key length (16, 24, or 32 bytes).
func Encrypt(plaintext []byte, key []byte) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt (nonce-prefixed AES-GCM) with the
// same key. Tampered or truncated input yields an error.
func Decrypt(data []byte, key []byte) ([]byte, error) {
	if len(data) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return aesgcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
}
