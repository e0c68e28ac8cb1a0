// Package secure implements the reversible transform used to obfuscate token
// subjects and to derive comparable password proofs. DES in ECB mode with
// PKCS#7 padding and base64 text encoding is retained for compatibility with
// tokens and stored proofs issued by earlier deployments; it is an encoding
// scheme here, not a confidentiality boundary.
package secure

import (
	"crypto/des"
	"encoding/base64"
	"fmt"
)

// KeySize is the required cipher key length in bytes.
const KeySize = 8

// Cipher applies a reversible DES/ECB transform with PKCS#7 padding,
// producing base64 text. The zero value is not usable; use NewCipher.
type Cipher struct {
	key []byte
}

// NewCipher creates a Cipher from an 8-byte key.
func NewCipher(key string) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("secure: key must be exactly %d bytes, got %d", KeySize, len(key))
	}
	return &Cipher{key: []byte(key)}, nil
}

// Encrypt transforms plaintext into a base64-encoded ciphertext string.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := des.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("secure: init cipher: %w", err)
	}

	padded := padPKCS7([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += block.BlockSize() {
		block.Encrypt(out[i:], padded[i:])
	}

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. It fails on invalid base64, ciphertext that is
// not a whole number of blocks, or corrupt padding.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("secure: decode base64: %w", err)
	}

	block, err := des.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("secure: init cipher: %w", err)
	}

	if len(raw) == 0 || len(raw)%block.BlockSize() != 0 {
		return "", fmt.Errorf("secure: ciphertext length %d is not a multiple of the block size", len(raw))
	}

	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i += block.BlockSize() {
		block.Decrypt(out[i:], raw[i:])
	}

	plain, err := unpadPKCS7(out, block.BlockSize())
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("secure: invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("secure: invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("secure: invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
