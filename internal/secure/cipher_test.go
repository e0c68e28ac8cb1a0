package secure

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "8bytekey"

func TestNewCipher_KeyLength(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"exact 8 bytes", "8bytekey", false},
		{"too short", "short", true},
		{"too long", "way too long key", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, c)
			}
		})
	}
}

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	inputs := []string{
		"42",
		"user@example.com",
		"",
		"exactly8",          // one full block before padding
		"sixteen chars!!!",  // two full blocks
		"pässwörd with ünïcode",
		strings.Repeat("a", 100),
	}

	for _, in := range inputs {
		encrypted, err := c.Encrypt(in)
		require.NoError(t, err)
		assert.NotEqual(t, in, encrypted)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, in, decrypted)
	}
}

func TestCipher_Deterministic(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	first, err := c.Encrypt("same input")
	require.NoError(t, err)
	second, err := c.Encrypt("same input")
	require.NoError(t, err)

	// ECB mode with a fixed key always produces the same ciphertext, which is
	// what makes stored password proofs directly comparable.
	assert.Equal(t, first, second)
}

func TestCipher_OutputIsBase64(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	encrypted, err := c.Encrypt("hello")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	assert.Equal(t, 0, len(raw)%8, "ciphertext should be whole DES blocks")
}

func TestCipher_Decrypt_InvalidBase64(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	_, err = c.Decrypt("not valid base64!!!")
	require.Error(t, err)
}

func TestCipher_Decrypt_TruncatedCiphertext(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	// Valid base64 but not a whole number of blocks.
	_, err = c.Decrypt(base64.StdEncoding.EncodeToString([]byte("abc")))
	require.Error(t, err)
}

func TestCipher_Decrypt_WrongKey(t *testing.T) {
	c1, err := NewCipher(testKey)
	require.NoError(t, err)
	c2, err := NewCipher("otherkey")
	require.NoError(t, err)

	encrypted, err := c1.Encrypt("subject-42")
	require.NoError(t, err)

	// Decrypting with the wrong key almost always corrupts the padding.
	decrypted, err := c2.Decrypt(encrypted)
	if err == nil {
		assert.NotEqual(t, "subject-42", decrypted)
	}
}

func TestCipher_Decrypt_EmptyInput(t *testing.T) {
	c, err := NewCipher(testKey)
	require.NoError(t, err)

	_, err = c.Decrypt("")
	require.Error(t, err)
}
