package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/grimimirg/auth-middleware/internal/domain"
	"github.com/grimimirg/auth-middleware/internal/secure"
)

func newTestVerifier(t *testing.T) (*Verifier, *mockUserStore, *secure.Cipher) {
	t.Helper()
	cipher, err := secure.NewCipher(fixtureCipherKey)
	require.NoError(t, err)
	store := &mockUserStore{}
	return NewVerifier(cipher, store), store, cipher
}

func TestVerifier_Proof_MatchesCipher(t *testing.T) {
	v, _, cipher := newTestVerifier(t)

	proof, err := v.Proof("pw1")
	require.NoError(t, err)

	expected, err := cipher.Encrypt("pw1")
	require.NoError(t, err)
	assert.Equal(t, expected, proof)
}

func TestVerifier_Verify(t *testing.T) {
	v, _, cipher := newTestVerifier(t)

	storedProof, err := cipher.Encrypt("pw1")
	require.NoError(t, err)

	assert.True(t, v.Verify("pw1", storedProof))
	assert.False(t, v.Verify("pw2", storedProof))
	assert.False(t, v.Verify("", storedProof))
}

func TestVerifier_Verify_Pure(t *testing.T) {
	v, _, cipher := newTestVerifier(t)

	storedProof, err := cipher.Encrypt("pw1")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.True(t, v.Verify("pw1", storedProof))
	}
}

func TestVerifier_SecretChanged(t *testing.T) {
	v, store, cipher := newTestVerifier(t)

	currentProof, err := cipher.Encrypt("current")
	require.NoError(t, err)
	staleProof, err := cipher.Encrypt("stale")
	require.NoError(t, err)

	user := &domain.User{ID: 42, PasswordProof: currentProof, Active: true, EmailVerified: true}
	store.On("GetByID", mock.Anything, int64(42)).Return(user, nil)

	changed, err := v.SecretChanged(context.Background(), 42, currentProof)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = v.SecretChanged(context.Background(), 42, staleProof)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestVerifier_SecretChanged_StoreError(t *testing.T) {
	v, store, _ := newTestVerifier(t)

	store.On("GetByID", mock.Anything, int64(7)).Return(nil, errors.New("timeout"))

	_, err := v.SecretChanged(context.Background(), 7, "proof")
	require.Error(t, err)
}
