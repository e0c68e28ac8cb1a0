package service

import (
	"context"
	"fmt"

	"github.com/grimimirg/auth-middleware/internal/repository"
	"github.com/grimimirg/auth-middleware/internal/secure"
)

// Verifier compares supplied passwords against stored proofs. Both sides of
// the comparison are reversible-transform encodings, so equality of proofs is
// equality of passwords.
type Verifier struct {
	cipher *secure.Cipher
	store  repository.UserStore
}

// NewVerifier creates a Verifier backed by the given cipher and user store.
func NewVerifier(cipher *secure.Cipher, store repository.UserStore) *Verifier {
	return &Verifier{
		cipher: cipher,
		store:  store,
	}
}

// Proof transforms a plaintext password into its stored-proof form.
func (v *Verifier) Proof(password string) (string, error) {
	proof, err := v.cipher.Encrypt(password)
	if err != nil {
		return "", fmt.Errorf("derive password proof: %w", err)
	}
	return proof, nil
}

// Verify reports whether the supplied password matches the stored proof. A
// transform failure counts as a mismatch, never as a bypass.
func (v *Verifier) Verify(password, storedProof string) bool {
	proof, err := v.cipher.Encrypt(password)
	if err != nil {
		return false
	}
	return proof == storedProof
}

// SecretChanged reports whether the user's current stored proof differs from
// the given proof. Used to invalidate refresh tokens issued before a password
// change.
func (v *Verifier) SecretChanged(ctx context.Context, userID int64, proof string) (bool, error) {
	user, err := v.store.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("fetch current proof for user %d: %w", userID, err)
	}
	return user.PasswordProof != proof, nil
}
