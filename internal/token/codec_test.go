package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimimirg/auth-middleware/internal/secure"
)

const (
	testSecret    = "test-signing-secret-at-least-32b"
	testCipherKey = "8bytekey"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	cipher, err := secure.NewCipher(testCipherKey)
	require.NoError(t, err)
	return NewCodec(testSecret, cipher)
}

func TestCodec_EncodeDecode_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)
	expiresAt := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)

	signed, err := codec.Encode("obfuscated-42", expiresAt, true, "stored-proof")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "obfuscated-42", claims.Subject)
	assert.True(t, claims.Refresh)
	assert.Equal(t, "stored-proof", claims.PasswordProof)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestCodec_AccessToken_OmitsProof(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Encode("obfuscated-42", time.Now().Add(time.Hour), false, "")
	require.NoError(t, err)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.False(t, claims.Refresh)
	assert.Empty(t, claims.PasswordProof)
}

func TestCodec_Decode_Expired(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Encode("obfuscated-42", time.Now().Add(-time.Hour), true, "proof")
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestCodec_Decode_TamperedSignature(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Encode("obfuscated-42", time.Now().Add(time.Hour), false, "")
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	tampered := []byte(signed)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.Decode(string(tampered))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	cipher, err := secure.NewCipher(testCipherKey)
	require.NoError(t, err)

	issuer := NewCodec("one-signing-secret-for-issuing!!!", cipher)
	verifier := NewCodec("another-secret-used-for-decode!!!", cipher)

	signed, err := issuer.Encode("obfuscated-42", time.Now().Add(time.Hour), false, "")
	require.NoError(t, err)

	_, err = verifier.Decode(signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec := newTestCodec(t)

	for _, input := range []string{"", "not a token", "a.b", "a.b.c.d"} {
		_, err := codec.Decode(input)
		require.Error(t, err, "input %q should not decode", input)
		assert.ErrorIs(t, err, ErrMalformed)
	}
}

func TestCodec_Decode_RejectsNonHS512(t *testing.T) {
	codec := newTestCodec(t)

	// A token signed with HS256 must be rejected even though the key matches.
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "obfuscated-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = codec.Decode(signed)
	require.Error(t, err)
}

func TestCodec_Decode_ExpiryCheckedEvenWithValidSignature(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Encode("obfuscated-42", time.Now().Add(-time.Minute), false, "")
	require.NoError(t, err)

	// The signature is genuine, so failure must be attributed to expiry.
	_, err = codec.Decode(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCodec_Decode_ExpiryUsesInjectedClock(t *testing.T) {
	codec := newTestCodec(t)

	// Pin the codec's clock to a fixed instant far from the wall clock. Expiry
	// must be judged against the pinned clock, never against time.Now.
	pinned := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return pinned }

	signed, err := codec.Encode("obfuscated-42", pinned.Add(time.Hour), true, "proof")
	require.NoError(t, err)

	claims, err := codec.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "obfuscated-42", claims.Subject)

	codec.now = func() time.Time { return pinned.Add(2 * time.Hour) }
	_, err = codec.Decode(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestCodec_SubjectObfuscation_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	obfuscated, err := codec.ObfuscateSubject("42")
	require.NoError(t, err)
	assert.NotEqual(t, "42", obfuscated)

	rawID, err := codec.DeobfuscateSubject(obfuscated)
	require.NoError(t, err)
	assert.Equal(t, "42", rawID)
}

func TestCodec_DeobfuscateSubject_Garbage(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.DeobfuscateSubject("definitely not ciphertext")
	require.Error(t, err)
}

func TestUnverifiedInspector_Peek(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Encode("obfuscated-42", time.Now().Add(time.Hour), true, "proof")
	require.NoError(t, err)

	var inspector UnverifiedInspector
	claims, err := inspector.Peek(signed)
	require.NoError(t, err)
	assert.Equal(t, "obfuscated-42", claims.Subject)
	assert.True(t, claims.Refresh)
}

func TestUnverifiedInspector_Peek_IgnoresSignature(t *testing.T) {
	// The inspector reads claims even when the token was signed with a key
	// this service does not hold. That is exactly why it must never gate
	// anything.
	cipher, err := secure.NewCipher(testCipherKey)
	require.NoError(t, err)
	foreign := NewCodec("some-foreign-secret-we-never-had", cipher)

	signed, err := foreign.Encode("obfuscated-99", time.Now().Add(time.Hour), false, "")
	require.NoError(t, err)

	var inspector UnverifiedInspector
	claims, err := inspector.Peek(signed)
	require.NoError(t, err)
	assert.Equal(t, "obfuscated-99", claims.Subject)
}

func TestUnverifiedInspector_PeekClaim(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Encode("obfuscated-7", time.Now().Add(time.Hour), true, "proof")
	require.NoError(t, err)

	var inspector UnverifiedInspector

	sub, err := inspector.PeekClaim(signed, "sub")
	require.NoError(t, err)
	assert.Equal(t, "obfuscated-7", sub)

	missing, err := inspector.PeekClaim(signed, "no_such_claim")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestUnverifiedInspector_Peek_Malformed(t *testing.T) {
	var inspector UnverifiedInspector
	_, err := inspector.Peek("garbage")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}
