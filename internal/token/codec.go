// Package token implements issuance and verification of the signed session
// tokens handed out by the gateway. Tokens are HS512 JWTs whose subject is an
// obfuscated account ID; refresh tokens additionally carry the password proof
// current at issuance time so a password change invalidates them.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grimimirg/auth-middleware/internal/secure"
)

// Decode failure classes. Callers branch on these with errors.Is.
var (
	ErrExpired          = errors.New("token: expired")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrMalformed        = errors.New("token: malformed")
)

// Claims is the claim set carried by every token issued by this service.
// Subject holds the obfuscated account ID. PasswordProof is set only on
// refresh tokens.
type Claims struct {
	Refresh       bool   `json:"refresh"`
	PasswordProof string `json:"password,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs, verifies, and subject-obfuscates session tokens.
type Codec struct {
	secret []byte
	cipher *secure.Cipher
	now    func() time.Time
}

// NewCodec creates a Codec from the signing secret and the subject cipher.
func NewCodec(secret string, cipher *secure.Cipher) *Codec {
	return &Codec{
		secret: []byte(secret),
		cipher: cipher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Encode signs a token for the given obfuscated subject. passwordProof must
// be empty for access tokens and the stored proof for refresh tokens.
func (c *Codec) Encode(subject string, expiresAt time.Time, refresh bool, passwordProof string) (string, error) {
	claims := &Claims{
		Refresh:       refresh,
		PasswordProof: passwordProof,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "auth-middleware",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies the signature and expiry of a token and returns its claims.
// Failures are classified as ErrExpired, ErrInvalidSignature, or ErrMalformed.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrMalformed)
	}

	return claims, nil
}

// ObfuscateSubject encodes a raw account ID into the form embedded as the
// token subject.
func (c *Codec) ObfuscateSubject(rawID string) (string, error) {
	obfuscated, err := c.cipher.Encrypt(rawID)
	if err != nil {
		return "", fmt.Errorf("obfuscate subject: %w", err)
	}
	return obfuscated, nil
}

// DeobfuscateSubject recovers the raw account ID from a token subject.
func (c *Codec) DeobfuscateSubject(subject string) (string, error) {
	rawID, err := c.cipher.Decrypt(subject)
	if err != nil {
		return "", fmt.Errorf("deobfuscate subject: %w", err)
	}
	return rawID, nil
}
