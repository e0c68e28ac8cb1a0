package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedInspector extracts claims WITHOUT verifying the token signature.
// It exists for diagnostics and non-trust-critical inspection, such as pulling
// a correlation hint out of an incoming token before the full decode runs. It
// deliberately does not share a type with Codec so it cannot be substituted
// where verified decoding is required. Never use it to make an authorization
// decision.
type UnverifiedInspector struct{}

// Peek parses the token structure and returns its claims without checking the
// signature or expiry.
func (UnverifiedInspector) Peek(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return claims, nil
}

// PeekClaim returns a single named claim from an unverified token, or an
// empty string when absent.
func (i UnverifiedInspector) PeekClaim(tokenString, name string) (string, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	value, ok := claims[name].(string)
	if !ok {
		return "", nil
	}
	return value, nil
}
