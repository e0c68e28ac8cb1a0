package domain

// Verdict is the closed set of terminal results the authentication flow can
// produce for one request. Adding a variant requires bumping NumVerdicts,
// which in turn forces the response mapping to be extended.
type Verdict int

const (
	VerdictSuccess Verdict = iota
	VerdictInvalidToken
	VerdictNotFound
	VerdictNotActive
	VerdictNotVerified
	VerdictWrongPassword
	VerdictMalformedRequest
	VerdictInternalError

	// NumVerdicts is the number of Verdict variants above.
	NumVerdicts
)

// String returns the verdict name for logging.
func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return "success"
	case VerdictInvalidToken:
		return "invalid_token"
	case VerdictNotFound:
		return "not_found"
	case VerdictNotActive:
		return "user_not_active"
	case VerdictNotVerified:
		return "user_not_verified"
	case VerdictWrongPassword:
		return "wrong_password"
	case VerdictMalformedRequest:
		return "malformed_request"
	case VerdictInternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Outcome pairs a verdict with the token grant issued on success. Grant is
// non-nil if and only if Verdict is VerdictSuccess.
type Outcome struct {
	Verdict Verdict
	Grant   *TokenGrant
}

// Succeeded reports whether the outcome carries an issued token grant.
func (o Outcome) Succeeded() bool {
	return o.Verdict == VerdictSuccess
}
