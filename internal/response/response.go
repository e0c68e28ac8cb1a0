// Package response defines the closed table of API response codes shared with
// gateway clients, and the mapping from authentication verdicts onto it. The
// numeric codes and messages are a wire contract; never renumber or reword an
// existing entry.
package response

import (
	"net/http"

	"github.com/grimimirg/auth-middleware/internal/domain"
)

// APIResponse is the fixed (code, http_code, message) triple returned for
// every non-success outcome, and for bare acknowledgements.
type APIResponse struct {
	Code     int    `json:"code"`
	HTTPCode string `json:"http_code"`
	Message  string `json:"message"`
}

// The complete response-code table. Codes are stable across services; this
// gateway only ever emits a subset, but the full enumeration is kept so codes
// stay unique.
var (
	OK                         = APIResponse{Code: 1, HTTPCode: "200", Message: "OK"}
	InternalServerError        = APIResponse{Code: 2, HTTPCode: "500", Message: "Internal server error"}
	MissingParameter           = APIResponse{Code: 3, HTTPCode: "400", Message: "Required parameter missing"}
	MissingClientIDHeader      = APIResponse{Code: 4, HTTPCode: "403", Message: "The request doesn't contain a correct header with the client id"}
	MissingJWTHeader           = APIResponse{Code: 5, HTTPCode: "403", Message: "JWT token missing in the request"}
	InvalidJWTToken            = APIResponse{Code: 6, HTTPCode: "403", Message: "The request contains an invalid JWT token"}
	ExpiredJWTToken            = APIResponse{Code: 7, HTTPCode: "403", Message: "The request contains an expired JWT token"}
	NotFound                   = APIResponse{Code: 8, HTTPCode: "404", Message: "The content requested can't be found"}
	UserAlreadyExists          = APIResponse{Code: 9, HTTPCode: "409", Message: "The user already exists"}
	WrongPassword              = APIResponse{Code: 10, HTTPCode: "401", Message: "Wrong password"}
	Unauthorized               = APIResponse{Code: 11, HTTPCode: "401", Message: "User unauthorized"}
	ChangePasswordNotAvailable = APIResponse{Code: 12, HTTPCode: "401", Message: "Change password not available"}
	UserNotVerified            = APIResponse{Code: 13, HTTPCode: "401", Message: "Email exists but it hasn't yet been verified"}
	UserNotActive              = APIResponse{Code: 14, HTTPCode: "401", Message: "User not active"}
	UserCannotBeFound          = APIResponse{Code: 15, HTTPCode: "404", Message: "User cannot be found"}
	InvalidInputValue          = APIResponse{Code: 16, HTTPCode: "400", Message: "Invalid input value"}
)

// All lists every entry of the response-code table in code order.
func All() []APIResponse {
	return []APIResponse{
		OK, InternalServerError, MissingParameter, MissingClientIDHeader,
		MissingJWTHeader, InvalidJWTToken, ExpiredJWTToken, NotFound,
		UserAlreadyExists, WrongPassword, Unauthorized, ChangePasswordNotAvailable,
		UserNotVerified, UserNotActive, UserCannotBeFound, InvalidInputValue,
	}
}

// Compile-time guard: if a verdict is added to the domain enum, this index
// expression stops compiling until ForVerdict below is extended.
var _ = [1]struct{}{}[int(domain.NumVerdicts)-8]

// ForVerdict maps an authentication verdict to its response table entry. The
// mapping is total over domain.Verdict; see the guard above.
func ForVerdict(v domain.Verdict) APIResponse {
	switch v {
	case domain.VerdictSuccess:
		return OK
	case domain.VerdictInvalidToken:
		return InvalidJWTToken
	case domain.VerdictNotFound:
		return NotFound
	case domain.VerdictNotActive:
		return UserNotActive
	case domain.VerdictNotVerified:
		return UserNotVerified
	case domain.VerdictWrongPassword:
		return WrongPassword
	case domain.VerdictMalformedRequest:
		return MissingParameter
	case domain.VerdictInternalError:
		return InternalServerError
	default:
		// Unreachable while the guard above holds.
		return InternalServerError
	}
}

// StatusCode returns the numeric HTTP status for the entry.
func (r APIResponse) StatusCode() int {
	switch r.HTTPCode {
	case "200":
		return http.StatusOK
	case "400":
		return http.StatusBadRequest
	case "401":
		return http.StatusUnauthorized
	case "403":
		return http.StatusForbidden
	case "404":
		return http.StatusNotFound
	case "409":
		return http.StatusConflict
	case "500":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
