package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/grimimirg/auth-middleware/internal/domain"
	"github.com/grimimirg/auth-middleware/internal/response"
	"github.com/grimimirg/auth-middleware/pkg/validator"
)

// AuthService is the authentication flow the handler delegates to.
type AuthService interface {
	Authenticate(ctx context.Context, creds domain.Credentials) domain.Outcome
}

// AuthHandler handles HTTP requests for the authenticate endpoint.
type AuthHandler struct {
	service AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(svc AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{service: svc, logger: logger}
}

// AuthenticateRequest is the JSON request body for authentication. Either a
// username/password pair or a refresh token must be supplied.
type AuthenticateRequest struct {
	Username     string `json:"username" validate:"required_without=RefreshToken"`
	Password     string `json:"password" validate:"required_without=RefreshToken"`
	RefreshToken string `json:"refresh_token" validate:"required_without_all=Username Password"`
}

// AuthenticateResponse is the JSON success body.
type AuthenticateResponse struct {
	AccessToken  string `json:"access_token"`
	UserID       int64  `json:"user_id"`
	ExpiresOn    string `json:"expires_on"`
	RefreshToken string `json:"refresh_token"`
}

// Authenticate handles POST /api/v1/authenticate
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIResponse(w, response.MissingParameter)
		return
	}

	if err := validator.Validate(req); err != nil {
		writeAPIResponse(w, response.MissingParameter)
		return
	}

	creds, ok := req.credentials()
	if !ok {
		writeAPIResponse(w, response.MissingParameter)
		return
	}

	outcome := h.service.Authenticate(r.Context(), creds)
	if !outcome.Succeeded() {
		writeAPIResponse(w, response.ForVerdict(outcome.Verdict))
		return
	}

	writeJSON(w, http.StatusOK, AuthenticateResponse{
		AccessToken:  outcome.Grant.AccessToken,
		UserID:       outcome.Grant.UserID,
		ExpiresOn:    outcome.Grant.ExpiresOn.Format(time.RFC3339),
		RefreshToken: outcome.Grant.RefreshToken,
	})
}

// credentials converts the request body into the credentials variant. A
// refresh token takes precedence over password fields when both are present.
func (r AuthenticateRequest) credentials() (domain.Credentials, bool) {
	if r.RefreshToken != "" {
		return domain.RefreshCredentials{Token: r.RefreshToken}, true
	}
	if r.Username != "" && r.Password != "" {
		return domain.PasswordCredentials{Username: r.Username, Password: r.Password}, true
	}
	return nil, false
}
