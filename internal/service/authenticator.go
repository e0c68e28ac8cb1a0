// Package service implements the authentication decision flow: given parsed
// credentials it resolves the account, walks the eligibility gates, and either
// issues a fresh token pair or produces a typed denial verdict. Every branch
// terminates in a domain.Outcome; nothing here returns an error across the
// package boundary.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/grimimirg/auth-middleware/internal/domain"
	"github.com/grimimirg/auth-middleware/internal/repository"
	"github.com/grimimirg/auth-middleware/internal/token"
	"github.com/grimimirg/auth-middleware/pkg/apperrors"
)

// EventPublisher receives session lifecycle notifications. Publishing is
// best-effort; failures are logged and never change the outcome.
type EventPublisher interface {
	PublishSessionAuthenticated(ctx context.Context, userID int64, email string, refresh bool) error
	PublishSessionDenied(ctx context.Context, identifier, reason string) error
}

// Authenticator runs the authentication flow for one request at a time. It is
// stateless and safe for concurrent use.
type Authenticator struct {
	store      repository.UserStore
	codec      *token.Codec
	verifier   *Verifier
	events     EventPublisher
	logger     *slog.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time
}

// NewAuthenticator creates an Authenticator. events may be nil when event
// publishing is disabled.
func NewAuthenticator(
	store repository.UserStore,
	codec *token.Codec,
	verifier *Verifier,
	events EventPublisher,
	logger *slog.Logger,
	accessTTL, refreshTTL time.Duration,
) *Authenticator {
	return &Authenticator{
		store:      store,
		codec:      codec,
		verifier:   verifier,
		events:     events,
		logger:     logger,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Authenticate resolves the credentials to a terminal outcome. Refresh-token
// credentials are a distinct variant, so the refresh path can never be
// shadowed by password fields in the same request.
func (s *Authenticator) Authenticate(ctx context.Context, creds domain.Credentials) domain.Outcome {
	var outcome domain.Outcome
	var identifier string

	switch c := creds.(type) {
	case domain.RefreshCredentials:
		outcome = s.authenticateRefresh(ctx, c)
	case domain.PasswordCredentials:
		identifier = c.Username
		outcome = s.authenticatePassword(ctx, c)
	default:
		outcome = domain.Outcome{Verdict: domain.VerdictMalformedRequest}
	}

	s.report(ctx, identifier, outcome)
	return outcome
}

// authenticateRefresh handles the refresh-token path. Any decode failure,
// including expiry and an undecipherable subject, terminates in InvalidToken
// before the store is consulted.
func (s *Authenticator) authenticateRefresh(ctx context.Context, creds domain.RefreshCredentials) domain.Outcome {
	claims, err := s.codec.Decode(creds.Token)
	if err != nil {
		s.logger.DebugContext(ctx, "refresh token rejected",
			slog.String("error", err.Error()),
		)
		return domain.Outcome{Verdict: domain.VerdictInvalidToken}
	}

	if !claims.Refresh {
		// An access token presented on the refresh path.
		return domain.Outcome{Verdict: domain.VerdictInvalidToken}
	}

	rawID, err := s.codec.DeobfuscateSubject(claims.Subject)
	if err != nil {
		return domain.Outcome{Verdict: domain.VerdictInvalidToken}
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return domain.Outcome{Verdict: domain.VerdictInvalidToken}
	}

	user, err := s.store.GetByID(ctx, userID)
	if verdict, ok := lookupVerdict(err); !ok {
		return domain.Outcome{Verdict: verdict}
	}

	if verdict, ok := eligibilityVerdict(user); !ok {
		return domain.Outcome{Verdict: verdict}
	}

	changed, err := s.verifier.SecretChanged(ctx, user.ID, claims.PasswordProof)
	if err != nil {
		s.logger.ErrorContext(ctx, "proof comparison failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return domain.Outcome{Verdict: domain.VerdictInternalError}
	}
	if changed {
		return domain.Outcome{Verdict: domain.VerdictWrongPassword}
	}

	return s.issue(ctx, user)
}

// authenticatePassword handles the username/password path.
func (s *Authenticator) authenticatePassword(ctx context.Context, creds domain.PasswordCredentials) domain.Outcome {
	user, err := s.store.GetByEmail(ctx, creds.Username)
	if verdict, ok := lookupVerdict(err); !ok {
		return domain.Outcome{Verdict: verdict}
	}

	if verdict, ok := eligibilityVerdict(user); !ok {
		return domain.Outcome{Verdict: verdict}
	}

	proof, err := s.verifier.Proof(creds.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "password transform failed",
			slog.String("error", err.Error()),
		)
		return domain.Outcome{Verdict: domain.VerdictInternalError}
	}

	if proof != user.PasswordProof {
		return domain.Outcome{Verdict: domain.VerdictWrongPassword}
	}

	return s.issue(ctx, user)
}

// issue generates a fresh access and refresh token pair for the resolved
// user. The refresh token carries the proof current at issuance time.
func (s *Authenticator) issue(ctx context.Context, user *domain.User) domain.Outcome {
	subject, err := s.codec.ObfuscateSubject(strconv.FormatInt(user.ID, 10))
	if err != nil {
		s.logger.ErrorContext(ctx, "subject obfuscation failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return domain.Outcome{Verdict: domain.VerdictInternalError}
	}

	now := s.now()
	accessExpiry := now.Add(s.accessTTL)
	refreshExpiry := now.Add(s.refreshTTL)

	accessToken, err := s.codec.Encode(subject, accessExpiry, false, "")
	if err != nil {
		s.logger.ErrorContext(ctx, "access token signing failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return domain.Outcome{Verdict: domain.VerdictInternalError}
	}

	refreshToken, err := s.codec.Encode(subject, refreshExpiry, true, user.PasswordProof)
	if err != nil {
		s.logger.ErrorContext(ctx, "refresh token signing failed",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
		return domain.Outcome{Verdict: domain.VerdictInternalError}
	}

	return domain.Outcome{
		Verdict: domain.VerdictSuccess,
		Grant: &domain.TokenGrant{
			AccessToken:  accessToken,
			UserID:       user.ID,
			ExpiresOn:    accessExpiry,
			RefreshToken: refreshToken,
		},
	}
}

// report logs the outcome and publishes the corresponding session event.
func (s *Authenticator) report(ctx context.Context, identifier string, outcome domain.Outcome) {
	if outcome.Succeeded() {
		s.logger.InfoContext(ctx, "authentication succeeded",
			slog.Int64("user_id", outcome.Grant.UserID),
		)
		if s.events != nil {
			refresh := identifier == ""
			if err := s.events.PublishSessionAuthenticated(ctx, outcome.Grant.UserID, identifier, refresh); err != nil {
				s.logger.WarnContext(ctx, "failed to publish session.authenticated event",
					slog.String("error", err.Error()),
				)
			}
		}
		return
	}

	s.logger.InfoContext(ctx, "authentication denied",
		slog.String("verdict", outcome.Verdict.String()),
	)
	if s.events != nil {
		if err := s.events.PublishSessionDenied(ctx, identifier, outcome.Verdict.String()); err != nil {
			s.logger.WarnContext(ctx, "failed to publish session.denied event",
				slog.String("error", err.Error()),
			)
		}
	}
}

// lookupVerdict converts a store lookup error into a gate verdict. ok is true
// when the lookup succeeded.
func lookupVerdict(err error) (domain.Verdict, bool) {
	switch {
	case err == nil:
		return 0, true
	case errors.Is(err, apperrors.ErrNotFound):
		return domain.VerdictNotFound, false
	default:
		return domain.VerdictInternalError, false
	}
}

// eligibilityVerdict walks the active and verified gates in order. ok is true
// when the user passes both.
func eligibilityVerdict(user *domain.User) (domain.Verdict, bool) {
	if !user.Active {
		return domain.VerdictNotActive, false
	}
	if !user.EmailVerified {
		return domain.VerdictNotVerified, false
	}
	return 0, true
}
