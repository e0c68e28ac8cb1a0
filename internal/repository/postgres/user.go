package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/grimimirg/auth-middleware/internal/domain"
	"github.com/grimimirg/auth-middleware/pkg/apperrors"
)

// DB is the subset of pgxpool.Pool used by the user store. pgxmock satisfies
// it as well.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserStore implements repository.UserStore using PostgreSQL.
type UserStore struct {
	db DB
}

// NewUserStore creates a new PostgreSQL-backed user store.
func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// GetByEmail retrieves a user by their email address.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password, active, email_verified, created_at, updated_at
		FROM users
		WHERE email = $1`

	return s.scanUser(ctx, query, email)
}

// GetByID retrieves a user by their numeric identifier.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, email, password, active, email_verified, created_at, updated_at
		FROM users
		WHERE id = $1`

	return s.scanUser(ctx, query, id)
}

// scanUser executes a query expected to return a single user row.
func (s *UserStore) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User

	err := s.db.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordProof,
		&u.Active,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &u, nil
}
