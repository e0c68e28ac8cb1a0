package repository

import (
	"context"

	"github.com/grimimirg/auth-middleware/internal/domain"
)

// UserStore defines the read-only lookup operations the authentication flow
// needs. The gateway never writes user records; account lifecycle is owned by
// the upstream user service.
type UserStore interface {
	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by their numeric identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
