package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the storage operations of the account directory.
// Lookups return ErrNotFound when nothing matches.
type UserRepository interface {
	// Create assigns the next identifier (max existing + 1, or 1) and stores u.
	// It returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int) (*entity.User, error)
	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByLogin matches username or email case-insensitively.
	GetByLogin(ctx context.Context, identifier string) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
}
