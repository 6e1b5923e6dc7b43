package repository

import (
	"context"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
)

// SessionRepository stores per-visitor session state. Get returns
// ErrNotFound for unknown or expired ids.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, s *entity.Session) error
	Delete(ctx context.Context, id string) error
}
