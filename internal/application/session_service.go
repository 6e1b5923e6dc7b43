package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// SessionService owns session lifecycle: anonymous start, identity binding
// on login, and teardown on logout.
type SessionService struct {
	Repo   repo.SessionRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewSessionService(r repo.SessionRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *SessionService {
	return &SessionService{Repo: r, JWT: jwt, Logger: logger}
}

// Load resolves a session token to its stored session.
func (s *SessionService) Load(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	sess, err := s.Repo.Get(ctx, claims.SessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Start creates and stores an anonymous session with an empty cart.
func (s *SessionService) Start(ctx context.Context) (*entity.Session, error) {
	now := time.Now().UTC()
	sess := &entity.Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := s.Repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Issue signs a token for the session.
func (s *SessionService) Issue(sess *entity.Session) (string, time.Time, error) {
	return s.JWT.GenerateSessionToken(sess.ID)
}

func (s *SessionService) Save(ctx context.Context, sess *entity.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	return s.Repo.Save(ctx, sess)
}

// Login binds u to a fresh session id carrying over the cart, and discards
// the previous id.
func (s *SessionService) Login(ctx context.Context, sess *entity.Session, u *entity.User) (*entity.Session, error) {
	now := time.Now().UTC()
	next := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Role:      u.Role,
		Cart:      sess.Cart,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Save(ctx, next); err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, sess.ID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("session_id", sess.ID).Warn("failed to drop pre-login session")
	}
	return next, nil
}

// Logout clears identity and cart and removes the session.
func (s *SessionService) Logout(ctx context.Context, sess *entity.Session) error {
	sess.Forget()
	return s.Repo.Delete(ctx, sess.ID)
}
