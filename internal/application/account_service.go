package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/fashion-storefront/config"
	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	repo "github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
	"github.com/oksasatya/fashion-storefront/pkg/mailer"
	tpl "github.com/oksasatya/fashion-storefront/pkg/mailer/templates"
)

// AccountService is the account directory: registration, authentication
// and lookups. It also serves a user's purchase history.
type AccountService struct {
	Repo      repo.UserRepository
	Purchases repo.PurchaseRepository
	Publisher JobPublisher // optional
	Cfg       *config.Config
	Logger    *logrus.Logger
	HashCost  int

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(users repo.UserRepository, purchases repo.PurchaseRepository, pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *AccountService {
	return &AccountService{
		Repo:      users,
		Purchases: purchases,
		Publisher: pub,
		Cfg:       cfg,
		Logger:    logger,
		HashCost:  bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Profile         entity.Profile
}

// Register validates the input, enforces case-insensitive email uniqueness
// and stores a bcrypt hash of the password.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		return nil, ErrFieldsMissing
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPasswordCost(in.Password, s.cost())
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		Role:             entity.RoleUser,
		Gender:           in.Profile.Gender,
		Age:              in.Profile.Age,
		Location:         in.Profile.Location,
		PreferredColor:   in.Profile.PreferredColor,
		PreferredBrand:   in.Profile.PreferredBrand,
		FavoriteCategory: in.Profile.FavoriteCategory,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	helpers.Registrations.Add(1)
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	s.welcome(ctx, u)
	return u, nil
}

// Authenticate accepts a username or email. Unknown identifiers and wrong
// passwords produce the same ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, identifier, password string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByLogin(ctx, identifier)
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).Warn("user lookup failed during authentication")
		}
		// spend comparable time on unknown identifiers
		helpers.CompareHashAndPassword(s.dummy(), password)
		helpers.FailedLogins.Add(1)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		helpers.FailedLogins.Add(1)
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and stamps last_login. A failed stamp is logged only.
func (s *AccountService) Login(ctx context.Context, identifier, password string) (*entity.User, error) {
	u, err := s.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.Repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("update last_login failed")
		}
	} else {
		u.LastLogin = now
	}
	helpers.Logins.Add(1)
	return u, nil
}

func (s *AccountService) FindByID(ctx context.Context, id int) (*entity.User, error) {
	return s.lookup(s.Repo.GetByID(ctx, id))
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.lookup(s.Repo.GetByEmail(ctx, email))
}

// History returns the user's purchases in insertion order. Storage errors
// degrade to an empty history.
func (s *AccountService) History(ctx context.Context, userID int) []entity.PurchaseRecord {
	list, err := s.Purchases.History(ctx, userID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("purchase history unavailable")
		}
		return []entity.PurchaseRecord{}
	}
	return list
}

func (s *AccountService) lookup(u *entity.User, err error) (*entity.User, error) {
	if err != nil || u == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) && s.Logger != nil {
			s.Logger.WithError(err).Warn("user lookup failed")
		}
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AccountService) cost() int {
	if s.HashCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = helpers.HashPasswordCost("not-a-real-password", s.cost())
	})
	return s.dummyHash
}

func (s *AccountService) welcome(ctx context.Context, u *entity.User) {
	if s.Publisher == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return
	}
	data := tpl.NewWelcomeData(s.Cfg, u.Username, u.Email, tpl.WithTime(u.CreatedAt))
	job := mailer.EmailJob{To: u.Email, Template: tpl.Welcome, Data: data}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
	}
}
