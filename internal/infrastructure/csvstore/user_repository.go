package csvstore

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "role",
	"gender", "age", "location", "preferred_color",
	"preferred_brand", "favorite_category", "created_at", "last_login",
}

// UserRepository stores accounts in users.csv. New users are appended;
// last_login updates rewrite the table.
type UserRepository struct {
	table *table
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{table: newTable(path, userColumns...)}
}

func (r *UserRepository) load() ([]*entity.User, error) {
	if err := r.table.ensure(); err != nil {
		return nil, err
	}
	rows, err := r.table.readAll("id", "username", "email", "password_hash")
	if err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	maxID := 0
	for _, existing := range users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repository.ErrDuplicateEmail
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	u.ID = maxID + 1
	if u.Role == "" {
		u.Role = entity.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	return r.table.appendRow(userToRow(u))
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.TrimSpace(email)
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) GetByLogin(ctx context.Context, identifier string) (*entity.User, error) {
	identifier = strings.TrimSpace(identifier)
	return r.find(func(u *entity.User) bool {
		return strings.EqualFold(u.Email, identifier) || strings.EqualFold(u.Username, identifier)
	})
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	return r.update(id, func(u *entity.User) { u.LastLogin = at })
}

// SetRole changes a user's role. Only the seed command grants admin.
func (r *UserRepository) SetRole(ctx context.Context, id int, role entity.Role) error {
	return r.update(id, func(u *entity.User) { u.Role = role })
}

// update applies fn to user id and rewrites the table.
func (r *UserRepository) update(id int, fn func(*entity.User)) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	found := false
	rows := make([]map[string]string, 0, len(users))
	for _, u := range users {
		if u.ID == id {
			fn(u)
			found = true
		}
		rows = append(rows, userToRow(u))
	}
	if !found {
		return repository.ErrNotFound
	}
	return r.table.writeAll(rows)
}

func (r *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func userFromRow(row map[string]string) *entity.User {
	id, _ := strconv.Atoi(strings.TrimSpace(row["id"]))
	return &entity.User{
		ID:               id,
		Username:         row["username"],
		Email:            row["email"],
		PasswordHash:     row["password_hash"],
		Role:             entity.ParseRole(row["role"]),
		Gender:           row["gender"],
		Age:              row["age"],
		Location:         row["location"],
		PreferredColor:   row["preferred_color"],
		PreferredBrand:   row["preferred_brand"],
		FavoriteCategory: row["favorite_category"],
		CreatedAt:        parseTime(row["created_at"]),
		LastLogin:        parseTime(row["last_login"]),
	}
}

func userToRow(u *entity.User) map[string]string {
	return map[string]string{
		"id":                strconv.Itoa(u.ID),
		"username":          u.Username,
		"email":             u.Email,
		"password_hash":     u.PasswordHash,
		"role":              string(u.Role),
		"gender":            u.Gender,
		"age":               u.Age,
		"location":          u.Location,
		"preferred_color":   u.PreferredColor,
		"preferred_brand":   u.PreferredBrand,
		"favorite_category": u.FavoriteCategory,
		"created_at":        formatTime(u.CreatedAt),
		"last_login":        formatTime(u.LastLogin),
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
