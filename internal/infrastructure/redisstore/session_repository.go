package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
	"github.com/oksasatya/fashion-storefront/pkg/helpers"
)

// SessionRepository stores each session as a JSON value under
// "session:<id>" with a sliding TTL refreshed on every save.
type SessionRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewSessionRepository(rdb redis.Cmdable, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	var sess entity.Session
	ok, err := helpers.RedisGetJSON(ctx, r.rdb, sessionKey(id), &sess)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sess, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	return helpers.RedisSetJSON(ctx, r.rdb, sessionKey(s.ID), s, r.ttl)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, r.rdb, sessionKey(id))
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
