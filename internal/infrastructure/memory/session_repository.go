package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

type entry struct {
	data    []byte
	expires time.Time
}

// SessionRepository keeps sessions in process memory. Values are stored
// encoded so callers never share a *Session between requests.
type SessionRepository struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry
	now func() time.Time
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{ttl: ttl, m: map[string]entry{}, now: time.Now}
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	r.mu.Lock()
	e, ok := r.m[id]
	if ok && r.ttl > 0 && r.now().After(e.expires) {
		delete(r.m, id)
		ok = false
	}
	r.mu.Unlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	var sess entity.Session
	if err := json.Unmarshal(e.data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.m[s.ID] = entry{data: b, expires: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.m, id)
	r.mu.Unlock()
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
