package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fashion-storefront/internal/domain/entity"
	"github.com/oksasatya/fashion-storefront/internal/domain/repository"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewSessionRepository(time.Minute)
	repo.now = func() time.Time { return now }

	sess := &entity.Session{ID: "abc", UserID: 3, Role: entity.RoleUser}
	require.NoError(t, sess.Cart.Add(9, 2))
	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, got.UserID)
	assert.Equal(t, 2, got.Cart.Quantity(9))

	t.Run("returned sessions are copies", func(t *testing.T) {
		got.Cart.Clear()
		again, err := repo.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, 2, again.Cart.Quantity(9))
	})

	t.Run("expired entries are gone", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		_, err := repo.Get(ctx, "abc")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &entity.Session{ID: "d"}))
		require.NoError(t, repo.Delete(ctx, "d"))
		_, err := repo.Get(ctx, "d")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
