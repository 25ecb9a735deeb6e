package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_SaveGetDelete(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:session:")
	require.NoError(t, repo.Ping(context.Background()))

	ctx := context.Background()
	uid := int64(12)
	s := &Session{
		ID:        "s1",
		UserID:    &uid,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(5 * time.Second),
	}

	require.NoError(t, repo.Save(ctx, s))
	require.True(t, m.Exists("test:session:s1"))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, uid, *got.UserID)

	// test deletion
	require.NoError(t, repo.Delete(ctx, "s1"))
	got2, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "")

	ctx := context.Background()
	s := &Session{
		ID:        "s2",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(1 * time.Second),
	}

	require.NoError(t, repo.Save(ctx, s))
	require.True(t, m.Exists("session:s2"), "default prefix applies")

	// advance miniredis clock past TTL
	m.FastForward(2 * time.Second)

	got, err := repo.Get(ctx, "s2")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisBackedServiceLoginLogout(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	svc := NewService(NewRedisRepository(redis.NewClient(&redis.Options{Addr: m.Addr()}), ""), time.Hour)
	ctx := context.Background()

	sess, err := svc.Bind(ctx, "", 5)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, sess.ID))

	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	require.False(t, got.Authenticated())
}
