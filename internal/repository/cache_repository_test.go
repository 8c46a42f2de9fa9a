package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

func newCacheRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheRepository(client, nil), mr
}

func TestCacheRepositoryRoundTripAndTTL(t *testing.T) {
	repo, mr := newCacheRepo(t)
	ctx := context.Background()

	var dest []string
	assert.ErrorIs(t, repo.Get(ctx, "catalogo:cursos", &dest), appErrors.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "catalogo:cursos", []string{"Tiro", "Conducción"}, time.Minute))
	require.NoError(t, repo.Get(ctx, "catalogo:cursos", &dest))
	assert.Equal(t, []string{"Tiro", "Conducción"}, dest)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, repo.Get(ctx, "catalogo:cursos", &dest), appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDropsUndecodableEntries(t *testing.T) {
	repo, mr := newCacheRepo(t)
	require.NoError(t, mr.Set("resumen:all", "{not json"))

	var dest map[string]interface{}
	assert.ErrorIs(t, repo.Get(context.Background(), "resumen:all", &dest), appErrors.ErrCacheMiss)
	assert.False(t, mr.Exists("resumen:all"))
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, mr := newCacheRepo(t)
	ctx := context.Background()
	for _, key := range []string{"resumen:all", "resumen:x", "catalogo:cursos"} {
		require.NoError(t, repo.Set(ctx, key, 1, 0))
	}

	require.NoError(t, repo.DeleteByPattern(ctx, "resumen:*"))
	assert.False(t, mr.Exists("resumen:all"))
	assert.False(t, mr.Exists("resumen:x"))
	assert.True(t, mr.Exists("catalogo:cursos"))
}

func TestCacheRepositoryNilClientIsInert(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest int
	assert.ErrorIs(t, repo.Get(ctx, "k", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "k", 1, 0))
	assert.NoError(t, repo.DeleteByPattern(ctx, "*"))
	assert.NoError(t, repo.Ping(ctx))
}

func TestCacheRepositoryPingFailsWhenServerIsGone(t *testing.T) {
	repo, mr := newCacheRepo(t)
	require.NoError(t, repo.Ping(context.Background()))
	mr.Close()
	assert.Error(t, repo.Ping(context.Background()))
}
