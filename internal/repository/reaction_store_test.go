package repository

import (
	"context"
	"strconv"
	"testing"

	"memeboard/internal/cache"
	"memeboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisStore(t *testing.T) (ReactionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisReactionStore(client), mr
}

func TestRedisReactionStore_SetGetRoundTrip(t *testing.T) {
	store, _ := newMiniredisStore(t)
	ctx := context.Background()

	assert.Equal(t, models.ReactionNone, store.Get(ctx, 1, 10))

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionLike))
	assert.Equal(t, models.ReactionLike, store.Get(ctx, 1, 10))

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionDislike))
	assert.Equal(t, models.ReactionDislike, store.Get(ctx, 1, 10))

	// Setting none removes the hash field entirely.
	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionNone))
	assert.Equal(t, models.ReactionNone, store.Get(ctx, 1, 10))
}

func TestRedisReactionStore_PerUserIsolation(t *testing.T) {
	store, _ := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionLike))
	assert.Equal(t, models.ReactionNone, store.Get(ctx, 2, 10))
}

func TestRedisReactionStore_GetMany(t *testing.T) {
	store, _ := newMiniredisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionLike))
	require.NoError(t, store.Set(ctx, 1, 12, models.ReactionDislike))

	got := store.GetMany(ctx, 1, []uint{10, 11, 12})
	assert.Equal(t, map[uint]models.Reaction{
		10: models.ReactionLike,
		12: models.ReactionDislike,
	}, got)
}

func TestRedisReactionStore_CorruptEntryReadsAsNone(t *testing.T) {
	store, mr := newMiniredisStore(t)
	ctx := context.Background()

	// Unparsable value in the hash must read as no reaction, not an error.
	mr.HSet(cache.ReactionsKey(1), strconv.Itoa(10), "{not json")
	assert.Equal(t, models.ReactionNone, store.Get(ctx, 1, 10))

	// Parsable JSON holding an unknown reaction is equally worthless.
	mr.HSet(cache.ReactionsKey(1), strconv.Itoa(11), `"superlike"`)
	assert.Equal(t, models.ReactionNone, store.Get(ctx, 1, 11))

	got := store.GetMany(ctx, 1, []uint{10, 11})
	assert.Empty(t, got)
}

func TestRedisReactionStore_DownRedisFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisReactionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionLike))
	mr.Close()

	assert.Equal(t, models.ReactionNone, store.Get(ctx, 1, 10))
	assert.Empty(t, store.GetMany(ctx, 1, []uint{10}))
	assert.Error(t, store.Set(ctx, 1, 10, models.ReactionDislike))
}

func TestNewReactionStore_NilClientFallsBackToMemory(t *testing.T) {
	store := NewReactionStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionLike))
	assert.Equal(t, models.ReactionLike, store.Get(ctx, 1, 10))

	store.Clear(ctx, 1, 10)
	assert.Equal(t, models.ReactionNone, store.Get(ctx, 1, 10))
}

func TestMemoryReactionStore_GetMany(t *testing.T) {
	store := NewMemoryReactionStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, 1, 10, models.ReactionLike))
	require.NoError(t, store.Set(ctx, 1, 11, models.ReactionDislike))
	require.NoError(t, store.Set(ctx, 2, 10, models.ReactionDislike))

	got := store.GetMany(ctx, 1, []uint{10, 11, 12})
	assert.Equal(t, map[uint]models.Reaction{
		10: models.ReactionLike,
		11: models.ReactionDislike,
	}, got)
}
