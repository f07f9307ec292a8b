package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name kept", "cat.png", "cat.png"},
		{"spaces replaced", "my meme.png", "my_meme.png"},
		{"run collapses to one underscore", "a  ??  b.jpg", "a_b.jpg"},
		{"unicode replaced", "mème_über.webp", "m_me_ber.webp"},
		{"allowed punctuation kept", "shot_2024-01.final.png", "shot_2024-01.final.png"},
		{"empty falls back", "", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	assert.Equal(t, "memes/1700000000123_funny_cat.png", ObjectPath("funny cat.png", now))
}

func TestStagingPathUnique(t *testing.T) {
	a := StagingPath("same.png")
	b := StagingPath("same.png")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, "staging/")
	assert.Contains(t, a, "same.png")
}

func TestLocalStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media/")
	require.NoError(t, err)

	ctx := context.Background()
	url, err := store.Save(ctx, "memes/1_cat.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/media/memes/1_cat.png", url)

	data, err := store.Read(ctx, "memes/1_cat.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, store.Delete(ctx, "memes/1_cat.png"))

	_, err = store.Read(ctx, "memes/1_cat.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "memes/1_cat.png"), ErrNotFound)
}

func TestLocalStoreRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/media")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../outside.txt", []byte("x"))
	require.NoError(t, err)

	// The cleaned path must resolve inside the root.
	data, err := store.Read(context.Background(), "outside.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)
}

func TestFakeStoreFailureInjection(t *testing.T) {
	store := NewFakeStore()
	ctx := context.Background()

	_, err := store.Save(ctx, "memes/a.png", []byte("a"))
	require.NoError(t, err)
	assert.True(t, store.Has("memes/a.png"))

	store.FailDelete = assert.AnError
	assert.ErrorIs(t, store.Delete(ctx, "memes/a.png"), assert.AnError)
	assert.True(t, store.Has("memes/a.png"))

	store.FailDelete = nil
	require.NoError(t, store.Delete(ctx, "memes/a.png"))
	assert.Equal(t, 0, store.Len())
}
