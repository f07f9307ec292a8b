package service

import (
	"context"
	"errors"
	"testing"

	"memeboard/internal/models"
	"memeboard/internal/repository"
	"memeboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_GetPostOverlaysCallerReaction(t *testing.T) {
	t.Parallel()

	reactions := repository.NewMemoryReactionStore()
	require.NoError(t, reactions.Set(context.Background(), 2, 10, models.ReactionDislike))

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Text: "meme"}, nil
	}
	svc := NewPostService(posts, reactions, storage.NewFakeStore())

	post, err := svc.GetPost(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionDislike, post.MyReaction)

	// Anonymous callers get no overlay.
	post, err = svc.GetPost(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, models.ReactionNone, post.MyReaction)
}

func TestPostService_DeleteRemovesPostImageAndReaction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewFakeStore()
	_, err := store.Save(ctx, "memes/1_cat.png", []byte("img"))
	require.NoError(t, err)
	_, err = store.Save(ctx, "memes/1_cat.png.thumb.webp", []byte("thumb"))
	require.NoError(t, err)

	reactions := repository.NewMemoryReactionStore()
	require.NoError(t, reactions.Set(ctx, 1, 10, models.ReactionLike))

	deleted := false
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{
			ID: id, UserID: 1,
			ImagePath: "memes/1_cat.png",
			ThumbPath: "memes/1_cat.png.thumb.webp",
		}, nil
	}
	posts.deleteFn = func(_ context.Context, id uint) error {
		deleted = true
		return nil
	}
	svc := NewPostService(posts, reactions, store)

	require.NoError(t, svc.DeletePost(ctx, DeletePostInput{UserID: 1, PostID: 10}))
	assert.True(t, deleted)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, models.ReactionNone, reactions.Get(ctx, 1, 10))
}

func TestPostService_DeleteRejectsNonOwner(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	posts.deleteFn = func(_ context.Context, _ uint) error {
		t.Fatal("non-owner must not reach delete")
		return nil
	}
	svc := NewPostService(posts, repository.NewMemoryReactionStore(), storage.NewFakeStore())

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 2, PostID: 10})
	assertUnauthorizedError(t, err)
}

func TestPostService_DeleteAnonymousRejected(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), repository.NewMemoryReactionStore(), storage.NewFakeStore())

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 0, PostID: 10})
	assertAuthRequiredError(t, err)
}

func TestPostService_DeleteSurvivesImageCleanupFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewFakeStore()
	_, err := store.Save(ctx, "memes/1_cat.png", []byte("img"))
	require.NoError(t, err)
	store.FailDelete = errors.New("bucket down")

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, ImagePath: "memes/1_cat.png"}, nil
	}
	svc := NewPostService(posts, repository.NewMemoryReactionStore(), store)

	// The post is gone even though the image lingers as an orphan.
	assert.NoError(t, svc.DeletePost(ctx, DeletePostInput{UserID: 1, PostID: 10}))
	assert.True(t, store.Has("memes/1_cat.png"))
}

func TestPostService_DeleteTextOnlyPostSkipsStorage(t *testing.T) {
	t.Parallel()

	store := storage.NewFakeStore()
	store.FailDelete = errors.New("must not be called")

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Text: "words only"}, nil
	}
	svc := NewPostService(posts, repository.NewMemoryReactionStore(), store)

	assert.NoError(t, svc.DeletePost(context.Background(), DeletePostInput{UserID: 1, PostID: 10}))
}
