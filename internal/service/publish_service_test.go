package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"memeboard/internal/models"
	"memeboard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRepoWith(draft *models.Draft) *draftRepoStub {
	drafts := noopDraftRepo()
	drafts.getByUserFn = func(_ context.Context, _ uint) (*models.Draft, error) { return draft, nil }
	return drafts
}

func TestPublishService_EmptyDraftIsSilentNoOp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		draft *models.Draft
	}{
		{"no draft row", nil},
		{"whitespace text, no image", &models.Draft{UserID: 1, Text: " \n\t "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := noopPostRepo()
			posts.createFn = func(_ context.Context, _ *models.Post) error {
				t.Fatal("no post must be created")
				return nil
			}
			svc := NewPublishService(draftRepoWith(tt.draft), posts, storage.NewFakeStore())

			post, err := svc.Publish(context.Background(), 1)
			require.NoError(t, err)
			assert.Nil(t, post)
		})
	}
}

func TestPublishService_TextOnlyPost(t *testing.T) {
	t.Parallel()

	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 7
		created = p
		return nil
	}
	cleared := false
	drafts := draftRepoWith(&models.Draft{UserID: 1, Text: "just words"})
	drafts.deleteByUserFn = func(_ context.Context, _ uint) error {
		cleared = true
		return nil
	}
	svc := NewPublishService(drafts, posts, storage.NewFakeStore())

	post, err := svc.Publish(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, uint(7), post.ID)
	assert.Equal(t, "just words", created.Text)
	assert.Empty(t, created.ImageURL)
	assert.Zero(t, created.Likes)
	assert.Zero(t, created.Dislikes)
	assert.True(t, cleared)
}

func TestPublishService_ImagePostMovesStagedFile(t *testing.T) {
	t.Parallel()

	store := storage.NewFakeStore()
	ctx := context.Background()
	original := testPNG(t)
	_, err := store.Save(ctx, "staging/u_cat meme.png", original)
	require.NoError(t, err)

	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		return nil
	}
	drafts := draftRepoWith(&models.Draft{
		UserID:     1,
		Text:       "caption",
		ImageName:  "cat meme.png",
		ImageType:  "image/png",
		StagedPath: "staging/u_cat meme.png",
	})
	svc := NewPublishService(drafts, posts, store)

	post, err := svc.Publish(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, post)

	require.NotNil(t, created)
	assert.True(t, strings.HasPrefix(created.ImagePath, "memes/"))
	assert.Contains(t, created.ImagePath, "cat_meme.png")
	assert.NotEmpty(t, created.ImageURL)
	assert.NotEmpty(t, created.ThumbURL)
	assert.True(t, store.Has(created.ImagePath))
	assert.True(t, store.Has(created.ThumbPath))
	// The staged copy is gone once the permanent one exists.
	assert.False(t, store.Has("staging/u_cat meme.png"))
}

func TestPublishService_UnreadableImageFailsThumbnailButPublishes(t *testing.T) {
	t.Parallel()

	store := storage.NewFakeStore()
	ctx := context.Background()
	// Bytes that are not a decodable image: the post still publishes, just
	// without a thumbnail.
	_, err := store.Save(ctx, "staging/u_raw.bin", []byte("not an image"))
	require.NoError(t, err)

	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		created = p
		return nil
	}
	drafts := draftRepoWith(&models.Draft{
		UserID: 1, ImageName: "raw.bin", ImageType: "image/png", StagedPath: "staging/u_raw.bin",
	})
	svc := NewPublishService(drafts, posts, store)

	post, err := svc.Publish(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.NotEmpty(t, created.ImageURL)
	assert.Empty(t, created.ThumbURL)
}

func TestPublishService_UploadFailureAbortsWithoutPost(t *testing.T) {
	t.Parallel()

	store := storage.NewFakeStore()
	ctx := context.Background()
	_, err := store.Save(ctx, "staging/u_cat.png", testPNG(t))
	require.NoError(t, err)
	store.FailSave = errors.New("bucket down")

	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, _ *models.Post) error {
		t.Fatal("no post must be created when upload fails")
		return nil
	}
	drafts := draftRepoWith(&models.Draft{
		UserID: 1, ImageName: "cat.png", ImageType: "image/png", StagedPath: "staging/u_cat.png",
	})
	drafts.deleteByUserFn = func(_ context.Context, _ uint) error {
		t.Fatal("draft must survive a failed publish")
		return nil
	}
	svc := NewPublishService(drafts, posts, store)

	_, err = svc.Publish(ctx, 1)
	require.Error(t, err)
	// Staged file still present for retry.
	assert.True(t, store.Has("staging/u_cat.png"))
}

func TestPublishService_CreateFailureCleansUpUploads(t *testing.T) {
	t.Parallel()

	store := storage.NewFakeStore()
	ctx := context.Background()
	_, err := store.Save(ctx, "staging/u_cat.png", testPNG(t))
	require.NoError(t, err)

	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, _ *models.Post) error {
		return models.NewInternalError(errors.New("insert failed"))
	}
	drafts := draftRepoWith(&models.Draft{
		UserID: 1, ImageName: "cat.png", ImageType: "image/png", StagedPath: "staging/u_cat.png",
	})
	svc := NewPublishService(drafts, posts, store)

	_, err = svc.Publish(ctx, 1)
	require.Error(t, err)

	// Only the staged original remains; the permanent copies were removed.
	assert.Equal(t, 1, store.Len())
	assert.True(t, store.Has("staging/u_cat.png"))
}

func TestPublishService_MissingStagedFileIsAnError(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, _ *models.Post) error {
		t.Fatal("no post must be created")
		return nil
	}
	drafts := draftRepoWith(&models.Draft{
		UserID: 1, ImageName: "cat.png", ImageType: "image/png", StagedPath: "staging/vanished.png",
	})
	svc := NewPublishService(drafts, posts, storage.NewFakeStore())

	_, err := svc.Publish(context.Background(), 1)
	assert.Error(t, err)
}

func TestPublishService_StaleInvalidTextRejected(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, _ *models.Post) error {
		t.Fatal("no post must be created")
		return nil
	}
	drafts := draftRepoWith(&models.Draft{UserID: 1, Text: strings.Repeat("x", 501)})
	svc := NewPublishService(drafts, posts, storage.NewFakeStore())

	_, err := svc.Publish(context.Background(), 1)
	assertValidationError(t, err)
}
