package service

import (
	"context"
	"errors"
	"testing"

	"memeboard/internal/models"
	"memeboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionService_TransitionDeltas(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		current          models.Reaction
		request          models.Reaction
		wantReaction     models.Reaction
		wantLikeDelta    int
		wantDislikeDelta int
		wantDBCall       bool
	}{
		{"first like", models.ReactionNone, models.ReactionLike, models.ReactionLike, 1, 0, true},
		{"first dislike", models.ReactionNone, models.ReactionDislike, models.ReactionDislike, 0, 1, true},
		{"toggle like off", models.ReactionLike, models.ReactionLike, models.ReactionNone, -1, 0, true},
		{"toggle dislike off", models.ReactionDislike, models.ReactionDislike, models.ReactionNone, 0, -1, true},
		{"switch like to dislike", models.ReactionLike, models.ReactionDislike, models.ReactionDislike, -1, 1, true},
		{"switch dislike to like", models.ReactionDislike, models.ReactionLike, models.ReactionLike, 1, -1, true},
		{"explicit clear", models.ReactionLike, models.ReactionNone, models.ReactionNone, -1, 0, true},
		{"clear when already clear", models.ReactionNone, models.ReactionNone, models.ReactionNone, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repository.NewMemoryReactionStore()
			ctx := context.Background()
			if tt.current != models.ReactionNone {
				require.NoError(t, store.Set(ctx, 1, 10, tt.current))
			}

			dbCalled := false
			posts := noopPostRepo()
			posts.applyReactionDeltasFn = func(_ context.Context, postID uint, likeDelta, dislikeDelta int) error {
				dbCalled = true
				assert.Equal(t, uint(10), postID)
				assert.Equal(t, tt.wantLikeDelta, likeDelta)
				assert.Equal(t, tt.wantDislikeDelta, dislikeDelta)
				return nil
			}
			svc := NewReactionService(posts, store)

			result, err := svc.Apply(ctx, ApplyReactionInput{UserID: 1, PostID: 10, Reaction: tt.request})
			require.NoError(t, err)
			assert.Equal(t, tt.wantReaction, result.Reaction)
			assert.Equal(t, tt.wantDBCall, dbCalled)
			if tt.wantDBCall {
				assert.Equal(t, tt.wantLikeDelta, result.LikeDelta)
				assert.Equal(t, tt.wantDislikeDelta, result.DislikeDelta)
			}
			assert.Equal(t, tt.wantReaction, store.Get(ctx, 1, 10))
		})
	}
}

func TestReactionService_CounterFailureLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryReactionStore()
	posts := noopPostRepo()
	posts.applyReactionDeltasFn = func(_ context.Context, _ uint, _, _ int) error {
		return models.NewInternalError(errors.New("db down"))
	}
	svc := NewReactionService(posts, store)

	_, err := svc.Apply(context.Background(), ApplyReactionInput{UserID: 1, PostID: 10, Reaction: models.ReactionLike})
	require.Error(t, err)
	assert.Equal(t, models.ReactionNone, store.Get(context.Background(), 1, 10))
}

func TestReactionService_MissingPost(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.applyReactionDeltasFn = func(_ context.Context, postID uint, _, _ int) error {
		return models.NewNotFoundError("Post", postID)
	}
	svc := NewReactionService(posts, repository.NewMemoryReactionStore())

	_, err := svc.Apply(context.Background(), ApplyReactionInput{UserID: 1, PostID: 99, Reaction: models.ReactionLike})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestReactionService_AnonymousRejected(t *testing.T) {
	t.Parallel()

	svc := NewReactionService(noopPostRepo(), repository.NewMemoryReactionStore())

	_, err := svc.Apply(context.Background(), ApplyReactionInput{UserID: 0, PostID: 10, Reaction: models.ReactionLike})
	assertAuthRequiredError(t, err)
}
