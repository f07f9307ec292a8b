package service

import (
	"context"
	"log/slog"

	"memeboard/internal/middleware"
	"memeboard/internal/models"
	"memeboard/internal/observability"
	"memeboard/internal/repository"
	"memeboard/internal/storage"
)

// PostService covers single-post reads and owner-scoped deletion.
type PostService struct {
	posts     repository.PostRepository
	reactions repository.ReactionStore
	store     storage.Store
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(posts repository.PostRepository, reactions repository.ReactionStore, store storage.Store) *PostService {
	return &PostService{posts: posts, reactions: reactions, store: store}
}

// GetPost returns a post with the caller's own reaction overlaid.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if currentUserID != 0 {
		post.MyReaction = s.reactions.Get(ctx, currentUserID, id)
	}
	return post, nil
}

// DeletePost removes a post the caller owns. The post row goes first; the
// stored image and the caller's reaction entry are cleaned up afterwards,
// best-effort. An image that survives a failed cleanup is an accepted orphan,
// logged and counted, never a reason to resurrect the post.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if in.UserID == 0 {
		return models.NewAuthRequiredError("deleting posts")
	}

	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.posts.Delete(ctx, in.PostID); err != nil {
		return err
	}

	for _, path := range []string{post.ImagePath, post.ThumbPath} {
		if path == "" {
			continue
		}
		if err := s.store.Delete(ctx, path); err != nil && err != storage.ErrNotFound {
			observability.OrphanedImagesTotal.Inc()
			middleware.Logger.WarnContext(ctx, "post image orphaned after deletion",
				slog.Any("post_id", in.PostID),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	s.reactions.Clear(ctx, in.UserID, in.PostID)
	return nil
}
