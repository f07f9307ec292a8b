package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"memeboard/internal/imaging"
	"memeboard/internal/middleware"
	"memeboard/internal/models"
	"memeboard/internal/observability"
	"memeboard/internal/repository"
	"memeboard/internal/storage"
	"memeboard/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// PublishService turns a user's draft into a published post:
// validate, move the staged image into permanent storage, create the post
// row, then clear the draft. Any failure before the post row exists leaves
// the draft intact so the user can retry.
type PublishService struct {
	drafts repository.DraftRepository
	posts  repository.PostRepository
	store  storage.Store
	now    func() time.Time
}

func NewPublishService(drafts repository.DraftRepository, posts repository.PostRepository, store storage.Store) *PublishService {
	return &PublishService{
		drafts: drafts,
		posts:  posts,
		store:  store,
		now:    time.Now,
	}
}

// Publish publishes the user's draft. Returns (nil, nil) when the draft has
// nothing publishable; that is a silent no-op, not an error.
func (s *PublishService) Publish(ctx context.Context, userID uint) (*models.Post, error) {
	if userID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}

	span, ctx := observability.NewSpan(ctx, "publish.draft")
	defer span.End()
	span.AddAttributes(attribute.Int64("user.id", int64(userID)))

	draft, err := s.drafts.GetByUser(ctx, userID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	if draft == nil || !draft.CanPublish() {
		return nil, nil
	}
	span.AddAttributes(attribute.Bool("draft.has_image", draft.HasImage()))

	// Text is validated when set, but the draft row may predate a rule
	// change; check again at the gate.
	if err := validation.ValidateDraftText(draft.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Text:   draft.Text,
		UserID: userID,
	}

	var uploadedPaths []string
	if draft.HasImage() {
		original, err := s.store.Read(ctx, draft.StagedPath)
		if err != nil {
			// Staged file lost between SetImage and Publish. The draft
			// metadata is stale; surface it rather than publish half a post.
			span.SetError(err)
			return nil, models.NewInternalError(err)
		}

		imagePath := storage.ObjectPath(draft.ImageName, s.now())
		imageURL, err := s.store.Save(ctx, imagePath, original)
		if err != nil {
			// Upload failure aborts the publish; no post is created and
			// the draft stays as it was.
			span.SetError(err)
			return nil, models.NewInternalError(err)
		}
		post.ImageURL = imageURL
		post.ImagePath = imagePath
		uploadedPaths = append(uploadedPaths, imagePath)

		// Thumbnail is an optimization; a post without one still renders
		// from the original.
		if thumb, err := imaging.Thumbnail(original); err != nil {
			middleware.Logger.WarnContext(ctx, "thumbnail generation failed",
				slog.String("image", draft.ImageName),
				slog.String("error", err.Error()),
			)
		} else {
			thumbPath := imagePath + ".thumb.webp"
			if thumbURL, err := s.store.Save(ctx, thumbPath, thumb); err != nil {
				middleware.Logger.WarnContext(ctx, "thumbnail upload failed",
					slog.String("path", thumbPath),
					slog.String("error", err.Error()),
				)
			} else {
				post.ThumbURL = thumbURL
				post.ThumbPath = thumbPath
				uploadedPaths = append(uploadedPaths, thumbPath)
			}
		}
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.cleanupUploads(ctx, uploadedPaths)
		span.SetError(err)
		return nil, err
	}

	// The post exists; from here everything is best-effort. A draft left
	// behind is harmless and cleared on the next interaction.
	if err := s.drafts.DeleteByUser(ctx, userID); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to clear draft after publish",
			slog.Any("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
	if draft.HasImage() {
		if err := s.store.Delete(ctx, draft.StagedPath); err != nil && err != storage.ErrNotFound {
			middleware.Logger.WarnContext(ctx, "failed to remove staged image after publish",
				slog.String("path", draft.StagedPath),
				slog.String("error", err.Error()),
			)
		}
	}

	observability.PublishesTotal.WithLabelValues(strconv.FormatBool(draft.HasImage())).Inc()
	return post, nil
}

func (s *PublishService) cleanupUploads(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.store.Delete(ctx, p); err != nil && err != storage.ErrNotFound {
			middleware.Logger.WarnContext(ctx, "failed to clean up uploaded file",
				slog.String("path", p),
				slog.String("error", err.Error()),
			)
		}
	}
}
