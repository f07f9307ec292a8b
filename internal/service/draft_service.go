// Package service contains the application's business logic.
package service

import (
	"context"
	"log/slog"

	"memeboard/internal/middleware"
	"memeboard/internal/models"
	"memeboard/internal/repository"
	"memeboard/internal/storage"
	"memeboard/internal/validation"
)

// DraftService manages each user's single compose draft: one pending text
// blob and at most one staged image.
type DraftService struct {
	drafts        repository.DraftRepository
	store         storage.Store
	maxImageBytes int64
}

type SetDraftTextInput struct {
	UserID uint
	Text   string
}

type SetDraftImageInput struct {
	UserID      uint
	Filename    string
	ContentType string
	Content     []byte
}

func NewDraftService(drafts repository.DraftRepository, store storage.Store, maxImageBytes int64) *DraftService {
	return &DraftService{
		drafts:        drafts,
		store:         store,
		maxImageBytes: maxImageBytes,
	}
}

// Get returns the user's draft. A user who never composed anything gets an
// empty draft rather than a not-found error.
func (s *DraftService) Get(ctx context.Context, userID uint) (*models.Draft, error) {
	if userID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	draft, err := s.drafts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = &models.Draft{UserID: userID}
	}
	return draft, nil
}

// SetText replaces the draft's text. Validation failures leave the stored
// draft untouched.
func (s *DraftService) SetText(ctx context.Context, in SetDraftTextInput) (*models.Draft, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if err := validation.ValidateDraftText(in.Text); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	draft, err := s.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	draft.Text = in.Text
	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetImage stages a new pending image, replacing any previous one. The old
// staged file is removed best-effort once the new one is in place.
func (s *DraftService) SetImage(ctx context.Context, in SetDraftImageInput) (*models.Draft, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if err := validation.ValidateDraftImage(in.ContentType, int64(len(in.Content)), s.maxImageBytes); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	draft, err := s.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	stagedPath := storage.StagingPath(in.Filename)
	if _, err := s.store.Save(ctx, stagedPath, in.Content); err != nil {
		return nil, models.NewInternalError(err)
	}

	oldPath := draft.StagedPath
	draft.ImageName = in.Filename
	draft.ImageType = in.ContentType
	draft.ImageSize = int64(len(in.Content))
	draft.StagedPath = stagedPath

	if err := s.drafts.Save(ctx, draft); err != nil {
		// The new staged file is unreferenced; try to take it back out.
		s.removeStaged(ctx, stagedPath)
		return nil, err
	}

	s.removeStaged(ctx, oldPath)
	return draft, nil
}

// Clear resets the draft, removing the staged image if present. Idempotent.
func (s *DraftService) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return models.NewValidationError("Invalid user")
	}
	draft, err := s.drafts.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if draft == nil {
		return nil
	}
	if err := s.drafts.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	s.removeStaged(ctx, draft.StagedPath)
	return nil
}

// CanPublish reports whether the user's draft has publishable content.
func (s *DraftService) CanPublish(ctx context.Context, userID uint) (bool, error) {
	draft, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return draft.CanPublish(), nil
}

func (s *DraftService) removeStaged(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.Delete(ctx, path); err != nil && err != storage.ErrNotFound {
		middleware.Logger.WarnContext(ctx, "failed to remove staged image",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}
}
