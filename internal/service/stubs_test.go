package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"memeboard/internal/models"
	"memeboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG returns a small valid PNG for publish pipeline tests.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn              func(context.Context, *models.Post) error
	getByIDFn             func(context.Context, uint) (*models.Post, error)
	feedPageFn            func(context.Context, repository.FeedQuery) ([]models.Post, error)
	deleteFn              func(context.Context, uint) error
	applyReactionDeltasFn func(context.Context, uint, int, int) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) FeedPage(ctx context.Context, q repository.FeedQuery) ([]models.Post, error) {
	return s.feedPageFn(ctx, q)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ApplyReactionDeltas(ctx context.Context, postID uint, likeDelta, dislikeDelta int) error {
	return s.applyReactionDeltasFn(ctx, postID, likeDelta, dislikeDelta)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		feedPageFn: func(_ context.Context, _ repository.FeedQuery) ([]models.Post, error) {
			return nil, nil
		},
		deleteFn:              func(_ context.Context, _ uint) error { return nil },
		applyReactionDeltasFn: func(_ context.Context, _ uint, _, _ int) error { return nil },
	}
}

// draftRepoStub is a stub for repository.DraftRepository.
type draftRepoStub struct {
	getByUserFn    func(context.Context, uint) (*models.Draft, error)
	saveFn         func(context.Context, *models.Draft) error
	deleteByUserFn func(context.Context, uint) error
}

func (s *draftRepoStub) GetByUser(ctx context.Context, userID uint) (*models.Draft, error) {
	return s.getByUserFn(ctx, userID)
}
func (s *draftRepoStub) Save(ctx context.Context, draft *models.Draft) error {
	return s.saveFn(ctx, draft)
}
func (s *draftRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}

func noopDraftRepo() *draftRepoStub {
	return &draftRepoStub{
		getByUserFn:    func(_ context.Context, _ uint) (*models.Draft, error) { return nil, nil },
		saveFn:         func(_ context.Context, _ *models.Draft) error { return nil },
		deleteByUserFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

// assertAuthRequiredError asserts that err is an AppError with code AUTH_REQUIRED.
func assertAuthRequiredError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "AUTH_REQUIRED", appErr.Code)
}
