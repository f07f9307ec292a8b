package server

import (
	"memeboard/internal/feed"
	"memeboard/internal/models"
	"memeboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// FeedResponse is one page of the feed plus the cursor that resumes it.
type FeedResponse struct {
	Posts      []models.Post `json:"posts"`
	NextCursor string        `json:"next_cursor,omitempty"`
	Exhausted  bool          `json:"exhausted"`
}

// GetFeed handles GET /api/feed?sort=newest&cursor=...
// The sort defaults to newest; "mine" requires a signed-in caller.
// @Summary Get one page of the post feed
// @Tags feed
// @Produce json
// @Param sort query string false "newest, liked, disliked, or mine"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} FeedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /feed [get]
func (s *Server) GetFeed(c *fiber.Ctx) error {
	sort, err := feed.ParseSort(c.Query("sort"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	page, err := s.feedService.LoadPage(c.UserContext(), service.LoadPageInput{
		Sort:   sort,
		Cursor: c.Query("cursor"),
		UserID: currentUserID(c),
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	posts := page.Posts
	if posts == nil {
		posts = []models.Post{}
	}
	return c.JSON(FeedResponse{
		Posts:      posts,
		NextCursor: page.NextCursor,
		Exhausted:  page.Exhausted,
	})
}
