package server

import (
	"memeboard/internal/models"
	"memeboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PublishPost handles POST /api/posts
// It turns the caller's draft into a post. Publishing an empty draft is a
// silent no-op and returns 204.
// @Summary Publish the caller's draft as a post
// @Tags posts
// @Produce json
// @Success 201 {object} models.Post
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) PublishPost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	post, err := s.publishService.Publish(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if post == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a single post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete a post the caller owns
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: userID,
		PostID: postID,
	}); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetReaction handles PUT /api/posts/:id/reaction
// Requesting the reaction already recorded toggles it off.
// @Summary Set or toggle the caller's reaction on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{reaction=string} true "like, dislike, or none"
// @Success 200 {object} service.ApplyResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id}/reaction [put]
func (s *Server) SetReaction(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Reaction string `json:"reaction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reaction, parseErr := models.ParseReaction(req.Reaction)
	if parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(parseErr.Error()))
	}

	result, err := s.reactionService.Apply(c.UserContext(), service.ApplyReactionInput{
		UserID:   userID,
		PostID:   postID,
		Reaction: reaction,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(result)
}
