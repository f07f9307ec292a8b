package server

import (
	"io"

	"memeboard/internal/models"
	"memeboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyDraft handles GET /api/drafts/me
// @Summary Get the caller's compose draft
// @Tags drafts
// @Produce json
// @Success 200 {object} models.Draft
// @Router /drafts/me [get]
func (s *Server) GetMyDraft(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	draft, err := s.draftService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(draft)
}

// SetDraftText handles PUT /api/drafts/text
// @Summary Replace the draft's text
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body object{text=string} true "Draft text"
// @Success 200 {object} models.Draft
// @Failure 400 {object} models.ErrorResponse
// @Router /drafts/text [put]
func (s *Server) SetDraftText(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	draft, err := s.draftService.SetText(c.UserContext(), service.SetDraftTextInput{
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(draft)
}

// SetDraftImage handles PUT /api/drafts/image
// @Summary Stage a pending image on the draft
// @Tags drafts
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} models.Draft
// @Failure 400 {object} models.ErrorResponse
// @Router /drafts/image [put]
func (s *Server) SetDraftImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unable to read uploaded file"))
	}

	draft, err := s.draftService.SetImage(c.UserContext(), service.SetDraftImageInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(draft)
}

// ClearDraft handles DELETE /api/drafts
// @Summary Discard the caller's draft and its staged image
// @Tags drafts
// @Success 204
// @Router /drafts [delete]
func (s *Server) ClearDraft(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.draftService.Clear(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
