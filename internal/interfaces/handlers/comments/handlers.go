package comments

import (
	"errors"

	commentsvc "gavel-backend/internal/application/comments"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *commentsvc.Service
}

// POST /api/v1/comments/add-comment (auth)
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	var body struct {
		ListingID string `json:"listing_id"`
		Content   string `json:"content"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.ListingID == "" || body.Content == "" {
		return response.Error(c, "listing_id and content are required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	authorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	comment, err := h.Service.AddComment(c.Context(), commentsvc.AddCommentInput{
		ListingID: listingID,
		AuthorID:  authorID,
		Content:   body.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, commentsvc.ErrListingNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, commentsvc.ErrInvalidComment):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Comment added successfully", comment, nil)
}

// GET /api/v1/comments/get-comments/:listing_id (public)
func (h *Handlers) GetComments(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	comments, err := h.Service.GetComments(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, commentsvc.ErrListingNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Comments fetched successfully", comments, nil)
}
