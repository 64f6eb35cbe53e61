package listingevents

import (
	"errors"

	lesvc "gavel-backend/internal/application/listingevents"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *lesvc.Service
}

// GET /api/v1/listing-events/get-events/:listing_id (auth)
func (h *Handlers) GetListingEvents(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	events, err := h.Service.GetListingEvents(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, lesvc.ErrListingNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing events fetched successfully", fiber.Map{"events": events}, nil)
}
