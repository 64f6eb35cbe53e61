package watchlist

import (
	"errors"

	watchsvc "gavel-backend/internal/application/watchlist"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *watchsvc.Service
}

// POST /api/v1/watchlist/toggle (auth)
func (h *Handlers) Toggle(c *fiber.Ctx) error {
	var body struct {
		ListingID string `json:"listing_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == "" {
		return response.Error(c, "listing_id is required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	watching, err := h.Service.Toggle(c.Context(), userID, listingID)
	if err != nil {
		if errors.Is(err, watchsvc.ErrListingNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	message := "Listing removed from watchlist"
	if watching {
		message = "Listing added to watchlist"
	}
	return response.Success(c, message, fiber.Map{"watching": watching}, nil)
}

// GET /api/v1/watchlist/view-watchlist (auth)
func (h *Handlers) View(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	listings, err := h.Service.View(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Watchlist fetched successfully", listings, nil)
}
