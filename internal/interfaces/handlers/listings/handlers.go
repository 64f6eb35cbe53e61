package listings

import (
	"errors"

	listsvc "gavel-backend/internal/application/listings"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
}

// POST /api/v1/listings/create-listing (auth)
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var body struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		InitialPrice *float64 `json:"initial_price"`
		ImageURL     *string  `json:"image_url"`
		CategoryID   *string  `json:"category_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Title == "" || body.Description == "" || body.InitialPrice == nil {
		return response.Error(c, "title, description and initial_price are required", fiber.StatusBadRequest, nil)
	}

	creatorID, err := middleware.CurrentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var categoryID *uuid.UUID
	if body.CategoryID != nil && *body.CategoryID != "" {
		id, err := uuid.Parse(*body.CategoryID)
		if err != nil {
			return response.Error(c, "Invalid category_id", fiber.StatusBadRequest, nil)
		}
		categoryID = &id
	}

	listing, err := h.Service.CreateListing(c.Context(), listsvc.CreateListingInput{
		Title:        body.Title,
		Description:  body.Description,
		InitialPrice: *body.InitialPrice,
		ImageURL:     body.ImageURL,
		CategoryID:   categoryID,
		CreatorID:    creatorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, listsvc.ErrInvalidListing):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, listsvc.ErrCategoryNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GET /api/v1/listings/get-all-listings?category=<uuid> (public)
func (h *Handlers) GetAllListings(c *fiber.Ctx) error {
	var categoryID *uuid.UUID
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.Error(c, "Invalid category filter", fiber.StatusBadRequest, nil)
		}
		categoryID = &id
	}
	listings, err := h.Service.GetAllListings(c.Context(), categoryID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

// GET /api/v1/listings/get-listing/:listing_id (public)
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Service.GetListingByID(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, listsvc.ErrListingNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing fetched successfully", detail, nil)
}

// POST /api/v1/listings/close-listing (auth, creator only)
func (h *Handlers) CloseListing(c *fiber.Ctx) error {
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

	listing, err := h.Service.CloseListing(c.Context(), listingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, listsvc.ErrListingNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, listsvc.ErrNotListingOwner):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing closed successfully", listing, nil)
}
