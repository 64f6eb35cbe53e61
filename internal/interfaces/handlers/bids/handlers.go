package bids

import (
	"errors"

	bidsvc "gavel-backend/internal/application/bidding"
	"gavel-backend/internal/middleware"
	"gavel-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *bidsvc.Service
}

// POST /api/v1/bids/place-bid (auth)
func (h *Handlers) PlaceBid(c *fiber.Ctx) error {
	var body struct {
		ListingID string   `json:"listing_id"`
		Amount    *float64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.ListingID == "" || body.Amount == nil {
		return response.Error(c, "listing_id and amount are required", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	bidderID, err := middleware.CurrentUserID(c)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	bid, err := h.Service.PlaceBid(c.Context(), bidsvc.PlaceBidInput{
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    *body.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, bidsvc.ErrListingNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, bidsvc.ErrListingClosed):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case errors.Is(err, bidsvc.ErrBidTooLow):
			return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
		case errors.Is(err, bidsvc.ErrInvalidBid):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Bid placed successfully", bid, nil)
}

// GET /api/v1/bids/get-bids/:listing_id (public)
func (h *Handlers) GetBids(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id format", fiber.StatusBadRequest, nil)
	}
	bids, err := h.Service.ListBids(c.Context(), listingID)
	if err != nil {
		if errors.Is(err, bidsvc.ErrListingNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	quote, err := h.Service.Quote(c.Context(), listingID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Bids fetched successfully", fiber.Map{
		"bids":              bids,
		"current_price":     quote.CurrentPrice,
		"leading_bidder_id": quote.LeadingBidderID,
	}, nil)
}
