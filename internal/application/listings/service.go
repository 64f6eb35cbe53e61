package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gavel-backend/internal/application/pricing"
	"gavel-backend/internal/domain"
	"gavel-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	Title        string
	Description  string
	InitialPrice float64
	ImageURL     *string
	CategoryID   *uuid.UUID
	CreatorID    uuid.UUID
}

// CreateListing creates an active listing and its CREATED event in one
// transaction. Initial price and creator are immutable afterwards.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 50 {
		return nil, fmt.Errorf("%w: title is required (max 50 characters)", ErrInvalidListing)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" || len(description) > 500 {
		return nil, fmt.Errorf("%w: description is required (max 500 characters)", ErrInvalidListing)
	}
	if math.IsNaN(in.InitialPrice) || math.IsInf(in.InitialPrice, 0) || in.InitialPrice < 0 {
		return nil, fmt.Errorf("%w: initial price must be a non-negative finite number", ErrInvalidListing)
	}
	if in.CreatorID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing creator", ErrInvalidListing)
	}
	if in.CategoryID != nil {
		var category domain.Category
		if err := s.DB.WithContext(ctx).Where("category_id = ?", *in.CategoryID).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	listing := &domain.Listing{
		Title:        title,
		Description:  description,
		ImageURL:     in.ImageURL,
		InitialPrice: in.InitialPrice,
		IsActive:     true,
		CategoryID:   in.CategoryID,
		CreatorID:    in.CreatorID,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(listing).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to create listing: %v", err)
	}
	eventDataBytes, _ := json.Marshal(map[string]interface{}{
		"initial_price": listing.InitialPrice,
		"title":         listing.Title,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: constants.EventCreated,
		EventData: datatypes.JSON(eventDataBytes),
		ActorID:   &in.CreatorID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("Failed to create listing event: %v", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("Failed to create listing: %v", err)
	}
	return listing, nil
}

// GetAllListings returns listings ordered active-first then newest-first,
// optionally filtered by category.
func (s *Service) GetAllListings(ctx context.Context, categoryID *uuid.UUID) ([]domain.Listing, error) {
	q := s.DB.WithContext(ctx).Order(`is_active DESC, "createdAt" DESC`)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var listings []domain.Listing
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// ListingDetail is a listing with its derived quote and history.
type ListingDetail struct {
	domain.Listing
	CurrentPrice    float64          `json:"current_price"`
	LeadingBidderID *uuid.UUID       `json:"leading_bidder_id"`
	Bids            []domain.Bid     `json:"bids"`
	Comments        []domain.Comment `json:"comments"`
}

// GetListingByID returns the listing with its resolved current price,
// bids (highest first) and comments (oldest first). Price resolution works
// the same for closed listings, reflecting the final leading bid.
func (s *Service) GetListingByID(ctx context.Context, listingID uuid.UUID) (*ListingDetail, error) {
	if listingID == uuid.Nil {
		return nil, ErrListingNotFound
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var bids []domain.Bid
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order(`amount DESC, "createdAt" ASC`).Find(&bids).Error; err != nil {
		return nil, err
	}
	var comments []domain.Comment
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order(`"createdAt" ASC`).Find(&comments).Error; err != nil {
		return nil, err
	}
	quote := pricing.Resolve(listing, bids)
	return &ListingDetail{
		Listing:         listing,
		CurrentPrice:    quote.CurrentPrice,
		LeadingBidderID: quote.LeadingBidderID,
		Bids:            bids,
		Comments:        comments,
	}, nil
}

// CloseListing transitions the listing from active to closed. Only the
// creator may close; a second close by the creator is a no-op success.
// The bid and comment history is untouched.
func (s *Service) CloseListing(ctx context.Context, listingID, userID uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.CreatorID != userID {
		return nil, ErrNotListingOwner
	}
	if !listing.IsActive {
		return &listing, nil
	}

	var bids []domain.Bid
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Find(&bids).Error; err != nil {
		return nil, err
	}
	quote := pricing.Resolve(listing, bids)

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	listing.IsActive = false
	if err := tx.Save(&listing).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	eventDataBytes, _ := json.Marshal(map[string]interface{}{
		"final_price": quote.CurrentPrice,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: constants.EventClosed,
		EventData: datatypes.JSON(eventDataBytes),
		ActorID:   &userID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &listing, nil
}
