package bidding

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"gavel-backend/internal/application/pricing"
	"gavel-backend/internal/domain"
	"gavel-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service implements bid validation and placement.
type Service struct {
	DB *gorm.DB
}

// PlaceBidInput is a proposed bid from an authenticated user.
type PlaceBidInput struct {
	ListingID uuid.UUID
	BidderID  uuid.UUID
	Amount    float64
}

// PlaceBid validates the proposed amount against the resolved current price
// and inserts the bid. A bid is accepted iff the listing is active and
// amount > current price, where current price falls back to the initial
// price when the listing has no bids, so the very first bid must strictly
// exceed the initial price. Validation and insertion run in one
// transaction holding a row lock on the listing, so two concurrent bids
// cannot both pass against a stale price.
func (s *Service) PlaceBid(ctx context.Context, in PlaceBidInput) (*domain.Bid, error) {
	if in.ListingID == uuid.Nil || in.BidderID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing listing or bidder", ErrInvalidBid)
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be a positive finite number", ErrInvalidBid)
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Lock the listing row so concurrent placements against the same listing
	// serialize; without it two transactions can validate against the same
	// stale price under READ COMMITTED. SQLite (tests) has no row locks and
	// its dialector drops the clause.
	var listing domain.Listing
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if !listing.IsActive {
		tx.Rollback()
		return nil, ErrListingClosed
	}

	var bids []domain.Bid
	if err := tx.Where("listing_id = ?", in.ListingID).Find(&bids).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	quote := pricing.Resolve(listing, bids)
	if in.Amount <= quote.CurrentPrice {
		tx.Rollback()
		return nil, fmt.Errorf("%w (current price is %.2f)", ErrBidTooLow, quote.CurrentPrice)
	}

	bid := &domain.Bid{
		ListingID: in.ListingID,
		BidderID:  in.BidderID,
		Amount:    in.Amount,
	}
	if err := tx.Create(bid).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	eventDataBytes, _ := json.Marshal(map[string]interface{}{
		"amount":         bid.Amount,
		"previous_price": quote.CurrentPrice,
	})
	if err := tx.Create(&domain.ListingEvent{
		ListingID: listing.ListingID,
		EventType: constants.EventBidPlaced,
		EventData: datatypes.JSON(eventDataBytes),
		ActorID:   &in.BidderID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return bid, nil
}

// ListBids returns a listing's bid history ordered by amount descending,
// earliest bid first among equal amounts.
func (s *Service) ListBids(ctx context.Context, listingID uuid.UUID) ([]domain.Bid, error) {
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
	return bids, nil
}

// Quote resolves the current price and leading bidder for a listing.
func (s *Service) Quote(ctx context.Context, listingID uuid.UUID) (*pricing.Quote, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	var bids []domain.Bid
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Find(&bids).Error; err != nil {
		return nil, err
	}
	q := pricing.Resolve(listing, bids)
	return &q, nil
}
