package watchlist

import (
	"context"
	"errors"

	"gavel-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListingNotFound = errors.New("Listing not found")

type Service struct {
	DB *gorm.DB
}

// Toggle flips watchlist membership for (user, listing). Returns whether
// the listing is watched after the call.
func (s *Service) Toggle(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, ErrListingNotFound
		}
		return false, err
	}

	var item domain.WatchlistItem
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&item).Error
	if err == nil {
		if err := s.DB.WithContext(ctx).
			Where("user_id = ? AND listing_id = ?", userID, listingID).
			Delete(&domain.WatchlistItem{}).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	item = domain.WatchlistItem{UserID: userID, ListingID: listingID}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return false, err
	}
	return true, nil
}

// View returns the user's watched listings, active first, newest first.
func (s *Service) View(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := s.DB.WithContext(ctx).
		Joins(`JOIN "WatchlistItems" wi ON wi.listing_id = "Listings".listing_id`).
		Where("wi.user_id = ?", userID).
		Order(`"Listings".is_active DESC, "Listings"."createdAt" DESC`).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}
