package domain

import (
	"time"

	"github.com/google/uuid"
)

// WatchlistItem is the user/listing many-to-many join. Watching a listing
// grants no privileges and has no effect on bidding.
type WatchlistItem struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (WatchlistItem) TableName() string {
	return "WatchlistItems"
}
