package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid is an offer on a listing. Bids are append-only: once created they are
// never updated or deleted, so the bid history of a listing is immutable.
type Bid struct {
	BidID     uuid.UUID `gorm:"column:bid_id;type:uuid;primaryKey" json:"bid_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	BidderID  uuid.UUID `gorm:"column:bidder_id;type:uuid;not null" json:"bidder_id"`
	Amount    float64   `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (Bid) TableName() string {
	return "Bids"
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.BidID == uuid.Nil {
		b.BidID = uuid.New()
	}
	return nil
}
