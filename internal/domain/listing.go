package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing is an item open for bidding. InitialPrice and CreatorID are fixed
// at creation. The current price is never stored: it is derived from the
// listing's bids on every read (see internal/application/pricing).
type Listing struct {
	ListingID    uuid.UUID  `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Title        string     `gorm:"column:title;type:varchar(50);not null" json:"title"`
	Description  string     `gorm:"column:description;type:varchar(500);not null" json:"description"`
	ImageURL     *string    `gorm:"column:image_url" json:"image_url"`
	InitialPrice float64    `gorm:"column:initial_price;type:decimal(18,2);not null" json:"initial_price"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CategoryID   *uuid.UUID `gorm:"column:category_id;type:uuid" json:"category_id"`
	CreatorID    uuid.UUID  `gorm:"column:creator_id;type:uuid;not null" json:"creator_id"`
	CreatedAt    time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Listing) TableName() string {
	return "Listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
