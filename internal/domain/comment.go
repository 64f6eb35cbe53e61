package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is free text attached to a listing. Append-only, ordered by
// creation time.
type Comment struct {
	CommentID uuid.UUID `gorm:"column:comment_id;type:uuid;primaryKey" json:"comment_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	AuthorID  uuid.UUID `gorm:"column:author_id;type:uuid;not null" json:"author_id"`
	Content   string    `gorm:"column:content;type:varchar(500);not null" json:"content"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (Comment) TableName() string {
	return "Comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.CommentID == uuid.Nil {
		c.CommentID = uuid.New()
	}
	return nil
}
