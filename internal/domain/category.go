package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups listings. Deleting a category nulls category_id on its
// listings instead of cascading (handled in the categories service).
type Category struct {
	CategoryID  uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey" json:"category_id"`
	Name        string    `gorm:"column:name;type:varchar(64);not null;uniqueIndex" json:"name"`
	Description string    `gorm:"column:description;type:varchar(500);not null" json:"description"`
	CreatedAt   time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Category) TableName() string {
	return "Categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.CategoryID == uuid.Nil {
		c.CategoryID = uuid.New()
	}
	return nil
}
