package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products (disks, tires).
// Its slug is derived from the name on first save.
type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text"`
	Slug        string    `gorm:"size:120;uniqueIndex;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (c *Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	return ensureSlug(&c.Slug, c.Name)
}

func (c *Category) String() string {
	return c.Name
}
