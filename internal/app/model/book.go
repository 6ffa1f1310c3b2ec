package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Book is a catalog record. IDs are opaque strings chosen at import time and
// referenced as-is by cart line items and reviews.
type Book struct {
	ID            string         `gorm:"primarykey;size:64" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Author        string         `gorm:"not null" json:"author"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	Image         string         `json:"image"`
	ISBN          string         `gorm:"size:32" json:"isbn"`
	Genre         pq.StringArray `gorm:"type:text[]" json:"genre"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`
	DatePublished string         `gorm:"size:32" json:"date_published"`
	Pages         int            `json:"pages"`
	Language      string         `gorm:"size:32" json:"language"`
	Publisher     string         `json:"publisher"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	ReviewCount   int            `gorm:"default:0" json:"review_count"`
	InStock       bool           `gorm:"default:true" json:"in_stock"`
	Featured      bool           `gorm:"default:false" json:"featured"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Book) TableName() string {
	return "books"
}
