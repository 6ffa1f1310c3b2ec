package model

import "time"

// Review is a reader review attached to a book. Reviews are imported or
// written once and listed newest-first on the book detail page.
type Review struct {
	ID        string    `gorm:"primarykey;size:64" json:"id"`
	BookID    string    `gorm:"size:64;not null;index" json:"book_id"`
	Author    string    `gorm:"not null" json:"author"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Title     string    `json:"title"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
