package model

import "time"

// Cart is keyed by the opaque client-held cart identifier, so one browser
// token maps to at most one cart. The row is created on first add and
// deleted on explicit clear or when the last line item is removed.
type Cart struct {
	CartID    string     `gorm:"primarykey;size:64;column:cart_id" json:"cart_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;references:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem is one (book, quantity) line. The unique (cart_id, book_id) index
// enforces at most one line per book; quantity is always >= 1 (zero means the
// row is deleted, never stored).
//
// BookID deliberately has no association to books: a book deleted after being
// added must leave the line representable so the read side can decide what to
// do with it.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CartID    string    `gorm:"size:64;not null;index:idx_cart_items_cart_book,unique" json:"cart_id"`
	BookID    string    `gorm:"size:64;not null;index:idx_cart_items_cart_book,unique" json:"book_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
