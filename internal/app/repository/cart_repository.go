package repository

import (
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository is the persistence boundary for carts. Mutations that can
// race for the same cart identifier are single-statement upserts or guarded
// updates, so two concurrent adds both land instead of one overwriting the
// other.
type CartRepository interface {
	FindByCartID(cartID string) (*model.Cart, error)
	GetOrCreate(cartID string) (*model.Cart, error)
	AddItemQuantity(cartID, bookID string, quantity int) error
	SetItemQuantity(cartID, bookID string, quantity int) (bool, error)
	RemoveItem(cartID, bookID string) (bool, error)
	CountItems(cartID string) (int, error)
	Touch(cartID string) error
	Delete(cartID string) (bool, error)
	DeleteIdle(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindByCartID loads a cart with its line items in insertion order.
// Returns gorm.ErrRecordNotFound for an unknown identifier; an existing
// cart with no items is a distinct, valid result.
func (r *cartRepository) FindByCartID(cartID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id ASC")
	}).First(&cart, "cart_id = ?", cartID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find cart in database", err, map[string]interface{}{
				"cart_id": cartID,
			})
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreate inserts the cart row if it does not exist yet. The insert is
// ON CONFLICT DO NOTHING on the primary key, so concurrent callers for the
// same identifier converge on a single row.
func (r *cartRepository) GetOrCreate(cartID string) (*model.Cart, error) {
	cart := model.Cart{CartID: cartID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error
	if err != nil {
		logger.Error("Failed to get or create cart in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	var existing model.Cart
	if err := r.db.First(&existing, "cart_id = ?", cartID).Error; err != nil {
		return nil, err
	}

	logger.Debug("Cart resolved in database", map[string]interface{}{
		"cart_id": cartID,
	})
	return &existing, nil
}

// AddItemQuantity increments the line for (cartID, bookID) by quantity,
// inserting it when absent. The increment happens inside the upsert
// statement; a plain read-then-save would drop one of two rapid adds.
func (r *cartRepository) AddItemQuantity(cartID, bookID string, quantity int) error {
	now := time.Now()
	item := model.CartItem{
		CartID:    cartID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": now,
		}),
	}).Create(&item).Error
	if err != nil {
		logger.Error("Failed to add item quantity in database", err, map[string]interface{}{
			"cart_id":  cartID,
			"book_id":  bookID,
			"quantity": quantity,
		})
		return err
	}

	logger.Debug("Cart item upserted in database", map[string]interface{}{
		"cart_id":  cartID,
		"book_id":  bookID,
		"quantity": quantity,
	})
	return nil
}

// SetItemQuantity replaces the stored quantity for an existing line.
// The second return value reports whether the line existed.
func (r *cartRepository) SetItemQuantity(cartID, bookID string, quantity int) (bool, error) {
	result := r.db.Model(&model.CartItem{}).
		Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		logger.Error("Failed to set item quantity in database", result.Error, map[string]interface{}{
			"cart_id":  cartID,
			"book_id":  bookID,
			"quantity": quantity,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveItem deletes the line for (cartID, bookID). The second return value
// reports whether the line existed.
func (r *cartRepository) RemoveItem(cartID, bookID string) (bool, error) {
	result := r.db.Where("cart_id = ? AND book_id = ?", cartID, bookID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to remove cart item from database", result.Error, map[string]interface{}{
			"cart_id": cartID,
			"book_id": bookID,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountItems returns the sum of quantities across the cart's lines, which is
// the badge count. Zero for an unknown cart.
func (r *cartRepository) CountItems(cartID string) (int, error) {
	var total int
	err := r.db.Model(&model.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to count cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}
	return total, nil
}

// Touch bumps the cart's updated_at so it moves monotonically with each
// mutating operation.
func (r *cartRepository) Touch(cartID string) error {
	err := r.db.Model(&model.Cart{}).
		Where("cart_id = ?", cartID).
		Update("updated_at", time.Now()).Error
	if err != nil {
		logger.Error("Failed to touch cart in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
	}
	return err
}

// Delete removes the cart and its lines. The second return value reports
// whether the cart existed.
func (r *cartRepository) Delete(cartID string) (bool, error) {
	var found bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Cart{}, "cart_id = ?", cartID)
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete cart from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return false, err
	}

	logger.Debug("Cart deleted from database", map[string]interface{}{
		"cart_id": cartID,
		"found":   found,
	})
	return found, nil
}

// DeleteIdle purges carts whose updated_at is older than cutoff, along with
// their lines. Used by the cleanup scheduler.
func (r *cartRepository) DeleteIdle(cutoff time.Time) (int64, error) {
	var purged int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Cart{}).
			Where("updated_at < ?", cutoff).
			Pluck("cart_id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("cart_id IN ?", ids).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("cart_id IN ?", ids).Delete(&model.Cart{})
		if result.Error != nil {
			return result.Error
		}
		purged = result.RowsAffected
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete idle carts from database", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	if purged > 0 {
		logger.Info("Idle carts purged from database", map[string]interface{}{
			"count":  purged,
			"cutoff": cutoff,
		})
	}
	return purged, nil
}
