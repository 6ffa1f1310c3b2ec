package service

import (
	"errors"
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

// BadgeNotifier receives the new badge count after every successful cart
// mutation. The websocket hub implements it; a nil notifier is a no-op.
type BadgeNotifier interface {
	NotifyBadge(cartID string, totalItems int)
}

// EnrichedCartItem joins a stored line with the book's current catalog
// record. Built fresh on every read, never persisted or cached: pricing may
// change between add and checkout.
type EnrichedCartItem struct {
	BookID   string     `json:"book_id"`
	Quantity int        `json:"quantity"`
	Book     model.Book `json:"book"`
}

type CartView struct {
	CartID     string             `json:"cart_id"`
	Items      []EnrichedCartItem `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice float64            `json:"total_price"`
}

type CartService interface {
	GetCart(cartID string) (*CartView, error)
	AddToCart(cartID, bookID string, quantity int) (string, error)
	UpdateQuantity(cartID, bookID string, quantity int) error
	RemoveFromCart(cartID, bookID string) error
	ClearCart(cartID string) error
	BadgeCount(cartID string) (int, error)
	PurgeIdleCarts(idleFor time.Duration) (int64, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
	notifier BadgeNotifier
}

func NewCartService(
	cartRepo repository.CartRepository,
	bookRepo repository.BookRepository,
	notifier ...BadgeNotifier,
) CartService {
	var badgeNotifier BadgeNotifier
	if len(notifier) > 0 {
		badgeNotifier = notifier[0]
	}
	return &cartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
		notifier: badgeNotifier,
	}
}

// newCartID mints a fresh client-holdable cart identifier. Used when a
// client adds to cart without one; the client stores the returned value.
func newCartID() string {
	return "cart_" + uuid.NewString()
}

// AddToCart adds quantity of a book to the cart, creating the cart when the
// identifier is empty or unknown. The book is verified against the catalog
// before any write, so an unknown book leaves the cart untouched.
func (s *cartService) AddToCart(cartID, bookID string, quantity int) (string, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":  cartID,
		"book_id":  bookID,
		"quantity": quantity,
	})

	if quantity < 1 {
		return "", ErrInvalidQuantity
	}

	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: book not found", map[string]interface{}{
				"cart_id": cartID,
				"book_id": bookID,
			})
			return "", ErrBookNotFound
		}
		logger.Error("Failed to verify book for cart", err, map[string]interface{}{
			"book_id": bookID,
		})
		return "", err
	}

	if cartID == "" {
		cartID = newCartID()
		logger.Debug("Minted new cart identifier", map[string]interface{}{
			"cart_id": cartID,
		})
	}

	if _, err := s.cartRepo.GetOrCreate(cartID); err != nil {
		return "", err
	}

	if err := s.cartRepo.AddItemQuantity(cartID, bookID, quantity); err != nil {
		logger.Error("Failed to add cart item", err, map[string]interface{}{
			"cart_id": cartID,
			"book_id": bookID,
		})
		return "", err
	}

	if err := s.cartRepo.Touch(cartID); err != nil {
		return "", err
	}

	s.pushBadge(cartID)

	logger.Info("Cart item added successfully", map[string]interface{}{
		"cart_id": cartID,
		"book_id": bookID,
	})
	return cartID, nil
}

// UpdateQuantity replaces the stored quantity for a line. Quantity zero is
// the same as removing the line; negative quantities are rejected.
func (s *cartService) UpdateQuantity(cartID, bookID string, quantity int) error {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"cart_id":  cartID,
		"book_id":  bookID,
		"quantity": quantity,
	})

	if quantity < 0 {
		return ErrInvalidQuantity
	}

	if err := s.requireCart(cartID); err != nil {
		return err
	}

	if quantity == 0 {
		return s.removeLine(cartID, bookID)
	}

	found, err := s.cartRepo.SetItemQuantity(cartID, bookID, quantity)
	if err != nil {
		return err
	}
	if !found {
		logger.Warn("Cart item not found for update", map[string]interface{}{
			"cart_id": cartID,
			"book_id": bookID,
		})
		return ErrCartItemNotFound
	}

	if err := s.cartRepo.Touch(cartID); err != nil {
		return err
	}

	s.pushBadge(cartID)
	return nil
}

// RemoveFromCart deletes one line from the cart.
func (s *cartService) RemoveFromCart(cartID, bookID string) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"cart_id": cartID,
		"book_id": bookID,
	})

	if err := s.requireCart(cartID); err != nil {
		return err
	}

	return s.removeLine(cartID, bookID)
}

// ClearCart deletes the cart entirely.
func (s *cartService) ClearCart(cartID string) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"cart_id": cartID,
	})

	found, err := s.cartRepo.Delete(cartID)
	if err != nil {
		return err
	}
	if !found {
		return ErrCartNotFound
	}

	s.notify(cartID, 0)
	return nil
}

// GetCart computes the presentation view. An unknown identifier yields an
// empty view, not an error: absence of a cart is a normal read result.
// Lines whose book has left the catalog are dropped from the view; the rows
// stay in storage.
func (s *cartService) GetCart(cartID string) (*CartView, error) {
	view := &CartView{
		CartID: cartID,
		Items:  []EnrichedCartItem{},
	}

	cart, err := s.cartRepo.FindByCartID(cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		logger.Error("Failed to load cart for view", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}

	bookIDs := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		bookIDs = append(bookIDs, item.BookID)
	}

	books, err := s.bookRepo.FindByIDs(bookIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Book, len(books))
	for _, book := range books {
		byID[book.ID] = book
	}

	dropped := 0
	for _, item := range cart.Items {
		book, ok := byID[item.BookID]
		if !ok {
			dropped++
			continue
		}
		view.Items = append(view.Items, EnrichedCartItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Book:     book,
		})
		view.TotalItems += item.Quantity
		view.TotalPrice += book.Price * float64(item.Quantity)
	}

	if dropped > 0 {
		logger.Warn("Dropped stale cart lines from view", map[string]interface{}{
			"cart_id": cartID,
			"dropped": dropped,
		})
	}

	logger.Debug("Cart view computed", map[string]interface{}{
		"cart_id":     cartID,
		"total_items": view.TotalItems,
	})
	return view, nil
}

// BadgeCount returns the sum of line quantities, zero for an unknown cart.
func (s *cartService) BadgeCount(cartID string) (int, error) {
	return s.cartRepo.CountItems(cartID)
}

// PurgeIdleCarts drops carts untouched for longer than idleFor. Anonymous
// carts are never checked out server-side, so abandoned ones only ever grow
// the table.
func (s *cartService) PurgeIdleCarts(idleFor time.Duration) (int64, error) {
	cutoff := time.Now().Add(-idleFor)

	purged, err := s.cartRepo.DeleteIdle(cutoff)
	if err != nil {
		logger.Error("Failed to purge idle carts", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	if purged > 0 {
		logger.Info("Purged idle carts", map[string]interface{}{
			"purged": purged,
			"cutoff": cutoff,
		})
	}
	return purged, nil
}

func (s *cartService) requireCart(cartID string) error {
	if _, err := s.cartRepo.FindByCartID(cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart not found", map[string]interface{}{
				"cart_id": cartID,
			})
			return ErrCartNotFound
		}
		return err
	}
	return nil
}

// removeLine deletes one line and, when it was the last one, the cart row
// itself, so emptied carts do not accumulate. The client keeps its
// identifier; a later add transparently recreates the cart.
func (s *cartService) removeLine(cartID, bookID string) error {
	found, err := s.cartRepo.RemoveItem(cartID, bookID)
	if err != nil {
		return err
	}
	if !found {
		logger.Warn("Cart item not found for removal", map[string]interface{}{
			"cart_id": cartID,
			"book_id": bookID,
		})
		return ErrCartItemNotFound
	}

	remaining, err := s.cartRepo.CountItems(cartID)
	if err != nil {
		return err
	}

	if remaining == 0 {
		if _, err := s.cartRepo.Delete(cartID); err != nil {
			return err
		}
		logger.Info("Emptied cart deleted", map[string]interface{}{
			"cart_id": cartID,
		})
	} else if err := s.cartRepo.Touch(cartID); err != nil {
		return err
	}

	s.notify(cartID, remaining)
	return nil
}

func (s *cartService) pushBadge(cartID string) {
	if s.notifier == nil {
		return
	}
	count, err := s.cartRepo.CountItems(cartID)
	if err != nil {
		return
	}
	s.notifier.NotifyBadge(cartID, count)
}

func (s *cartService) notify(cartID string, totalItems int) {
	if s.notifier != nil {
		s.notifier.NotifyBadge(cartID, totalItems)
	}
}
