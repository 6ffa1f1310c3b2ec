package controller

import (
	"errors"
	"math"
	"net/http"

	"github.com/amanabooks/bookstore-backend/internal/app/service"
	apperrors "github.com/amanabooks/bookstore-backend/internal/errors"
	"github.com/amanabooks/bookstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddToCartRequest struct {
	CartID   string `json:"cart_id"`
	BookID   string `json:"book_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,gt=0"`
}

type UpdateCartItemRequest struct {
	CartID   string `json:"cart_id" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required"`
}

// GetCart returns the enriched cart view. An unknown cartId yields the
// empty view, not an error.
// GET /api/v1/cart?cartId=
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID := c.Query("cartId")
	if cartID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "cartId is required")
		return
	}

	view, err := ctrl.cartService.GetCart(cartID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		ctrl.respondServiceError(c, err)
		return
	}

	// Monetary rounding happens here, at the presentation boundary only.
	view.TotalPrice = math.Round(view.TotalPrice*100) / 100

	log.Info("Cart fetched successfully", map[string]interface{}{
		"cart_id":     cartID,
		"total_items": view.TotalItems,
		"total_price": view.TotalPrice,
	})

	c.JSON(http.StatusOK, view)
}

// AddToCart adds a book to the cart, minting a cart identifier when the
// client has none. The response always carries the identifier the client
// must keep.
// POST /api/v1/cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "book_id is required and quantity must be positive")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	log.Debug("Adding item to cart", map[string]interface{}{
		"cart_id":  req.CartID,
		"book_id":  req.BookID,
		"quantity": quantity,
	})

	cartID, err := ctrl.cartService.AddToCart(req.CartID, req.BookID, quantity)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			log.Warn("Book not found for cart", map[string]interface{}{
				"book_id": req.BookID,
			})
			apperrors.NotFound(c, apperrors.BookNotFound, "Book not found")
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be at least 1")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id": req.CartID,
			"book_id": req.BookID,
		})
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"cart_id":  cartID,
		"book_id":  req.BookID,
		"quantity": quantity,
	})

	c.JSON(http.StatusCreated, gin.H{
		"cart_id": cartID,
		"message": "Item added to cart",
	})
}

// UpdateCartItem replaces a line's quantity; quantity zero removes the line.
// PUT /api/v1/cart/items/:book_id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID := c.Param("book_id")

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"book_id": bookID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "cart_id and quantity are required")
		return
	}

	log.Debug("Updating cart item", map[string]interface{}{
		"cart_id":  req.CartID,
		"book_id":  bookID,
		"quantity": *req.Quantity,
	})

	err := ctrl.cartService.UpdateQuantity(req.CartID, bookID, *req.Quantity)
	if err != nil {
		ctrl.respondCartMutationError(c, err, req.CartID, bookID)
		return
	}

	message := "Cart updated"
	if *req.Quantity == 0 {
		message = "Item removed from cart"
	}

	log.Info("Cart item updated successfully", map[string]interface{}{
		"cart_id":  req.CartID,
		"book_id":  bookID,
		"quantity": *req.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// RemoveFromCart removes one line from the cart.
// DELETE /api/v1/cart/items/:book_id?cartId=
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID := c.Param("book_id")
	cartID := c.Query("cartId")
	if cartID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "cartId is required")
		return
	}

	err := ctrl.cartService.RemoveFromCart(cartID, bookID)
	if err != nil {
		ctrl.respondCartMutationError(c, err, cartID, bookID)
		return
	}

	log.Info("Cart item removed successfully", map[string]interface{}{
		"cart_id": cartID,
		"book_id": bookID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
	})
}

// ClearCart deletes the cart entirely.
// DELETE /api/v1/cart?cartId=
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID := c.Query("cartId")
	if cartID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "cartId is required")
		return
	}

	err := ctrl.cartService.ClearCart(cartID)
	if err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
			return
		}
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cartID,
		})
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"cart_id": cartID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// Badge returns the live item count for the navigation badge.
// GET /api/v1/cart/badge?cartId=
func (ctrl *CartController) Badge(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID := c.Query("cartId")
	if cartID == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "cartId is required")
		return
	}

	count, err := ctrl.cartService.BadgeCount(cartID)
	if err != nil {
		log.Error("Failed to count cart items", err, map[string]interface{}{
			"cart_id": cartID,
		})
		ctrl.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_id":     cartID,
		"total_items": count,
	})
}

func (ctrl *CartController) respondCartMutationError(c *gin.Context, err error, cartID, bookID string) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrCartNotFound):
		log.Warn("Cart not found", map[string]interface{}{
			"cart_id": cartID,
		})
		apperrors.NotFound(c, apperrors.CartNotFound, "Cart not found")
	case errors.Is(err, service.ErrCartItemNotFound):
		log.Warn("Cart item not found", map[string]interface{}{
			"cart_id": cartID,
			"book_id": bookID,
		})
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Item not found in cart")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity cannot be negative")
	default:
		log.Error("Cart operation failed", err, map[string]interface{}{
			"cart_id": cartID,
			"book_id": bookID,
		})
		ctrl.respondServiceError(c, err)
	}
}

// respondServiceError distinguishes an unreachable store from a genuine
// server fault; the storefront shows "try again" for the former.
func (ctrl *CartController) respondServiceError(c *gin.Context, err error) {
	info := apperrors.ParseError(err, "cart")
	if info.Code == apperrors.StorageUnavailable {
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, info.Code, info.Message)
		return
	}
	apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
}
