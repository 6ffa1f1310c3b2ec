package service

import (
	"sync"
	"testing"
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingNotifier captures badge pushes for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []int
}

func (n *recordingNotifier) NotifyBadge(cartID string, totalItems int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, totalItems)
}

func (n *recordingNotifier) last() (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return 0, false
	}
	return n.calls[len(n.calls)-1], true
}

func setupCartServiceTest(t *testing.T) (*gorm.DB, CartService, *recordingNotifier) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	books := []model.Book{
		{ID: "book-1", Title: "Cosmos", Author: "Carl Sagan", Price: 5.00},
		{ID: "book-2", Title: "Dune", Author: "Frank Herbert", Price: 10.00},
	}
	require.NoError(t, testDB.Create(&books).Error)

	notifier := &recordingNotifier{}
	cartRepo := repository.NewCartRepository(testDB)
	bookRepo := repository.NewBookRepository(testDB)
	svc := NewCartService(cartRepo, bookRepo, notifier)

	return testDB, svc, notifier
}

func TestCartService_AddToCart_MintsCartID(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	assert.NoError(t, err)
	assert.NotEmpty(t, cartID)
	assert.Contains(t, cartID, "cart_")

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.TotalItems)
}

func TestCartService_AddToCart_RepeatedAddsSumQuantity(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)

	returned, err := svc.AddToCart(cartID, "book-1", 3)
	assert.NoError(t, err)
	assert.Equal(t, cartID, returned)

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.AddToCart("", "book-1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddToCart("", "book-1", -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_AddToCart_UnknownBookLeavesCartUntouched(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 1)
	require.NoError(t, err)

	_, err = svc.AddToCart(cartID, "book-missing", 1)
	assert.ErrorIs(t, err, ErrBookNotFound)

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalItems)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "book-1", view.Items[0].BookID)
}

func TestCartService_ConcurrentAddsBothLand(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToCart(cartID, "book-1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity(cartID, "book-1", 7)
	assert.NoError(t, err)

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	assert.Equal(t, 7, view.Items[0].Quantity)
}

func TestCartService_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(cartID, "book-2", 1)
	require.NoError(t, err)

	err = svc.UpdateQuantity(cartID, "book-1", 0)
	assert.NoError(t, err)

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "book-2", view.Items[0].BookID)
}

func TestCartService_UpdateQuantity_Negative(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity(cartID, "book-1", -1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_UpdateQuantity_UnknownCart(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	err := svc.UpdateQuantity("cart-missing", "book-1", 2)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_UpdateQuantity_UnknownLine(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)

	err = svc.UpdateQuantity(cartID, "book-2", 4)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart_LastLineDeletesCart(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)

	err = svc.RemoveFromCart(cartID, "book-1")
	assert.NoError(t, err)

	// Cart row is gone with its last line.
	var count int64
	testDB.Model(&model.Cart{}).Where("cart_id = ?", cartID).Count(&count)
	assert.Equal(t, int64(0), count)

	// The identifier still reads as an empty view.
	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.TotalItems)
}

func TestCartService_RemoveFromCart_AbsentLine(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 1)
	require.NoError(t, err)

	err = svc.RemoveFromCart(cartID, "book-2")
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	// The failed removal left the cart as it was.
	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	err = svc.RemoveFromCart("cart-missing", "book-1")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	testDB, svc, notifier := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 3)
	require.NoError(t, err)

	err = svc.ClearCart(cartID)
	assert.NoError(t, err)

	last, ok := notifier.last()
	assert.True(t, ok)
	assert.Equal(t, 0, last)

	err = svc.ClearCart(cartID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestCartService_GetCart_UnknownIsEmptyView(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	view, err := svc.GetCart("cart-never-seen")
	assert.NoError(t, err)
	assert.Equal(t, "cart-never-seen", view.CartID)
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, view.TotalItems)
	assert.Equal(t, 0.0, view.TotalPrice)
}

func TestCartService_GetCart_Totals(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 3) // 3 x 5.00
	require.NoError(t, err)
	_, err = svc.AddToCart(cartID, "book-2", 1) // 1 x 10.00
	require.NoError(t, err)

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalItems)
	assert.InDelta(t, 25.00, view.TotalPrice, 0.001)
}

func TestCartService_GetCart_DropsOrphanedLines(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(cartID, "book-2", 1)
	require.NoError(t, err)

	// Retire book-2 from the catalog; its line stays in storage.
	require.NoError(t, testDB.Delete(&model.Book{}, "id = ?", "book-2").Error)

	view, err := svc.GetCart(cartID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "book-1", view.Items[0].BookID)
	assert.Equal(t, 2, view.TotalItems)
	assert.InDelta(t, 10.00, view.TotalPrice, 0.001)

	// The orphaned row was not deleted.
	var lineCount int64
	testDB.Model(&model.CartItem{}).Where("cart_id = ?", cartID).Count(&lineCount)
	assert.Equal(t, int64(2), lineCount)
}

func TestCartService_BadgeCount(t *testing.T) {
	testDB, svc, notifier := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	cartID, err := svc.AddToCart("", "book-1", 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(cartID, "book-2", 1)
	require.NoError(t, err)

	count, err := svc.BadgeCount(cartID)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	last, ok := notifier.last()
	assert.True(t, ok)
	assert.Equal(t, 3, last)

	count, err = svc.BadgeCount("cart-missing")
	assert.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCartService_PurgeIdleCarts(t *testing.T) {
	testDB, svc, _ := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	staleID, err := svc.AddToCart("", "book-1", 1)
	require.NoError(t, err)
	freshID, err := svc.AddToCart("", "book-2", 1)
	require.NoError(t, err)

	require.NoError(t, testDB.Model(&model.Cart{}).
		Where("cart_id = ?", staleID).
		UpdateColumn("updated_at", time.Now().Add(-48*time.Hour)).Error)

	purged, err := svc.PurgeIdleCarts(24 * time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	view, err := svc.GetCart(staleID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	view, err = svc.GetCart(freshID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}
