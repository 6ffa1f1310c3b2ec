package service

import (
	"testing"
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*gorm.DB, ReviewService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	book := model.Book{ID: "book-1", Title: "Cosmos", Author: "Carl Sagan", Price: 22.50}
	require.NoError(t, testDB.Create(&book).Error)

	reviews := []model.Review{
		{ID: "review-1", BookID: "book-1", Author: "Alice", Rating: 5, Title: "Loved it", Timestamp: time.Now().Add(-2 * time.Hour)},
		{ID: "review-2", BookID: "book-1", Author: "Bob", Rating: 4, Title: "Solid read", Timestamp: time.Now().Add(-1 * time.Hour)},
	}
	require.NoError(t, testDB.Create(&reviews).Error)

	svc := NewReviewService(repository.NewReviewRepository(testDB), repository.NewBookRepository(testDB))
	return testDB, svc
}

func TestReviewService_GetBookReviews_NewestFirst(t *testing.T) {
	testDB, svc := setupReviewServiceTest(t)
	defer db.CleanupTestDB(testDB)

	reviews, err := svc.GetBookReviews("book-1")
	assert.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "review-2", reviews[0].ID)
	assert.Equal(t, "review-1", reviews[1].ID)
}

func TestReviewService_GetBookReviews_UnknownBook(t *testing.T) {
	testDB, svc := setupReviewServiceTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := svc.GetBookReviews("book-missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}
