package repository

import (
	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	FindByBookID(bookID string) ([]model.Review, error)
	Create(review *model.Review) error
	BulkCreate(reviews []model.Review, batchSize int) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// FindByBookID returns a book's reviews newest-first.
func (r *reviewRepository) FindByBookID(bookID string) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("book_id = ?", bookID).
		Order("timestamp DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by book ID in database", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, err
	}

	logger.Debug("Reviews found by book ID in database", map[string]interface{}{
		"book_id": bookID,
		"count":   len(reviews),
	})
	return reviews, nil
}

func (r *reviewRepository) Create(review *model.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"review_id": review.ID,
			"book_id":   review.BookID,
		})
		return err
	}
	return nil
}

func (r *reviewRepository) BulkCreate(reviews []model.Review, batchSize int) error {
	if len(reviews) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(reviews, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create reviews in database", err, map[string]interface{}{
			"count": len(reviews),
		})
		return err
	}
	return nil
}
