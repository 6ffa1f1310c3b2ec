package service

import (
	"errors"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewService interface {
	GetBookReviews(bookID string) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   repository.BookRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// GetBookReviews lists a book's reviews newest-first. The book must exist;
// reviews for a deleted book are unreachable rather than surfaced.
func (s *reviewService) GetBookReviews(bookID string) ([]model.Review, error) {
	if _, err := s.bookRepo.FindByID(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot list reviews: book not found", map[string]interface{}{
				"book_id": bookID,
			})
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByBookID(bookID)
	if err != nil {
		logger.Error("Failed to fetch book reviews", err, map[string]interface{}{
			"book_id": bookID,
		})
		return nil, err
	}

	logger.Info("Book reviews fetched", map[string]interface{}{
		"book_id": bookID,
		"count":   len(reviews),
	})
	return reviews, nil
}
