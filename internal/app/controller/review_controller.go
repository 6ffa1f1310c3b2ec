package controller

import (
	"errors"
	"net/http"

	"github.com/amanabooks/bookstore-backend/internal/app/service"
	apperrors "github.com/amanabooks/bookstore-backend/internal/errors"
	"github.com/amanabooks/bookstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// ListBookReviews returns all reviews for a book, newest first. The book
// must exist; an unknown book is a 404, not an empty list.
// GET /api/v1/books/:id/reviews
func (ctrl *ReviewController) ListBookReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	bookID := c.Param("id")
	if bookID == "" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Book ID is required")
		return
	}

	reviews, err := ctrl.reviewService.GetBookReviews(bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			log.Warn("Book not found for reviews", map[string]interface{}{
				"book_id": bookID,
			})
			apperrors.NotFound(c, apperrors.BookNotFound, "Book not found")
			return
		}
		log.Error("Failed to list reviews", err, map[string]interface{}{
			"book_id": bookID,
		})
		info := apperrors.ParseError(err, "review")
		if info.Code == apperrors.StorageUnavailable {
			apperrors.RespondWithError(c, http.StatusServiceUnavailable, info.Code, info.Message)
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book_id": bookID,
		"reviews": reviews,
		"count":   len(reviews),
	})
}
