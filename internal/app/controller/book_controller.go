package controller

import (
	"errors"
	"net/http"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/service"
	apperrors "github.com/amanabooks/bookstore-backend/internal/errors"
	"github.com/amanabooks/bookstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type BookController struct {
	bookService service.BookService
}

func NewBookController(bookService service.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

// ListBooks returns the full catalog ordered by title.
// GET /api/v1/books
func (ctrl *BookController) ListBooks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	books, err := ctrl.bookService.ListBooks()
	if err != nil {
		log.Error("Failed to list books", err, nil)
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Books listed successfully", map[string]interface{}{
		"count": len(books),
	})

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// ListFeatured returns the books flagged for the storefront hero section.
// GET /api/v1/books/featured
func (ctrl *BookController) ListFeatured(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	books, err := ctrl.bookService.ListFeatured()
	if err != nil {
		log.Error("Failed to list featured books", err, nil)
		ctrl.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}

// GetBook returns a single book by its identifier.
// GET /api/v1/books/:id
func (ctrl *BookController) GetBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id := c.Param("id")
	if id == "" {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Book ID is required")
		return
	}

	book, err := ctrl.bookService.GetBookByID(id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			log.Warn("Book not found", map[string]interface{}{
				"book_id": id,
			})
			apperrors.NotFound(c, apperrors.BookNotFound, "Book not found")
			return
		}
		log.Error("Failed to fetch book", err, map[string]interface{}{
			"book_id": id,
		})
		ctrl.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

type CreateBookRequest struct {
	ID            string   `json:"id" binding:"required"`
	Title         string   `json:"title" binding:"required"`
	Author        string   `json:"author" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	Image         string   `json:"image"`
	ISBN          string   `json:"isbn"`
	Genre         []string `json:"genre"`
	Tags          []string `json:"tags"`
	DatePublished string   `json:"date_published"`
	Pages         int      `json:"pages"`
	Language      string   `json:"language"`
	Publisher     string   `json:"publisher"`
	InStock       bool     `json:"in_stock"`
	Featured      bool     `json:"featured"`
}

// CreateBook adds a book to the catalog. Used by the admin frontend after a
// cover upload; the storefront itself never writes the catalog.
// POST /api/v1/books
func (ctrl *BookController) CreateBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create book request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "id, title, author and a positive price are required")
		return
	}

	book := &model.Book{
		ID:            req.ID,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		Image:         req.Image,
		ISBN:          req.ISBN,
		Genre:         pq.StringArray(req.Genre),
		Tags:          pq.StringArray(req.Tags),
		DatePublished: req.DatePublished,
		Pages:         req.Pages,
		Language:      req.Language,
		Publisher:     req.Publisher,
		InStock:       req.InStock,
		Featured:      req.Featured,
	}

	if err := ctrl.bookService.CreateBook(book); err != nil {
		if errors.Is(err, service.ErrBookAlreadyExists) {
			apperrors.Conflict(c, apperrors.BookAlreadyExists, "A book with this ID already exists")
			return
		}
		log.Error("Failed to create book", err, map[string]interface{}{
			"book_id": req.ID,
		})
		ctrl.respondServiceError(c, err)
		return
	}

	log.Info("Book created successfully", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})

	c.JSON(http.StatusCreated, book)
}

func (ctrl *BookController) respondServiceError(c *gin.Context, err error) {
	info := apperrors.ParseError(err, "book")
	switch info.Code {
	case apperrors.StorageUnavailable:
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, info.Code, info.Message)
	case apperrors.ResourceAlreadyExists:
		// A concurrent duplicate create can slip past the existence check
		// and land here as a unique-constraint violation.
		apperrors.RespondWithError(c, http.StatusConflict, info.Code, info.Message)
	default:
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
	}
}
