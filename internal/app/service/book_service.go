package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/pkg/cache"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyExists = errors.New("book already exists")
)

type BookService interface {
	ListBooks() ([]model.Book, error)
	ListFeatured() ([]model.Book, error)
	GetBookByID(id string) (*model.Book, error)
	CreateBook(book *model.Book) error
}

type bookService struct {
	bookRepo   repository.BookRepository
	catalogTTL time.Duration
}

func NewBookService(bookRepo repository.BookRepository, catalogTTL time.Duration) BookService {
	return &bookService{
		bookRepo:   bookRepo,
		catalogTTL: catalogTTL,
	}
}

// ListBooks serves the full catalog, read through the short-TTL Redis cache
// when one is connected. Cart reads never use this cache; they go straight
// to the repository for current pricing.
func (s *bookService) ListBooks() ([]model.Book, error) {
	ctx := context.Background()

	if payload, ok := cache.GetCatalog(ctx); ok {
		var books []model.Book
		if err := json.Unmarshal(payload, &books); err == nil {
			logger.Debug("Catalog listing served from cache", map[string]interface{}{
				"count": len(books),
			})
			return books, nil
		}
		// A corrupt cache entry falls through to the database.
		cache.InvalidateCatalog(ctx)
	}

	books, err := s.bookRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list books", err)
		return nil, err
	}

	if payload, err := json.Marshal(books); err == nil {
		cache.SetCatalog(ctx, payload, s.catalogTTL)
	}

	logger.Info("Catalog listing fetched", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

func (s *bookService) ListFeatured() ([]model.Book, error) {
	return s.bookRepo.FindFeatured()
}

func (s *bookService) GetBookByID(id string) (*model.Book, error) {
	book, err := s.bookRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Book not found", map[string]interface{}{
				"book_id": id,
			})
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) CreateBook(book *model.Book) error {
	logger.Info("Creating book", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})

	if _, err := s.bookRepo.FindByID(book.ID); err == nil {
		return ErrBookAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.bookRepo.Create(book); err != nil {
		return err
	}

	cache.InvalidateCatalog(context.Background())
	return nil
}
