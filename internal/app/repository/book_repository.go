package repository

import (
	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookRepository interface {
	FindAll() ([]model.Book, error)
	FindFeatured() ([]model.Book, error)
	FindByID(id string) (*model.Book, error)
	FindByIDs(ids []string) ([]model.Book, error)
	Create(book *model.Book) error
	Update(book *model.Book) error
	Delete(id string) error
	BulkCreate(books []model.Book, batchSize int) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) FindAll() ([]model.Book, error) {
	var books []model.Book
	err := r.db.Order("title ASC").Find(&books).Error
	if err != nil {
		logger.Error("Failed to list books in database", err)
		return nil, err
	}

	logger.Debug("Books listed from database", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

func (r *bookRepository) FindFeatured() ([]model.Book, error) {
	var books []model.Book
	err := r.db.Where("featured = ?", true).Order("title ASC").Find(&books).Error
	if err != nil {
		logger.Error("Failed to list featured books in database", err)
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) FindByID(id string) (*model.Book, error) {
	logger.Debug("Finding book by ID in database", map[string]interface{}{
		"book_id": id,
	})

	var book model.Book
	err := r.db.First(&book, "id = ?", id).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find book by ID in database", err, map[string]interface{}{
				"book_id": id,
			})
		}
		return nil, err
	}
	return &book, nil
}

// FindByIDs returns the books that still exist for the given IDs; callers
// must tolerate missing entries (the cart read side drops them).
func (r *bookRepository) FindByIDs(ids []string) ([]model.Book, error) {
	if len(ids) == 0 {
		return []model.Book{}, nil
	}

	var books []model.Book
	err := r.db.Where("id IN ?", ids).Find(&books).Error
	if err != nil {
		logger.Error("Failed to find books by IDs in database", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Create(book *model.Book) error {
	if err := r.db.Create(book).Error; err != nil {
		logger.Error("Failed to create book in database", err, map[string]interface{}{
			"book_id": book.ID,
			"title":   book.Title,
		})
		return err
	}

	logger.Debug("Book created in database", map[string]interface{}{
		"book_id": book.ID,
	})
	return nil
}

func (r *bookRepository) Update(book *model.Book) error {
	if err := r.db.Save(book).Error; err != nil {
		logger.Error("Failed to update book in database", err, map[string]interface{}{
			"book_id": book.ID,
		})
		return err
	}
	return nil
}

func (r *bookRepository) Delete(id string) error {
	if err := r.db.Delete(&model.Book{}, "id = ?", id).Error; err != nil {
		logger.Error("Failed to delete book from database", err, map[string]interface{}{
			"book_id": id,
		})
		return err
	}
	return nil
}

// BulkCreate inserts books in batches, used by the xlsx importer.
func (r *bookRepository) BulkCreate(books []model.Book, batchSize int) error {
	if len(books) == 0 {
		return nil
	}

	if err := r.db.CreateInBatches(books, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create books in database", err, map[string]interface{}{
			"count": len(books),
		})
		return err
	}

	logger.Info("Books bulk created in database", map[string]interface{}{
		"count":      len(books),
		"batch_size": batchSize,
	})
	return nil
}
