package service

import (
	"testing"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookServiceTest(t *testing.T) (*gorm.DB, BookService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	books := []model.Book{
		{ID: "book-1", Title: "Cosmos", Author: "Carl Sagan", Price: 22.50, Featured: true},
		{ID: "book-2", Title: "Dune", Author: "Frank Herbert", Price: 18.00},
	}
	require.NoError(t, testDB.Create(&books).Error)

	svc := NewBookService(repository.NewBookRepository(testDB), 0)
	return testDB, svc
}

func TestBookService_ListBooks(t *testing.T) {
	testDB, svc := setupBookServiceTest(t)
	defer db.CleanupTestDB(testDB)

	books, err := svc.ListBooks()
	assert.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestBookService_ListFeatured(t *testing.T) {
	testDB, svc := setupBookServiceTest(t)
	defer db.CleanupTestDB(testDB)

	books, err := svc.ListFeatured()
	assert.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "book-1", books[0].ID)
}

func TestBookService_GetBookByID(t *testing.T) {
	testDB, svc := setupBookServiceTest(t)
	defer db.CleanupTestDB(testDB)

	book, err := svc.GetBookByID("book-2")
	assert.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = svc.GetBookByID("book-missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_CreateBook(t *testing.T) {
	testDB, svc := setupBookServiceTest(t)
	defer db.CleanupTestDB(testDB)

	err := svc.CreateBook(&model.Book{
		ID:     "book-3",
		Title:  "Foundation",
		Author: "Isaac Asimov",
		Price:  14.25,
	})
	assert.NoError(t, err)

	err = svc.CreateBook(&model.Book{ID: "book-1", Title: "Duplicate", Author: "Nobody", Price: 1})
	assert.ErrorIs(t, err, ErrBookAlreadyExists)
}
