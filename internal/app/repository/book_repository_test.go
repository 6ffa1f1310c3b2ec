package repository

import (
	"testing"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/db"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookTest(t *testing.T) (*gorm.DB, BookRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewBookRepository(testDB)

	books := []model.Book{
		{
			ID:       "book-1",
			Title:    "Cosmos",
			Author:   "Carl Sagan",
			Price:    22.50,
			Genre:    pq.StringArray{"Science", "Astronomy"},
			Featured: true,
		},
		{
			ID:     "book-2",
			Title:  "A Brief History of Time",
			Author: "Stephen Hawking",
			Price:  15.99,
		},
	}
	require.NoError(t, testDB.Create(&books).Error)

	return testDB, repo
}

func TestBookRepository_FindAll_OrderedByTitle(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	books, err := repo.FindAll()
	assert.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "A Brief History of Time", books[0].Title)
	assert.Equal(t, "Cosmos", books[1].Title)
}

func TestBookRepository_FindFeatured(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	books, err := repo.FindFeatured()
	assert.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "book-1", books[0].ID)
}

func TestBookRepository_FindByID(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	book, err := repo.FindByID("book-1")
	assert.NoError(t, err)
	assert.Equal(t, "Cosmos", book.Title)

	_, err = repo.FindByID("book-missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookRepository_FindByIDs_ToleratesMissing(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	books, err := repo.FindByIDs([]string{"book-1", "book-gone", "book-2"})
	assert.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = repo.FindByIDs(nil)
	assert.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_BulkCreate(t *testing.T) {
	testDB, repo := setupBookTest(t)
	defer db.CleanupTestDB(testDB)

	batch := []model.Book{
		{ID: "book-10", Title: "Dune", Author: "Frank Herbert", Price: 18.00},
		{ID: "book-11", Title: "Foundation", Author: "Isaac Asimov", Price: 14.25},
	}

	err := repo.BulkCreate(batch, 100)
	assert.NoError(t, err)

	books, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, books, 4)
}
