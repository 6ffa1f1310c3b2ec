package db

import (
	"time"

	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate runs database migrations
func Migrate(gdb *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Book{},
		&model.Review{},
		&model.Cart{},
		&model.CartItem{},
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds a small starter catalog so a fresh database serves something.
// Bulk imports go through cmd/seed instead.
func Seed(gdb *gorm.DB) error {
	if err := seedBooks(gdb); err != nil {
		logger.Error("Failed to seed books", err)
		return err
	}
	if err := seedReviews(gdb); err != nil {
		logger.Error("Failed to seed reviews", err)
		return err
	}
	return nil
}

func seedBooks(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.Book{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Books already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding starter catalog...")

	books := []model.Book{
		{
			ID:            "1",
			Title:         "Fundamentals of Classical Mechanics",
			Author:        "Dr. Ahmad Al-Kindi",
			Description:   "A comprehensive introduction to classical mechanics.",
			Price:         89.99,
			Image:         "/images/book1.jpg",
			ISBN:          "978-0123456789",
			Genre:         []string{"Physics", "Textbook"},
			Tags:          []string{"Mechanics", "Physics"},
			DatePublished: "2022-01-15",
			Pages:         654,
			Language:      "English",
			Publisher:     "Al-Biruni Academic Press",
			Rating:        4.8,
			ReviewCount:   23,
			InStock:       true,
			Featured:      true,
		},
		{
			ID:            "2",
			Title:         "Quantum Physics: Principles and Applications",
			Author:        "Prof. Fatima Al-Haytham",
			Description:   "Advanced textbook exploring quantum mechanics.",
			Price:         125.50,
			Image:         "/images/book2.jpg",
			ISBN:          "978-0234567890",
			Genre:         []string{"Physics", "Quantum Mechanics"},
			Tags:          []string{"Quantum", "Advanced Physics"},
			DatePublished: "2023-03-10",
			Pages:         782,
			Language:      "English",
			Publisher:     "Ibn Sina Publications",
			Rating:        4.9,
			ReviewCount:   18,
			InStock:       true,
			Featured:      true,
		},
		{
			ID:            "3",
			Title:         "Stellar Astrophysics and Galactic Structure",
			Author:        "Dr. Omar Al-Battani",
			Description:   "Explores stellar evolution and galactic dynamics.",
			Price:         98.75,
			Image:         "/images/book3.jpg",
			ISBN:          "978-0345678901",
			Genre:         []string{"Astronomy", "Astrophysics"},
			Tags:          []string{"Stars", "Galaxies"},
			DatePublished: "2022-09-20",
			Pages:         567,
			Language:      "English",
			Publisher:     "Al-Sufi Astronomical Society",
			Rating:        4.7,
			ReviewCount:   12,
			InStock:       false,
			Featured:      false,
		},
	}

	for _, book := range books {
		if err := gdb.Create(&book).Error; err != nil {
			logger.Error("Failed to create book", err, map[string]interface{}{
				"book_id": book.ID,
			})
			return err
		}
	}

	logger.Info("Starter catalog seeded successfully", map[string]interface{}{
		"total_books": len(books),
	})
	return nil
}

func seedReviews(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&model.Review{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Reviews already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding starter reviews...")

	reviews := []model.Review{
		{
			ID:        "review-1",
			BookID:    "1",
			Author:    "Dr. Yasmin Al-Baghdadi",
			Rating:    5,
			Title:     "Excellent foundation",
			Comment:   "Comprehensive introduction with clear mathematical derivations.",
			Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			Verified:  true,
		},
		{
			ID:        "review-2",
			BookID:    "1",
			Author:    "Prof. Khalid Al-Razi",
			Rating:    4,
			Title:     "Solid textbook",
			Comment:   "Good coverage of the fundamentals, though the exercises are uneven.",
			Timestamp: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC),
			Verified:  false,
		},
		{
			ID:        "review-3",
			BookID:    "2",
			Author:    "Dr. Layla Al-Farabi",
			Rating:    5,
			Title:     "The reference for the field",
			Comment:   "Every derivation is worked out in full. Worth the price.",
			Timestamp: time.Date(2024, 3, 21, 16, 45, 0, 0, time.UTC),
			Verified:  true,
		},
	}

	for _, review := range reviews {
		if err := gdb.Create(&review).Error; err != nil {
			logger.Error("Failed to create review", err, map[string]interface{}{
				"review_id": review.ID,
			})
			return err
		}
	}

	logger.Info("Starter reviews seeded successfully", map[string]interface{}{
		"total_reviews": len(reviews),
	})
	return nil
}
