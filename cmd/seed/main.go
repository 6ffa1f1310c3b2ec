package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/amanabooks/bookstore-backend/config"
	"github.com/amanabooks/bookstore-backend/internal/app/model"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Expected column layout of the catalog workbook, first sheet, header row
// included:
//
//	id | title | author | description | price | isbn | genre | tags |
//	date_published | pages | language | publisher | featured | in_stock
//
// genre and tags are semicolon-separated lists.
const expectedColumns = 14

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	gdb, err := db.Connect(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close(gdb)

	if err := db.Migrate(gdb); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	bookRepo := repository.NewBookRepository(gdb)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	books, skipped, err := readBooksFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total books to import: %d (skipped %d invalid rows)\n", len(books), skipped)
	if len(books) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := bookRepo.BulkCreate(books, batchSize); err != nil {
		log.Fatal("Failed to bulk create books:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total books imported: %d\n", len(books))
}

func readBooksFromXLSX(filePath string) ([]model.Book, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var books []model.Book
	seenIDs := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < expectedColumns {
			skipped++
			continue
		}

		id := strings.TrimSpace(row[0])
		title := strings.TrimSpace(row[1])
		author := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[4])

		if id == "" || title == "" || author == "" {
			skipped++
			continue
		}
		if seenIDs[id] {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		pages, _ := strconv.Atoi(strings.TrimSpace(row[9]))

		book := model.Book{
			ID:            id,
			Title:         title,
			Author:        author,
			Description:   strings.TrimSpace(row[3]),
			Price:         price,
			ISBN:          strings.TrimSpace(row[5]),
			Genre:         splitList(row[6]),
			Tags:          splitList(row[7]),
			DatePublished: strings.TrimSpace(row[8]),
			Pages:         pages,
			Language:      strings.TrimSpace(row[10]),
			Publisher:     strings.TrimSpace(row[11]),
			Featured:      parseBool(row[12]),
			InStock:       parseBool(row[13]),
		}

		seenIDs[id] = true
		books = append(books, book)
	}

	return books, skipped, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
