package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/velmora/storefront-backend/config"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Catalog import tool. Reads an XLSX where each row is one color variant:
//
//	name | description | price | category | color | color_code | extra_price | sizes | image_path
//
// Consecutive rows sharing a product name are folded into one product with
// multiple colors.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d (skipped %d rows)\n", len(products), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, int, error) {
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

	var products []model.Product
	productIndex := make(map[string]int)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 8 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		priceStr := strings.TrimSpace(row[2])
		category := strings.TrimSpace(row[3])
		colorName := strings.TrimSpace(row[4])
		colorCode := strings.TrimSpace(row[5])
		extraPriceStr := strings.TrimSpace(row[6])
		sizesStr := strings.TrimSpace(row[7])

		imagePath := ""
		if len(row) > 8 {
			imagePath = strings.TrimSpace(row[8])
		}

		if name == "" || colorName == "" || sizesStr == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		extraPrice := 0.0
		if extraPriceStr != "" {
			extraPrice, err = strconv.ParseFloat(extraPriceStr, 64)
			if err != nil || extraPrice < 0 {
				skippedCount++
				continue
			}
		}

		color := model.ProductColor{
			Name:       colorName,
			Code:       colorCode,
			ExtraPrice: extraPrice,
		}
		color.SetSizeList(strings.Split(sizesStr, ","))

		idx, exists := productIndex[name]
		if !exists {
			products = append(products, model.Product{
				Name:        name,
				Description: description,
				Price:       price,
				Category:    strings.ToLower(category),
			})
			idx = len(products) - 1
			productIndex[name] = idx
		}

		products[idx].Colors = append(products[idx].Colors, color)

		if imagePath != "" {
			products[idx].Images = append(products[idx].Images, model.ProductImage{
				Path:     imagePath,
				Position: len(products[idx].Images),
			})
		}
	}

	return products, skippedCount, nil
}
