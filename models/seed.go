package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDemoData fills an empty catalog with a handful of disks and tires.
// Rows are matched by article, so running it twice is harmless.
func SeedDemoData(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	disksCategory := Category{Name: "Disks", Description: "Alloy and steel wheel rims"}
	if err := db.Where(Category{Slug: "disks"}).FirstOrCreate(&disksCategory).Error; err != nil {
		return fmt.Errorf("seed disk category: %w", err)
	}
	tiresCategory := Category{Name: "Tires", Description: "Passenger, truck and sport tires"}
	if err := db.Where(Category{Slug: "tires"}).FirstOrCreate(&tiresCategory).Error; err != nil {
		return fmt.Errorf("seed tire category: %w", err)
	}

	disks := []Disk{
		{Product: demoProduct(disksCategory.ID, "AEZ", "Crest", 17, "1450.00", "AEZ-CR-17", 8), Width: 7, PCD: "5x112", DIA: decimal.RequireFromString("66.6")},
		{Product: demoProduct(disksCategory.ID, "AEZ", "Straight", 18, "1720.00", "AEZ-ST-18", 4), Width: 8, PCD: "5x114.3", DIA: decimal.RequireFromString("67.1")},
		{Product: demoProduct(disksCategory.ID, "BBS", "CH-R", 19, "3990.00", "BBS-CHR-19", 2), Width: 9, PCD: "5x120", DIA: decimal.RequireFromString("72.6")},
		{Product: demoProduct(disksCategory.ID, "OZ", "Ultraleggera", 17, "2150.00", "OZ-UL-17", 0), Width: 7, PCD: "4x100", DIA: decimal.RequireFromString("68.0")},
	}
	for i := range disks {
		if err := db.Where("article = ?", disks[i].Article).FirstOrCreate(&disks[i]).Error; err != nil {
			return fmt.Errorf("seed disk %s: %w", disks[i].Article, err)
		}
	}

	tires := []Tire{
		{Product: demoProduct(tiresCategory.ID, "Michelin", "Pilot Sport 4", 17, "1890.00", "MI-PS4-17", 12), Width: 225, Profile: 45, TireType: TireTypeSport, Season: SeasonSummer, LoadIndex: 94, SpeedIndex: "Y"},
		{Product: demoProduct(tiresCategory.ID, "Michelin", "Alpin 6", 16, "1640.00", "MI-AL6-16", 6), Width: 205, Profile: 55, TireType: TireTypePassenger, Season: SeasonWinter, LoadIndex: 91, SpeedIndex: "H"},
		{Product: demoProduct(tiresCategory.ID, "Nokian", "Hakkapeliitta R5", 16, "1980.00", "NO-HR5-16", 3), Width: 205, Profile: 55, TireType: TireTypePassenger, Season: SeasonWinter, LoadIndex: 94, SpeedIndex: "R"},
		{Product: demoProduct(tiresCategory.ID, "Continental", "AllSeasonContact", 18, "2240.00", "CO-ASC-18", 0), Width: 235, Profile: 40, TireType: TireTypePassenger, Season: SeasonAllSeason, LoadIndex: 95, SpeedIndex: "V"},
	}
	for i := range tires {
		if err := db.Where("article = ?", tires[i].Article).FirstOrCreate(&tires[i]).Error; err != nil {
			return fmt.Errorf("seed tire %s: %w", tires[i].Article, err)
		}
	}

	return nil
}

func demoProduct(categoryID uint, brand, model string, diameter int, price, article string, quantity int) Product {
	return Product{
		CategoryID: categoryID,
		Brand:      brand,
		Model:      model,
		Diameter:   diameter,
		Price:      decimal.RequireFromString(price),
		Article:    article,
		Quantity:   quantity,
	}
}
