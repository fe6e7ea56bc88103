package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Season string

const (
	SeasonSummer    Season = "summer"
	SeasonWinter    Season = "winter"
	SeasonAllSeason Season = "all_season"
)

type TireType string

const (
	TireTypePassenger TireType = "passenger"
	TireTypeTruck     TireType = "truck"
	TireTypeSport     TireType = "sport"
)

// Product is the shape shared by every sellable item in the catalog.
// It is embedded into Disk and Tire, so its columns live in each table.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	CategoryID  uint            `gorm:"not null"`
	Category    Category        `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Brand       string          `gorm:"size:100;not null;index"`
	Model       string          `gorm:"size:100;not null"`
	Diameter    int             `gorm:"not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Article     string          `gorm:"size:50;uniqueIndex;not null"`
	Quantity    int             `gorm:"not null"`
	Image       string          `gorm:"size:255"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index"`
	Slug        string          `gorm:"size:220;uniqueIndex;not null"`
}

// BeforeSave derives the slug from brand and model on first save.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	return ensureSlug(&p.Slug, p.Brand, p.Model)
}

// Name is the human-readable "brand model" label.
func (p Product) Name() string {
	return p.Brand + " " + p.Model
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}

// Disk is a wheel rim.
type Disk struct {
	Product
	Width int             `gorm:"not null"`
	PCD   string          `gorm:"column:pcd;size:20;not null"`
	DIA   decimal.Decimal `gorm:"column:dia;type:decimal(5,1);not null"`
}

func (d *Disk) TableName() string {
	return "disks"
}

func (d Disk) String() string {
	return fmt.Sprintf("%s %s %dx%d %s", d.Brand, d.Model, d.Diameter, d.Width, d.PCD)
}

// Similar selects other disks of the same brand.
func (d Disk) Similar() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("brand = ?", d.Brand).Where("id <> ?", d.ID)
	}
}

// Tire is a car tire.
type Tire struct {
	Product
	Width      int      `gorm:"not null"`
	Profile    int      `gorm:"not null"`
	TireType   TireType `gorm:"size:50;not null"`
	Season     Season   `gorm:"size:50;not null;index"`
	LoadIndex  int      `gorm:"not null"`
	SpeedIndex string   `gorm:"size:5;not null"`
}

func (t *Tire) TableName() string {
	return "tires"
}

func (t Tire) String() string {
	return fmt.Sprintf("%s %s %d/%dR%d", t.Brand, t.Model, t.Width, t.Profile, t.Diameter)
}

// Similar selects other tires of the same brand and season.
func (t Tire) Similar() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("brand = ?", t.Brand).Where("season = ?", t.Season).Where("id <> ?", t.ID)
	}
}

// Item is satisfied by the concrete product tables.
type Item interface {
	Disk | Tire
	Similar() func(*gorm.DB) *gorm.DB
}

// hasSeason reports whether the product table carries a season column.
func hasSeason[T Item]() bool {
	_, ok := any(new(T)).(*Tire)
	return ok
}

func ValidSeason(s string) bool {
	switch Season(s) {
	case SeasonSummer, SeasonWinter, SeasonAllSeason:
		return true
	}
	return false
}
