package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows or orders a product query. Scopes never mutate the store and
// can be combined in any order; an empty argument yields the identity scope.
type Scope = func(*gorm.DB) *gorm.DB

func identity(db *gorm.DB) *gorm.DB { return db }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search keeps rows whose brand, model or article contains query,
// ignoring case.
func Search(query string) Scope {
	if query == "" {
		return identity
	}
	pattern := "%" + likeEscaper.Replace(query) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(brand ILIKE ? OR model ILIKE ? OR article ILIKE ?)", pattern, pattern, pattern)
	}
}

func ByBrand(brand string) Scope {
	if brand == "" {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("brand = ?", brand)
	}
}

func ByDiameter(diameter *int) Scope {
	if diameter == nil {
		return identity
	}
	d := *diameter
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("diameter = ?", d)
	}
}

// BySeason only applies to tires.
func BySeason(season Season) Scope {
	if season == "" {
		return identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("season = ?", season)
	}
}

// ByPriceRange keeps rows with min <= price <= max.
func ByPriceRange(min, max decimal.Decimal) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("price >= ? AND price <= ?", min, max)
	}
}

func InStock() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("quantity > ?", 0)
	}
}

// SortKey is one of the allowed listing orders.
type SortKey string

const (
	SortNewest    SortKey = "-created_at"
	SortOldest    SortKey = "created_at"
	SortPriceAsc  SortKey = "price"
	SortPriceDesc SortKey = "-price"
	SortBrand     SortKey = "brand"

	DefaultSort = SortNewest
)

var sortColumns = map[SortKey]clause.OrderByColumn{
	SortNewest:    {Column: clause.Column{Name: "created_at"}, Desc: true},
	SortOldest:    {Column: clause.Column{Name: "created_at"}},
	SortPriceAsc:  {Column: clause.Column{Name: "price"}},
	SortPriceDesc: {Column: clause.Column{Name: "price"}, Desc: true},
	SortBrand:     {Column: clause.Column{Name: "brand"}},
}

// ParseSortKey returns the matching key, or DefaultSort for anything outside
// the allow-list.
func ParseSortKey(s string) SortKey {
	if _, ok := sortColumns[SortKey(s)]; ok {
		return SortKey(s)
	}
	return DefaultSort
}

func SortBy(key SortKey) Scope {
	col, ok := sortColumns[key]
	if !ok {
		col = sortColumns[DefaultSort]
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(col)
	}
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ProductFilters describes one listing request against a product table.
type ProductFilters struct {
	Search      string
	Brand       string
	Diameter    *int
	Season      Season
	Price       *PriceRange
	Sort        SortKey
	InStockOnly bool
}

// Scopes returns the filter chain in its fixed application order:
// search, brand, diameter, season, price range, sort, in-stock.
func (f ProductFilters) Scopes() []Scope {
	return f.chain(true)
}

// WhereScopes is Scopes without the ordering, for aggregate queries.
func (f ProductFilters) WhereScopes() []Scope {
	return f.chain(false)
}

func (f ProductFilters) chain(withSort bool) []Scope {
	scopes := []Scope{
		Search(f.Search),
		ByBrand(f.Brand),
		ByDiameter(f.Diameter),
		BySeason(f.Season),
	}
	if f.Price != nil {
		scopes = append(scopes, ByPriceRange(f.Price.Min, f.Price.Max))
	}
	if withSort {
		scopes = append(scopes, SortBy(f.Sort))
	}
	if f.InStockOnly {
		scopes = append(scopes, InStock())
	}
	return scopes
}
