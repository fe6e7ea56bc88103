package catalog

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/wheelhouse/partshop/models"
)

// ErrInvalidPrice is returned when a price bound is present but not a number.
var ErrInvalidPrice = errors.New("invalid price")

// ListParams is the typed form of a listing query string. Raw values are
// kept next to the parsed ones so they can be echoed back unchanged.
type ListParams struct {
	Search   string
	Brand    string
	Diameter string
	Season   string
	MinPrice string
	MaxPrice string
	SortBy   models.SortKey
	InStock  bool
	Page     int

	diameter *int
	price    *models.PriceRange
}

// ParseListParams reads listing parameters from q. The season parameter is
// only honoured when withSeason is set.
func ParseListParams(q url.Values, withSeason bool) (ListParams, error) {
	p := ListParams{
		Search:   q.Get("search"),
		Brand:    q.Get("brand"),
		Diameter: q.Get("diameter"),
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
		SortBy:   models.ParseSortKey(q.Get("sort_by")),
		InStock:  q.Get("in_stock") != "",
		Page:     1,
	}
	if withSeason {
		p.Season = q.Get("season")
	}

	if d, err := strconv.Atoi(p.Diameter); err == nil {
		p.diameter = &d
	}

	minPrice, err := parsePrice(p.MinPrice)
	if err != nil {
		return ListParams{}, err
	}
	maxPrice, err := parsePrice(p.MaxPrice)
	if err != nil {
		return ListParams{}, err
	}
	if minPrice != nil && maxPrice != nil {
		p.price = &models.PriceRange{Min: *minPrice, Max: *maxPrice}
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = page
	}

	return p, nil
}

func parsePrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrInvalidPrice
	}
	return &d, nil
}

// Filters converts the params into a query pipeline description.
func (p ListParams) Filters() models.ProductFilters {
	return models.ProductFilters{
		Search:      p.Search,
		Brand:       p.Brand,
		Diameter:    p.diameter,
		Season:      models.Season(p.Season),
		Price:       p.price,
		Sort:        p.SortBy,
		InStockOnly: p.InStock,
	}
}
