package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wheelhouse/partshop/models"
)

// --- Mock Repo ---

type MockProductRepo[T models.Item] struct {
	SourceProducts []T
	FacetsResult   models.Facets
	Err            error
	CreateErr      error

	// Fields to capture call arguments
	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.ProductFilters
	lastCalledSlug    string
	lastRelatedLimit  int
	LastSaved         *T
}

func productOf[T models.Item](item T) models.Product {
	switch v := any(item).(type) {
	case models.Disk:
		return v.Product
	case models.Tire:
		return v.Product
	}
	panic(fmt.Sprintf("unexpected product type %T", item))
}

// filter simulates brand, price and stock filtering.
func (m *MockProductRepo[T]) filter(filters models.ProductFilters) []T {
	var out []T
	for _, item := range m.SourceProducts {
		p := productOf(item)
		if filters.Brand != "" && p.Brand != filters.Brand {
			continue
		}
		if filters.Price != nil && (p.Price.LessThan(filters.Price.Min) || p.Price.GreaterThan(filters.Price.Max)) {
			continue
		}
		if filters.InStockOnly && p.Quantity <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (m *MockProductRepo[T]) CountProducts(ctx context.Context, filters models.ProductFilters) (int64, error) {
	m.lastCalledFilters = filters
	if m.Err != nil {
		return 0, m.Err
	}
	return int64(len(m.filter(filters))), nil
}

func (m *MockProductRepo[T]) GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]T, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters

	if m.Err != nil {
		return nil, m.Err
	}

	filtered := m.filter(filters)

	// Simulate pagination
	start := min(offset, len(filtered))
	end := min(offset+limit, len(filtered))
	return filtered[start:end], nil
}

func (m *MockProductRepo[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	m.lastCalledSlug = slug

	if m.Err != nil {
		return nil, m.Err
	}

	for _, item := range m.SourceProducts {
		if productOf(item).Slug == slug {
			found := item
			return &found, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *MockProductRepo[T]) Related(ctx context.Context, item T, limit int) ([]T, error) {
	m.lastRelatedLimit = limit
	target := productOf(item)

	var out []T
	for _, candidate := range m.SourceProducts {
		p := productOf(candidate)
		if p.Brand == target.Brand && p.ID != target.ID && len(out) < limit {
			out = append(out, candidate)
		}
	}
	return out, nil
}

func (m *MockProductRepo[T]) Latest(ctx context.Context, limit int) ([]T, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SourceProducts[:min(limit, len(m.SourceProducts))], nil
}

func (m *MockProductRepo[T]) Facets(ctx context.Context) (models.Facets, error) {
	return m.FacetsResult, nil
}

func (m *MockProductRepo[T]) Create(ctx context.Context, product *T) error {
	m.LastSaved = product
	return m.CreateErr
}

// --- Helpers ---

func newTestDisk(id uint, brand, model string, price float64, quantity int) models.Disk {
	return models.Disk{
		Product: models.Product{
			ID:       id,
			Brand:    brand,
			Model:    model,
			Diameter: 17,
			Price:    decimal.NewFromFloat(price),
			Article:  fmt.Sprintf("%s-%d", brand, id),
			Quantity: quantity,
			Slug:     fmt.Sprintf("%s-%s-%d", brand, model, id),
			Category: models.Category{ID: 1, Name: "Disks", Slug: "disks"},
		},
		Width: 7,
		PCD:   "5x112",
		DIA:   decimal.RequireFromString("66.6"),
	}
}

func newTestTire(id uint, brand, model string, season models.Season, price float64) models.Tire {
	return models.Tire{
		Product: models.Product{
			ID:       id,
			Brand:    brand,
			Model:    model,
			Diameter: 16,
			Price:    decimal.NewFromFloat(price),
			Article:  fmt.Sprintf("%s-%d", brand, id),
			Quantity: 4,
			Slug:     fmt.Sprintf("%s-%s-%d", brand, model, id),
		},
		Width:      205,
		Profile:    55,
		TireType:   models.TireTypePassenger,
		Season:     season,
		LoadIndex:  91,
		SpeedIndex: "H",
	}
}
