package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductsRepository runs catalog queries against one product table.
type ProductsRepository[T Item] struct {
	db *gorm.DB
}

// Facets are the filter choices offered next to a listing. They are always
// computed over the whole table, never the filtered subset.
type Facets struct {
	Brands    []string
	Diameters []int
	Seasons   []Season
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
}

func NewProductsRepository[T Item](db *gorm.DB) *ProductsRepository[T] {
	return &ProductsRepository[T]{
		db: db,
	}
}

func (r *ProductsRepository[T]) CountProducts(ctx context.Context, filters ProductFilters) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Scopes(filters.WhereScopes()...).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

func (r *ProductsRepository[T]) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]T, error) {
	var products []T
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Scopes(filters.Scopes()...).
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	var product T
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return &product, nil
}

// Related returns up to limit products similar to item, newest first.
func (r *ProductsRepository[T]) Related(ctx context.Context, item T, limit int) ([]T, error) {
	var products []T
	if err := r.db.WithContext(ctx).
		Scopes(item.Similar(), SortBy(DefaultSort)).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository[T]) Latest(ctx context.Context, limit int) ([]T, error) {
	var products []T
	if err := r.db.WithContext(ctx).
		Scopes(SortBy(SortNewest)).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("latest products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository[T]) Facets(ctx context.Context) (Facets, error) {
	var f Facets
	db := r.db.WithContext(ctx)

	if err := db.Model(new(T)).
		Distinct("brand").
		Order("brand ASC").
		Pluck("brand", &f.Brands).Error; err != nil {
		return Facets{}, fmt.Errorf("brand facet: %w", err)
	}

	if err := db.Model(new(T)).
		Distinct("diameter").
		Order("diameter ASC").
		Pluck("diameter", &f.Diameters).Error; err != nil {
		return Facets{}, fmt.Errorf("diameter facet: %w", err)
	}

	if hasSeason[T]() {
		if err := db.Model(new(T)).
			Distinct("season").
			Order("season ASC").
			Pluck("season", &f.Seasons).Error; err != nil {
			return Facets{}, fmt.Errorf("season facet: %w", err)
		}
	}

	var bounds struct {
		MinPrice decimal.NullDecimal
		MaxPrice decimal.NullDecimal
	}
	if err := db.Model(new(T)).
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Scan(&bounds).Error; err != nil {
		return Facets{}, fmt.Errorf("price facet: %w", err)
	}
	f.MinPrice = bounds.MinPrice.Decimal
	f.MaxPrice = bounds.MaxPrice.Decimal

	return f, nil
}

// Create inserts a new product. Duplicate slugs or articles and unknown
// categories come back as sentinel errors.
func (r *ProductsRepository[T]) Create(ctx context.Context, product *T) error {
	err := r.db.WithContext(ctx).Create(product).Error
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return ErrCategoryNotFound
	}
	if mapped := translateUnique(err, map[string]error{
		"_slug":    ErrSlugExists,
		"_article": ErrArticleExists,
	}); mapped != err {
		return mapped
	}
	return fmt.Errorf("create product: %w", err)
}
