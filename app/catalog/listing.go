package catalog

import (
	"context"

	"github.com/wheelhouse/partshop/models"
)

const (
	PageSize     = 12
	RelatedLimit = 4
	HomeLimit    = 6
)

// ProductProvider is the store behind a listing of one product type.
type ProductProvider[T models.Item] interface {
	CountProducts(ctx context.Context, filters models.ProductFilters) (int64, error)
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	Related(ctx context.Context, item T, limit int) ([]T, error)
	Latest(ctx context.Context, limit int) ([]T, error)
	Facets(ctx context.Context) (models.Facets, error)
	Create(ctx context.Context, product *T) error
}

type Page[T models.Item] struct {
	Items       []T
	Number      int
	NumPages    int
	Count       int64
	HasNext     bool
	HasPrevious bool
}

type Listing[T models.Item] struct {
	Page   Page[T]
	Facets models.Facets
	Params ListParams
}

type ListingService[T models.Item] struct {
	repo ProductProvider[T]
}

func NewListingService[T models.Item](repo ProductProvider[T]) *ListingService[T] {
	return &ListingService[T]{repo: repo}
}

// List runs the filter pipeline and returns the requested page. Out of range
// page numbers are clamped to the first or last page.
func (s *ListingService[T]) List(ctx context.Context, params ListParams) (*Listing[T], error) {
	filters := params.Filters()

	count, err := s.repo.CountProducts(ctx, filters)
	if err != nil {
		return nil, err
	}

	numPages := int((count + PageSize - 1) / PageSize)
	if numPages < 1 {
		numPages = 1
	}
	number := params.Page
	if number < 1 {
		number = 1
	} else if number > numPages {
		number = numPages
	}

	items, err := s.repo.GetFilteredProducts(ctx, (number-1)*PageSize, PageSize, filters)
	if err != nil {
		return nil, err
	}

	facets, err := s.repo.Facets(ctx)
	if err != nil {
		return nil, err
	}

	params.Page = number
	return &Listing[T]{
		Page: Page[T]{
			Items:       items,
			Number:      number,
			NumPages:    numPages,
			Count:       count,
			HasNext:     number < numPages,
			HasPrevious: number > 1,
		},
		Facets: facets,
		Params: params,
	}, nil
}

// Detail returns the product behind slug and a few similar ones.
func (s *ListingService[T]) Detail(ctx context.Context, slug string) (*T, []T, error) {
	item, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	related, err := s.repo.Related(ctx, *item, RelatedLimit)
	if err != nil {
		return nil, nil, err
	}
	return item, related, nil
}

func (s *ListingService[T]) Create(ctx context.Context, product *T) error {
	return s.repo.Create(ctx, product)
}
