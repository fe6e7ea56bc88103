package catalog

import (
	"time"

	"github.com/wheelhouse/partshop/models"
)

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product carries the fields every product type shares.
type Product struct {
	ID           uint      `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Diameter     int       `json:"diameter"`
	Article      string    `json:"article"`
	Price        float64   `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Quantity     int       `json:"quantity"`
	InStock      bool      `json:"in_stock"`
	Image        string    `json:"image,omitempty"`
	Description  string    `json:"description,omitempty"`
	Category     *Category `json:"category,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Disk struct {
	Product
	Width int     `json:"width"`
	PCD   string  `json:"pcd"`
	DIA   float64 `json:"dia"`
}

type Tire struct {
	Product
	Width      int    `json:"width"`
	Profile    int    `json:"profile"`
	TireType   string `json:"tire_type"`
	Season     string `json:"season"`
	LoadIndex  int    `json:"load_index"`
	SpeedIndex string `json:"speed_index"`
}

type PageInfo struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

type FacetsResponse struct {
	Brands    []string `json:"brands"`
	Diameters []int    `json:"diameters"`
	Seasons   []string `json:"seasons,omitempty"`
	MinPrice  float64  `json:"min_price"`
	MaxPrice  float64  `json:"max_price"`
}

type Selections struct {
	Search   string `json:"search"`
	Brand    string `json:"brand"`
	Diameter string `json:"diameter"`
	Season   string `json:"season,omitempty"`
	MinPrice string `json:"min_price"`
	MaxPrice string `json:"max_price"`
	SortBy   string `json:"sort_by"`
	InStock  bool   `json:"in_stock"`
}

type ListResponse[R any] struct {
	Items   []R            `json:"items"`
	Page    PageInfo       `json:"page"`
	Facets  FacetsResponse `json:"facets"`
	Current Selections     `json:"current"`
}

type DetailResponse[R any] struct {
	Product R   `json:"product"`
	Related []R `json:"related"`
}

type HomeResponse struct {
	Disks []Disk `json:"disks"`
	Tires []Tire `json:"tires"`
}

func (m *Money) product(p models.Product) Product {
	out := Product{
		ID:           p.ID,
		Slug:         p.Slug,
		Name:         p.Name(),
		Brand:        p.Brand,
		Model:        p.Model,
		Diameter:     p.Diameter,
		Article:      p.Article,
		Price:        p.Price.InexactFloat64(),
		PriceDisplay: m.Format(p.Price),
		Quantity:     p.Quantity,
		InStock:      p.InStock(),
		Image:        p.Image,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
	}
	if p.Category.ID != 0 {
		out.Category = &Category{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	return out
}

func (m *Money) Disk(d models.Disk) Disk {
	return Disk{
		Product: m.product(d.Product),
		Width:   d.Width,
		PCD:     d.PCD,
		DIA:     d.DIA.InexactFloat64(),
	}
}

func (m *Money) Tire(t models.Tire) Tire {
	return Tire{
		Product:    m.product(t.Product),
		Width:      t.Width,
		Profile:    t.Profile,
		TireType:   string(t.TireType),
		Season:     string(t.Season),
		LoadIndex:  t.LoadIndex,
		SpeedIndex: t.SpeedIndex,
	}
}

func mapAll[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

func facetsResponse(f models.Facets) FacetsResponse {
	out := FacetsResponse{
		Brands:    f.Brands,
		Diameters: f.Diameters,
		MinPrice:  f.MinPrice.InexactFloat64(),
		MaxPrice:  f.MaxPrice.InexactFloat64(),
	}
	if out.Brands == nil {
		out.Brands = []string{}
	}
	if out.Diameters == nil {
		out.Diameters = []int{}
	}
	for _, s := range f.Seasons {
		out.Seasons = append(out.Seasons, string(s))
	}
	return out
}

func selections(p ListParams) Selections {
	return Selections{
		Search:   p.Search,
		Brand:    p.Brand,
		Diameter: p.Diameter,
		Season:   p.Season,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
		SortBy:   string(p.SortBy),
		InStock:  p.InStock,
	}
}
