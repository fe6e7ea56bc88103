package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/wheelhouse/partshop/models"
)

// ProductInput is the staff data entry payload shared by disks and tires.
type ProductInput struct {
	CategoryID  uint            `json:"category_id" validate:"required,gt=0"`
	Brand       string          `json:"brand" validate:"required,max=100"`
	Model       string          `json:"model" validate:"required,max=100"`
	Diameter    int             `json:"diameter" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Article     string          `json:"article" validate:"required,max=50"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Image       string          `json:"image" validate:"omitempty,max=255"`
	Description string          `json:"description"`
	Slug        string          `json:"slug" validate:"omitempty,max=220"`
}

func (in ProductInput) product() models.Product {
	return models.Product{
		CategoryID:  in.CategoryID,
		Brand:       in.Brand,
		Model:       in.Model,
		Diameter:    in.Diameter,
		Price:       in.Price,
		Article:     in.Article,
		Quantity:    in.Quantity,
		Image:       in.Image,
		Description: in.Description,
		Slug:        in.Slug,
	}
}

type DiskInput struct {
	ProductInput
	Width int             `json:"width" validate:"required,gt=0"`
	PCD   string          `json:"pcd" validate:"required,max=20"`
	DIA   decimal.Decimal `json:"dia" validate:"gt=0"`
}

func (in *DiskInput) model() models.Disk {
	return models.Disk{
		Product: in.product(),
		Width:   in.Width,
		PCD:     in.PCD,
		DIA:     in.DIA,
	}
}

type TireInput struct {
	ProductInput
	Width      int    `json:"width" validate:"required,gt=0"`
	Profile    int    `json:"profile" validate:"required,gt=0"`
	TireType   string `json:"tire_type" validate:"required,oneof=passenger truck sport"`
	Season     string `json:"season" validate:"required,oneof=summer winter all_season"`
	LoadIndex  int    `json:"load_index" validate:"required,gt=0"`
	SpeedIndex string `json:"speed_index" validate:"required,max=5"`
}

func (in *TireInput) model() models.Tire {
	return models.Tire{
		Product:    in.product(),
		Width:      in.Width,
		Profile:    in.Profile,
		TireType:   models.TireType(in.TireType),
		Season:     models.Season(in.Season),
		LoadIndex:  in.LoadIndex,
		SpeedIndex: in.SpeedIndex,
	}
}
