package catalog

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wheelhouse/partshop/app/httpjson"
	"github.com/wheelhouse/partshop/models"
)

// productInput is an admin create payload for product type T.
type productInput[T models.Item] interface {
	model() T
}

// CatalogHandler serves the listing, detail and create endpoints of one
// product type T, presenting items as R.
type CatalogHandler[T models.Item, R any] struct {
	svc        *ListingService[T]
	present    func(T) R
	newInput   func() productInput[T]
	withSeason bool
}

func NewDiskHandler(repo ProductProvider[models.Disk], money *Money) *CatalogHandler[models.Disk, Disk] {
	return &CatalogHandler[models.Disk, Disk]{
		svc:      NewListingService(repo),
		present:  money.Disk,
		newInput: func() productInput[models.Disk] { return &DiskInput{} },
	}
}

func NewTireHandler(repo ProductProvider[models.Tire], money *Money) *CatalogHandler[models.Tire, Tire] {
	return &CatalogHandler[models.Tire, Tire]{
		svc:        NewListingService(repo),
		present:    money.Tire,
		newInput:   func() productInput[models.Tire] { return &TireInput{} },
		withSeason: true,
	}
}

func (h *CatalogHandler[T, R]) HandleList(w http.ResponseWriter, r *http.Request) {
	params, err := ParseListParams(r.URL.Query(), h.withSeason)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid price filter")
		return
	}

	listing, err := h.svc.List(r.Context(), params)
	if err != nil {
		log.Printf("ERROR: catalog list: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	httpjson.Respond(w, http.StatusOK, ListResponse[R]{
		Items: mapAll(listing.Page.Items, h.present),
		Page: PageInfo{
			Number:      listing.Page.Number,
			NumPages:    listing.Page.NumPages,
			Count:       listing.Page.Count,
			HasNext:     listing.Page.HasNext,
			HasPrevious: listing.Page.HasPrevious,
		},
		Facets:  facetsResponse(listing.Facets),
		Current: selections(listing.Params),
	})
}

func (h *CatalogHandler[T, R]) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, related, err := h.svc.Detail(r.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR: catalog detail %q: %v", slug, err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}

	httpjson.Respond(w, http.StatusOK, DetailResponse[R]{
		Product: h.present(*product),
		Related: mapAll(related, h.present),
	})
}

func (h *CatalogHandler[T, R]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input := h.newInput()
	if !httpjson.DecodeAndValidate(w, r, input) {
		return
	}

	product := input.model()
	if err := h.svc.Create(r.Context(), &product); err != nil {
		switch {
		case errors.Is(err, models.ErrSlugExists), errors.Is(err, models.ErrArticleExists):
			httpjson.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, models.ErrCategoryNotFound):
			httpjson.Error(w, http.StatusBadRequest, "Invalid category_id: category does not exist")
		case errors.Is(err, models.ErrEmptySlug):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: catalog create: %v", err)
			httpjson.Error(w, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}

	httpjson.Respond(w, http.StatusCreated, h.present(product))
}
