package categories

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/wheelhouse/partshop/app/httpjson"
	"github.com/wheelhouse/partshop/models"
)

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

func toResponse(c models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		log.Printf("ERROR: list categories: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c)
	}

	httpjson.Respond(w, http.StatusOK, response)
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if !httpjson.DecodeAndValidate(w, r, &input) {
		return
	}

	category := &models.Category{
		Name:        input.Name,
		Description: input.Description,
		Slug:        input.Slug,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		switch {
		case errors.Is(err, models.ErrSlugExists):
			httpjson.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, models.ErrEmptySlug):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: create category: %v", err)
			httpjson.Error(w, http.StatusInternalServerError, "Failed to create category")
		}
		return
	}

	httpjson.Respond(w, http.StatusCreated, toResponse(*category))
}
