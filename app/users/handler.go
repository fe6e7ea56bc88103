package users

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/wheelhouse/partshop/app/httpjson"
	"github.com/wheelhouse/partshop/models"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type UserProvider interface {
	ListUsers(ctx context.Context, search string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type UserHandler struct {
	repo UserProvider
}

func NewUserHandler(r UserProvider) *UserHandler {
	return &UserHandler{repo: r}
}

func toResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		City:      u.City,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		log.Printf("ERROR: list users: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = toResponse(u)
	}
	httpjson.Respond(w, http.StatusOK, response)
}

type UserInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Phone     string `json:"phone" validate:"omitempty,max=20"`
	City      string `json:"city" validate:"omitempty,max=100"`
	Address   string `json:"address" validate:"omitempty,max=255"`
}

func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input UserInput
	if !httpjson.DecodeAndValidate(w, r, &input) {
		return
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
		Phone:     input.Phone,
		City:      input.City,
		Address:   input.Address,
	}

	if err := h.repo.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrEmailExists) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		log.Printf("ERROR: create user: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	httpjson.Respond(w, http.StatusCreated, toResponse(*user))
}
