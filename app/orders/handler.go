package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wheelhouse/partshop/app/catalog"
	"github.com/wheelhouse/partshop/app/httpjson"
	"github.com/wheelhouse/partshop/models"
)

type OrderProvider interface {
	ListOrders(ctx context.Context, filters models.OrderFilters) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, next models.OrderStatus) (*models.Order, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type ProductLookup[T models.Item] interface {
	GetBySlug(ctx context.Context, slug string) (*T, error)
}

type OrderHandler struct {
	orders OrderProvider
	users  UserLookup
	disks  ProductLookup[models.Disk]
	tires  ProductLookup[models.Tire]
	money  *catalog.Money
}

func NewOrderHandler(orders OrderProvider, users UserLookup, disks ProductLookup[models.Disk], tires ProductLookup[models.Tire], money *catalog.Money) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		users:  users,
		disks:  disks,
		tires:  tires,
		money:  money,
	}
}

type OrderItemResponse struct {
	ID           uint    `json:"id"`
	ProductType  string  `json:"product_type,omitempty"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	Code         string              `json:"code"`
	UserID       uint                `json:"user_id"`
	Customer     string              `json:"customer,omitempty"`
	Status       string              `json:"status"`
	TotalPrice   float64             `json:"total_price"`
	TotalDisplay string              `json:"total_display"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func (h *OrderHandler) toResponse(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:           item.ID,
			ProductType:  string(item.Product().Kind),
			ProductName:  item.ProductName(),
			Quantity:     item.Quantity,
			Price:        item.Price.InexactFloat64(),
			Total:        item.LineTotal().InexactFloat64(),
			TotalDisplay: h.money.Format(item.LineTotal()),
		}
	}
	resp := OrderResponse{
		ID:           o.ID,
		Code:         o.Code.String(),
		UserID:       o.UserID,
		Status:       string(o.Status),
		TotalPrice:   o.TotalPrice.InexactFloat64(),
		TotalDisplay: h.money.Format(o.TotalPrice),
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.User.ID != 0 {
		resp.Customer = o.User.String()
	}
	return resp
}

func parseID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", chi.URLParam(r, "id"))
	}
	return uint(id), nil
}

func (h *OrderHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filters models.OrderFilters
	if s := q.Get("status"); s != "" {
		filters.Status = models.OrderStatus(s)
		if !filters.Status.Valid() {
			httpjson.Error(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
	}
	if s := q.Get("user_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "Invalid user_id filter")
			return
		}
		userID := uint(id)
		filters.UserID = &userID
	}

	orders, err := h.orders.ListOrders(r.Context(), filters)
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = h.toResponse(o)
	}
	httpjson.Respond(w, http.StatusOK, response)
}

func (h *OrderHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			httpjson.Error(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("ERROR: get order %d: %v", id, err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	httpjson.Respond(w, http.StatusOK, h.toResponse(*order))
}

type OrderItemInput struct {
	ProductType string `json:"product_type" validate:"required,oneof=disk tire"`
	Slug        string `json:"slug" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

type OrderInput struct {
	UserID uint             `json:"user_id" validate:"required,gt=0"`
	Items  []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// resolve looks up the product behind an order line.
func (h *OrderHandler) resolve(ctx context.Context, in OrderItemInput) (models.ProductRef, *models.Product, error) {
	switch models.ProductKind(in.ProductType) {
	case models.KindDisk:
		d, err := h.disks.GetBySlug(ctx, in.Slug)
		if err != nil {
			return models.ProductRef{}, nil, err
		}
		return models.DiskRef(d), &d.Product, nil
	case models.KindTire:
		t, err := h.tires.GetBySlug(ctx, in.Slug)
		if err != nil {
			return models.ProductRef{}, nil, err
		}
		return models.TireRef(t), &t.Product, nil
	}
	return models.ProductRef{}, nil, models.ErrProductNotFound
}

// HandleCreate places an order. Unit prices are taken from the live
// products at the time of the call.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input OrderInput
	if !httpjson.DecodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.users.GetByID(r.Context(), input.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: create order: lookup user %d: %v", input.UserID, err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	order := &models.Order{UserID: user.ID, User: *user}
	for _, in := range input.Items {
		ref, product, err := h.resolve(r.Context(), in)
		if err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				httpjson.Error(w, http.StatusBadRequest, fmt.Sprintf("%s %q not found", in.ProductType, in.Slug))
				return
			}
			log.Printf("ERROR: create order: lookup %s %q: %v", in.ProductType, in.Slug, err)
			httpjson.Error(w, http.StatusInternalServerError, "Failed to create order")
			return
		}
		if err := order.AddItem(ref, in.Quantity, product.Price); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := h.orders.CreateOrder(r.Context(), order); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: create order: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	log.Printf("INFO: order %s created for user %d, total %s", order.Code, order.UserID, order.TotalPrice)
	httpjson.Respond(w, http.StatusCreated, h.toResponse(*order))
}

type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=new paid shipped delivered cancelled"`
}

func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var input StatusInput
	if !httpjson.DecodeAndValidate(w, r, &input) {
		return
	}

	if _, err := h.orders.UpdateStatus(r.Context(), id, models.OrderStatus(input.Status)); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			httpjson.Error(w, http.StatusNotFound, err.Error())
		case errors.Is(err, models.ErrInvalidTransition):
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			log.Printf("ERROR: update order %d status: %v", id, err)
			httpjson.Error(w, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("ERROR: reload order %d: %v", id, err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}
	httpjson.Respond(w, http.StatusOK, h.toResponse(*order))
}
