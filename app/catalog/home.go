package catalog

import (
	"context"
	"log"
	"net/http"

	"github.com/wheelhouse/partshop/app/httpjson"
	"github.com/wheelhouse/partshop/models"
)

type LatestProvider[T models.Item] interface {
	Latest(ctx context.Context, limit int) ([]T, error)
}

// HomeHandler serves the landing page payload: the newest disks and tires.
type HomeHandler struct {
	disks LatestProvider[models.Disk]
	tires LatestProvider[models.Tire]
	money *Money
}

func NewHomeHandler(disks LatestProvider[models.Disk], tires LatestProvider[models.Tire], money *Money) *HomeHandler {
	return &HomeHandler{disks: disks, tires: tires, money: money}
}

func (h *HomeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	disks, err := h.disks.Latest(r.Context(), HomeLimit)
	if err != nil {
		log.Printf("ERROR: home latest disks: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	tires, err := h.tires.Latest(r.Context(), HomeLimit)
	if err != nil {
		log.Printf("ERROR: home latest tires: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	httpjson.Respond(w, http.StatusOK, HomeResponse{
		Disks: mapAll(disks, h.money.Disk),
		Tires: mapAll(tires, h.money.Tire),
	})
}
