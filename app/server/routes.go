package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wheelhouse/partshop/app/catalog"
	"github.com/wheelhouse/partshop/app/categories"
	"github.com/wheelhouse/partshop/app/httpjson"
	"github.com/wheelhouse/partshop/app/orders"
	"github.com/wheelhouse/partshop/app/users"
	"github.com/wheelhouse/partshop/models"
	"gorm.io/gorm"
)

const (
	serviceName    = "partshop"
	requestTimeout = 60 * time.Second
)

type ProductRoutes interface {
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleGetProduct(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
}

type CategoryRoutes interface {
	HandleGetAll(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
}

type UserRoutes interface {
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
}

type OrderRoutes interface {
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleGet(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleUpdateStatus(w http.ResponseWriter, r *http.Request)
}

type HomeRoutes interface {
	HandleGet(w http.ResponseWriter, r *http.Request)
}

// Handlers groups every HTTP handler mounted under /api/v1.
type Handlers struct {
	Home       HomeRoutes
	Disks      ProductRoutes
	Tires      ProductRoutes
	Categories CategoryRoutes
	Users      UserRoutes
	Orders     OrderRoutes
}

// NewHandlers builds the handlers on top of the GORM repositories.
func NewHandlers(db *gorm.DB, money *catalog.Money) Handlers {
	disks := models.NewProductsRepository[models.Disk](db)
	tires := models.NewProductsRepository[models.Tire](db)
	usersRepo := models.NewUsersRepository(db)

	return Handlers{
		Home:       catalog.NewHomeHandler(disks, tires, money),
		Disks:      catalog.NewDiskHandler(disks, money),
		Tires:      catalog.NewTireHandler(tires, money),
		Categories: categories.NewCategoryHandler(models.NewCategoriesRepository(db)),
		Users:      users.NewUserHandler(usersRepo),
		Orders:     orders.NewOrderHandler(models.NewOrdersRepository(db), usersRepo, disks, tires, money),
	}
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter mounts the API on a chi router with the base middleware stack.
func NewRouter(h Handlers, db Pinger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpjson.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", healthCheck(db))
		r.Get("/home", h.Home.HandleGet)

		r.Route("/disks", func(r chi.Router) {
			mountProducts(r, h.Disks)
		})
		r.Route("/tires", func(r chi.Router) {
			mountProducts(r, h.Tires)
		})

		r.Get("/categories", h.Categories.HandleGetAll)
		r.Post("/categories", h.Categories.HandleCreate)

		r.Get("/users", h.Users.HandleList)
		r.Post("/users", h.Users.HandleCreate)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.HandleList)
			r.Post("/", h.Orders.HandleCreate)
			r.Get("/{id}", h.Orders.HandleGet)
			r.Patch("/{id}/status", h.Orders.HandleUpdateStatus)
		})
	})
	return r
}

func mountProducts(r chi.Router, p ProductRoutes) {
	r.Get("/", p.HandleList)
	r.Post("/", p.HandleCreate)
	r.Get("/{slug}", p.HandleGetProduct)
}

type healthResponse struct {
	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`
	Timestamp   string `json:"timestamp"`
	Database    string `json:"database"`
}

// healthCheck always answers 200; the payload carries the database state.
func healthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "healthy"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
			log.Printf("WARN: health check DB ping failed: %v", err)
		}

		httpjson.Respond(w, http.StatusOK, healthResponse{
			Status:      "healthy",
			ServiceName: serviceName,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Database:    dbStatus,
		})
	}
}
