package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderFilters struct {
	Status OrderStatus
	UserID *uint
}

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

func withOrderRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_items.id ASC")
		}).
		Preload("Items.Disk").
		Preload("Items.Tire")
}

// CreateOrder stores the order and its lines in one transaction.
func (r *OrdersRepository) CreateOrder(ctx context.Context, order *Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if len(order.Items) == 0 {
			return nil
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		return tx.Omit(clause.Associations).Create(&order.Items).Error
	})
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return ErrUserNotFound
	}
	return fmt.Errorf("create order: %w", err)
}

func (r *OrdersRepository) GetByID(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).
		Scopes(withOrderRelations).
		First(&order, id).Error; err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return &order, nil
}

// ListOrders returns orders newest first.
func (r *OrdersRepository) ListOrders(ctx context.Context, filters OrderFilters) ([]Order, error) {
	var orders []Order
	query := r.db.WithContext(ctx).Scopes(withOrderRelations).Order("created_at DESC")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus applies a lifecycle transition under a row lock.
func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uint, next OrderStatus) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error; err != nil {
			return notFound(err, ErrOrderNotFound)
		}
		if err := order.TransitionTo(next); err != nil {
			return err
		}
		return tx.Model(&order).Update("status", order.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
