package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusPaid      OrderStatus = "paid"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Delivered and cancelled orders are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:     {StatusPaid, StatusCancelled},
	StatusPaid:    {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID         uint            `gorm:"primaryKey"`
	Code       uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	UserID     uint            `gorm:"not null;index"`
	User       User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Status     OrderStatus     `gorm:"size:50;not null;default:new;index"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (o *Order) TableName() string {
	return "orders"
}

func (o Order) String() string {
	return fmt.Sprintf("Order #%d - %s - %s", o.ID, o.User.FirstName, o.Status)
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.Code == uuid.Nil {
		o.Code = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusNew
	}
	return nil
}

// BeforeSave keeps the stored total in line with the loaded line items.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if len(o.Items) > 0 {
		o.Recalculate()
	}
	return nil
}

// AddItem appends a line with a snapshot of the unit price and refreshes
// the order total.
func (o *Order) AddItem(ref ProductRef, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	item := OrderItem{
		Quantity: quantity,
		Price:    unitPrice,
	}
	item.SetProduct(ref)
	o.Items = append(o.Items, item)
	o.Recalculate()
	return nil
}

func (o *Order) Recalculate() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.TotalPrice = total
}

// TransitionTo moves the order to next if the lifecycle allows it.
func (o *Order) TransitionTo(next OrderStatus) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	o.Status = next
	return nil
}

// ProductKind tags which product table an order line points at.
type ProductKind string

const (
	KindNone ProductKind = ""
	KindDisk ProductKind = "disk"
	KindTire ProductKind = "tire"
)

// ProductRef is a reference to a disk, a tire, or nothing at all.
type ProductRef struct {
	Kind ProductKind
	Disk *Disk
	Tire *Tire
}

func DiskRef(d *Disk) ProductRef {
	if d == nil {
		return ProductRef{}
	}
	return ProductRef{Kind: KindDisk, Disk: d}
}

func TireRef(t *Tire) ProductRef {
	if t == nil {
		return ProductRef{}
	}
	return ProductRef{Kind: KindTire, Tire: t}
}

func (r ProductRef) Name() string {
	switch r.Kind {
	case KindDisk:
		return r.Disk.Name()
	case KindTire:
		return r.Tire.Name()
	}
	return "Unknown Product"
}

// OrderItem is one order line. At most one of DiskID and TireID is set;
// both become NULL when the product is deleted.
type OrderItem struct {
	ID       uint            `gorm:"primaryKey"`
	OrderID  uint            `gorm:"not null;index"`
	DiskID   *uint           `gorm:"index;check:chk_order_items_one_product,disk_id IS NULL OR tire_id IS NULL"`
	Disk     *Disk           `gorm:"foreignKey:DiskID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	TireID   *uint           `gorm:"index"`
	Tire     *Tire           `gorm:"foreignKey:TireID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Quantity int             `gorm:"not null;check:chk_order_items_quantity,quantity > 0"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i *OrderItem) TableName() string {
	return "order_items"
}

func (i *OrderItem) SetProduct(ref ProductRef) {
	i.DiskID, i.Disk, i.TireID, i.Tire = nil, nil, nil, nil
	switch ref.Kind {
	case KindDisk:
		i.DiskID, i.Disk = &ref.Disk.ID, ref.Disk
	case KindTire:
		i.TireID, i.Tire = &ref.Tire.ID, ref.Tire
	}
}

// Product resolves the loaded reference. A line whose product is gone, or
// was never preloaded, has no product.
func (i OrderItem) Product() ProductRef {
	if i.Disk != nil {
		return DiskRef(i.Disk)
	}
	if i.Tire != nil {
		return TireRef(i.Tire)
	}
	return ProductRef{}
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

func (i OrderItem) ProductName() string {
	return i.Product().Name()
}
