package models

import "time"

// OrderStatus represents the states an order moves through in the kitchen.
// "Recieved" is misspelled on purpose: it is the literal value existing
// storefront and admin clients send and match on.
type OrderStatus string

const (
	StatusPending  OrderStatus = "Pending"
	StatusRecieved OrderStatus = "Recieved"
	StatusServed   OrderStatus = "Served"
)

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	OrderNo       string               `json:"order_no" gorm:"uniqueIndex;not null"`
	UserID        uint                 `json:"user_id" gorm:"not null"`
	User          User                 `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID  uint                 `json:"restaurant_id" gorm:"not null"`
	Restaurant    Restaurant           `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	TaxPrice      float64              `json:"tax_price" gorm:"not null;default:0"`
	TotalPrice    float64              `json:"total_price" gorm:"not null;default:0"`
	Status        OrderStatus          `json:"order_status" gorm:"not null;default:'Pending'"`
	IsPaid        bool                 `json:"is_paid" gorm:"not null;default:false"`
	PaidAt        *time.Time           `json:"paid_at"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a menu item at checkout time.
// Quantity and Price are kept as decimal strings, the shape existing clients
// store and send; the billing package parses them before any arithmetic.
// Later menu price changes never touch past orders.
type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Name       string   `json:"name" gorm:"not null"`
	Quantity   string   `json:"quantity" gorm:"not null"`
	Price      string   `json:"price" gorm:"not null"`
}

// OrderStatusHistory records every accepted transition for auditing.
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	CreatedAt  time.Time   `json:"created_at"`
}
