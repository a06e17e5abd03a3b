package models

import "time"

// OrderStatus type for order status
type OrderStatus string

const (
	OrderNew        OrderStatus = "new"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

// DefaultOrderStatus is stored when an order is created without a status
const DefaultOrderStatus = OrderNew

// OrderStatuses lists every accepted status
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderNew, OrderProcessing, OrderShipped, OrderDelivered}
}

// Valid reports whether s is one of the declared statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderNew, OrderProcessing, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Order represents orders table
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	AddDate      time.Time   `gorm:"column:add_date;autoCreateTime" json:"add_date"`
	DeliveryDate *time.Time  `json:"delivery_date,omitempty"`
	Status       OrderStatus `gorm:"column:order_status;type:varchar(20);not null;default:'new';check:order_status IN ('new','processing','shipped','delivered')" json:"order_status"`
	UserID       uint        `gorm:"not null" json:"user_id"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Products []Product `gorm:"many2many:product_order" json:"ordered_products,omitempty"`
}

// TableName specifies the table name for Order
func (Order) TableName() string {
	return "orders"
}
