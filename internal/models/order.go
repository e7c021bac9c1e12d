package models

import "time"

// OrderStatus is the lifecycle state of an order. Any status may be set
// from any other; sellers move orders forward, either side may cancel.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order is a cash-on-delivery order between one customer and one seller.
// A checkout spanning several sellers produces one Order per seller.
// TotalAmount is captured at creation time and never recomputed.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID      string      `json:"customerId" gorm:"type:varchar(36);index"`
	Customer        *User       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	SellerID        string      `json:"sellerId" gorm:"type:varchar(36);index"`
	Seller          *User       `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(16);default:PENDING"`
	TotalAmount     float64     `json:"totalAmount"`
	ShippingAddress string      `json:"shippingAddress" gorm:"type:varchar(255)"`
	Phone           string      `json:"phone" gorm:"type:varchar(32)"`
	Notes           string      `json:"notes,omitempty" gorm:"type:text"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem records one product line of an order. Price is the unit price
// at order time; later product price changes do not alter it.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"orderId" gorm:"type:varchar(36);index"`
	ProductID string   `json:"productId" gorm:"type:varchar(36);index"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
}
