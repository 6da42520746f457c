package model

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is a line item snapshot. Name, price and image are copied from the
// catalog at add-to-cart time and never re-resolved.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Size      string  `json:"size"`
	Image     string  `json:"image"`
}

// StatusChange is one entry of the append-only status trail.
type StatusChange struct {
	Status OrderStatus `json:"status"`
	At     time.Time   `json:"at"`
	Note   string      `json:"note"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Street   string `json:"street"`
	Country  string `json:"country"`
}

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

type Payment struct {
	Method PaymentMethod `json:"method"`
}

// Order doubles as the cart while status is pending. At most one pending
// order exists per user.
type Order struct {
	ID              int64                               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64                               `gorm:"not null;index" json:"user"`
	Items           datatypes.JSONSlice[OrderItem]      `gorm:"type:jsonb" json:"items"`
	Total           float64                             `gorm:"not null" json:"total"`
	Status          OrderStatus                         `gorm:"type:varchar(20);not null;index" json:"status"`
	ShippingAddress datatypes.JSONType[ShippingAddress] `gorm:"type:jsonb" json:"shippingAddress"`
	Payment         datatypes.JSONType[Payment]         `gorm:"type:jsonb" json:"payment"`
	Notes           string                              `gorm:"type:text" json:"notes"`
	StatusHistory   datatypes.JSONSlice[StatusChange]   `gorm:"type:jsonb" json:"statusHistory"`
	Version         int64                               `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time                           `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time                           `gorm:"not null;autoUpdateTime" json:"-"`
}
