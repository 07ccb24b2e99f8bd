package models

import "time"

// Order represents a committed customer order. The subtotal is always
// derived from the item rows at commit time, never assigned elsewhere.
type Order struct {
	OrderID   uint      `json:"order_id" gorm:"column:order_id;primaryKey;autoIncrement"`
	CustID    uint      `json:"cust_id" gorm:"column:cust_id;not null;index"`
	OrderDate time.Time `json:"order_date" gorm:"not null"`
	Subtotal  float64   `json:"subtotal"`
}

// OrderItem represents a single line within a committed order.
// UnitPrice is the catalog price snapshot taken at commit time.
type OrderItem struct {
	ItemID    uint    `json:"item_id" gorm:"column:item_id;primaryKey;autoIncrement"`
	OrderID   uint    `json:"order_id" gorm:"column:order_id;not null;index"`
	ChocID    uint    `json:"choc_id" gorm:"column:choc_id;not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
}

// OrderSummary is an order row joined with its customer's name,
// the shape every order listing and search renders.
type OrderSummary struct {
	OrderID   uint      `json:"order_id"`
	Customer  string    `json:"customer"`
	OrderDate time.Time `json:"order_date"`
	Subtotal  float64   `json:"subtotal"`
}

// OrderItemDetail is an order item joined with its chocolate's type.
type OrderItemDetail struct {
	ItemID    uint   `json:"item_id"`
	OrderID   uint   `json:"order_id"`
	Chocolate string `json:"chocolate"`
	Quantity  int    `json:"quantity"`
}
