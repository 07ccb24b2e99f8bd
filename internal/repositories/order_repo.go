package repositories

import (
	"time"

	"chocshop/internal/models"
)

// OrderRepository defines the interface for order data access. It is the
// sole writer and reader of order and order-item storage; both
// multi-row writes (commit with items, cascade delete) are atomic.
type OrderRepository interface {
	// CreateWithItems persists the order row, all item rows and the
	// derived subtotal as a single transaction. The order date is
	// assigned server-side. Returns the committed order.
	CreateWithItems(custID uint, items []models.OrderItem) (*models.Order, error)
	GetByID(id uint) (*models.OrderSummary, error)
	// GetItems returns the order's items joined with the chocolate type.
	// An empty slice is a valid result, not an error.
	GetItems(orderID uint) ([]models.OrderItemDetail, error)
	ListByCustomer(custID uint) ([]models.OrderSummary, error)
	ListAll() ([]models.OrderSummary, error)
	// FindByDate matches orders whose creation date falls on the given
	// calendar day.
	FindByDate(date time.Time) ([]models.OrderSummary, error)
	// FindByCustomerName matches the term as a case-insensitive
	// substring of the owning customer's name.
	FindByCustomerName(term string) ([]models.OrderSummary, error)
	CountByCustomer(custID uint) (int64, error)
	// Delete removes the order and all of its items in one transaction.
	Delete(id uint) error
}
