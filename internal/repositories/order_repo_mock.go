package repositories

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"chocshop/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Customer names and chocolate types are registered up front so the
// joined result shapes can be reproduced without a database.
type MockOrderRepository struct {
	mu            sync.RWMutex
	nextOrderID   uint
	nextItemID    uint
	orders        map[uint]models.Order
	items         map[uint][]models.OrderItem
	customerNames map[uint]string
	chocTypes     map[uint]string
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		nextOrderID:   1,
		nextItemID:    1,
		orders:        make(map[uint]models.Order),
		items:         make(map[uint][]models.OrderItem),
		customerNames: make(map[uint]string),
		chocTypes:     make(map[uint]string),
	}
}

// RegisterCustomer records the display name used for joined results.
func (r *MockOrderRepository) RegisterCustomer(custID uint, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customerNames[custID] = name
}

// RegisterChocolate records the chocolate type used for joined results.
func (r *MockOrderRepository) RegisterChocolate(chocID uint, chocType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chocTypes[chocID] = chocType
}

// CreateWithItems stores the order, its items and the derived subtotal.
func (r *MockOrderRepository) CreateWithItems(custID uint, items []models.OrderItem) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order := models.Order{
		OrderID:   r.nextOrderID,
		CustID:    custID,
		OrderDate: time.Now(),
	}
	r.nextOrderID++

	stored := make([]models.OrderItem, 0, len(items))
	var subtotal float64
	for _, item := range items {
		item.ItemID = r.nextItemID
		item.OrderID = order.OrderID
		r.nextItemID++
		stored = append(stored, item)
		subtotal += float64(item.Quantity) * item.UnitPrice
	}

	order.Subtotal = subtotal
	r.orders[order.OrderID] = order
	r.items[order.OrderID] = stored
	return &order, nil
}

// GetByID returns an order summary by its ID.
func (r *MockOrderRepository) GetByID(id uint) (*models.OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %d: %w", id, models.ErrNotFound)
	}
	summary := r.summarize(order)
	return &summary, nil
}

// GetItems returns the item details for an order.
func (r *MockOrderRepository) GetItems(orderID uint) ([]models.OrderItemDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	details := make([]models.OrderItemDetail, 0, len(r.items[orderID]))
	for _, item := range r.items[orderID] {
		details = append(details, models.OrderItemDetail{
			ItemID:    item.ItemID,
			OrderID:   item.OrderID,
			Chocolate: r.chocTypes[item.ChocID],
			Quantity:  item.Quantity,
		})
	}
	return details, nil
}

// ListByCustomer returns the orders placed by one customer.
func (r *MockOrderRepository) ListByCustomer(custID uint) ([]models.OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summaries []models.OrderSummary
	for id := uint(1); id < r.nextOrderID; id++ {
		if order, ok := r.orders[id]; ok && order.CustID == custID {
			summaries = append(summaries, r.summarize(order))
		}
	}
	return summaries, nil
}

// ListAll returns every stored order.
func (r *MockOrderRepository) ListAll() ([]models.OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var summaries []models.OrderSummary
	for id := uint(1); id < r.nextOrderID; id++ {
		if order, ok := r.orders[id]; ok {
			summaries = append(summaries, r.summarize(order))
		}
	}
	return summaries, nil
}

// FindByDate returns orders created on the given calendar day.
func (r *MockOrderRepository) FindByDate(date time.Time) ([]models.OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := date.Format("2006-01-02")
	var summaries []models.OrderSummary
	for id := uint(1); id < r.nextOrderID; id++ {
		if order, ok := r.orders[id]; ok && order.OrderDate.Format("2006-01-02") == day {
			summaries = append(summaries, r.summarize(order))
		}
	}
	return summaries, nil
}

// FindByCustomerName returns orders whose customer name contains the term,
// case-insensitively.
func (r *MockOrderRepository) FindByCustomerName(term string) ([]models.OrderSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := strings.ToLower(term)
	var summaries []models.OrderSummary
	for id := uint(1); id < r.nextOrderID; id++ {
		order, ok := r.orders[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(r.customerNames[order.CustID]), lowered) {
			summaries = append(summaries, r.summarize(order))
		}
	}
	return summaries, nil
}

// CountByCustomer counts the orders referencing one customer.
func (r *MockOrderRepository) CountByCustomer(custID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if order.CustID == custID {
			count++
		}
	}
	return count, nil
}

// Delete removes the order and its items.
func (r *MockOrderRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order with ID %d not found for deletion: %w", id, models.ErrNotFound)
	}
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

func (r *MockOrderRepository) summarize(order models.Order) models.OrderSummary {
	return models.OrderSummary{
		OrderID:   order.OrderID,
		Customer:  r.customerNames[order.CustID],
		OrderDate: order.OrderDate,
		Subtotal:  order.Subtotal,
	}
}
