package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chocshop/internal/models"
)

const orderSummarySelect = "orders.order_id, customers.name AS customer, orders.order_date, orders.subtotal"

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// CreateWithItems commits an order and its items atomically. The order row,
// every item row and the subtotal update either all take effect or none do,
// so an orphaned or stale-subtotal order is never observable.
func (r *GORMOrderRepository) CreateWithItems(custID uint, items []models.OrderItem) (*models.Order, error) {
	order := &models.Order{
		CustID:    custID,
		OrderDate: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order row: %w", err)
		}

		var subtotal float64
		for i := range items {
			items[i].ItemID = 0
			items[i].OrderID = order.OrderID
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			subtotal += float64(items[i].Quantity) * items[i].UnitPrice
		}

		order.Subtotal = subtotal
		if err := tx.Model(&models.Order{}).Where("order_id = ?", order.OrderID).
			Update("subtotal", subtotal).Error; err != nil {
			return fmt.Errorf("failed to store order subtotal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

// GetByID retrieves an order joined with its customer's name.
func (r *GORMOrderRepository) GetByID(id uint) (*models.OrderSummary, error) {
	var summary models.OrderSummary
	err := r.db.Table("orders").
		Select(orderSummarySelect).
		Joins("INNER JOIN customers ON orders.cust_id = customers.cust_id").
		Where("orders.order_id = ?", id).
		Take(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &summary, nil
}

// GetItems retrieves an order's items joined with the chocolate type.
func (r *GORMOrderRepository) GetItems(orderID uint) ([]models.OrderItemDetail, error) {
	var items []models.OrderItemDetail
	err := r.db.Table("order_items").
		Select("order_items.item_id, order_items.order_id, chocolates.type AS chocolate, order_items.quantity").
		Joins("INNER JOIN chocolates ON order_items.choc_id = chocolates.choc_id").
		Where("order_items.order_id = ?", orderID).
		Order("order_items.item_id").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	return items, nil
}

// ListByCustomer retrieves all orders placed by one customer.
func (r *GORMOrderRepository) ListByCustomer(custID uint) ([]models.OrderSummary, error) {
	var summaries []models.OrderSummary
	err := r.db.Table("orders").
		Select(orderSummarySelect).
		Joins("INNER JOIN customers ON orders.cust_id = customers.cust_id").
		Where("orders.cust_id = ?", custID).
		Order("orders.order_id").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for customer %d: %w", custID, err)
	}
	return summaries, nil
}

// ListAll retrieves every order joined with its customer's name.
func (r *GORMOrderRepository) ListAll() ([]models.OrderSummary, error) {
	var summaries []models.OrderSummary
	err := r.db.Table("orders").
		Select(orderSummarySelect).
		Joins("INNER JOIN customers ON orders.cust_id = customers.cust_id").
		Order("orders.order_id").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all orders: %w", err)
	}
	return summaries, nil
}

// FindByDate retrieves orders created on the given calendar day.
func (r *GORMOrderRepository) FindByDate(date time.Time) ([]models.OrderSummary, error) {
	var summaries []models.OrderSummary
	err := r.db.Table("orders").
		Select(orderSummarySelect).
		Joins("INNER JOIN customers ON orders.cust_id = customers.cust_id").
		Where("DATE(orders.order_date) = ?", date.Format("2006-01-02")).
		Order("orders.order_id").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders by date: %w", err)
	}
	return summaries, nil
}

// FindByCustomerName retrieves orders whose customer name contains the
// term, case-insensitively. The term is always a bound parameter.
func (r *GORMOrderRepository) FindByCustomerName(term string) ([]models.OrderSummary, error) {
	var summaries []models.OrderSummary
	err := r.db.Table("orders").
		Select(orderSummarySelect).
		Joins("INNER JOIN customers ON orders.cust_id = customers.cust_id").
		Where("LOWER(customers.name) LIKE LOWER(?)", "%"+term+"%").
		Order("orders.order_id").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders by customer name: %w", err)
	}
	return summaries, nil
}

// CountByCustomer counts the orders referencing one customer.
func (r *GORMOrderRepository) CountByCustomer(custID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("cust_id = ?", custID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders for customer %d: %w", custID, err)
	}
	return count, nil
}

// Delete removes the order and all of its items in one transaction.
func (r *GORMOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items for order %d: %w", id, err)
		}
		res := tx.Delete(&models.Order{}, "order_id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order with ID %d not found for deletion: %w", id, models.ErrNotFound)
		}
		return nil
	})
}
