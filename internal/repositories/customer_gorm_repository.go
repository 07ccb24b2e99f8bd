package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chocshop/internal/models"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// Create creates a new customer in the database.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetAll retrieves all customers.
func (r *GORMCustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Order("cust_id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// GetByID retrieves a customer by their ID.
func (r *GORMCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "cust_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by their email. The email is always a
// bound parameter, never formatted into the query text.
func (r *GORMCustomerRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with email %s: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by email %s: %w", email, err)
	}
	return &customer, nil
}

// UpdateNameEmail updates a customer's name and email only.
func (r *GORMCustomerRepository) UpdateNameEmail(id uint, name, email string) error {
	res := r.db.Model(&models.Customer{}).Where("cust_id = ?", id).
		Updates(map[string]interface{}{"name": name, "email": email})
	if res.Error != nil {
		return fmt.Errorf("failed to update customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %d not found for update: %w", id, models.ErrNotFound)
	}
	return nil
}

// Delete deletes a customer by their ID. Referential checks belong to the
// service layer; this only removes the row.
func (r *GORMCustomerRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Customer{}, "cust_id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %d not found for deletion: %w", id, models.ErrNotFound)
	}
	return nil
}

// Search finds customers whose name or email contains the term,
// case-insensitively.
func (r *GORMCustomerRepository) Search(term string) ([]models.Customer, error) {
	var customers []models.Customer
	pattern := "%" + term + "%"
	err := r.db.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Order("cust_id").
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}
	return customers, nil
}
