package repositories

import (
	"chocshop/internal/models"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetAll() ([]models.Customer, error)
	GetByID(id uint) (*models.Customer, error)
	GetByEmail(email string) (*models.Customer, error)
	// UpdateNameEmail changes name and email only; phone, address and
	// zip code are immutable through the edit flow.
	UpdateNameEmail(id uint, name, email string) error
	Delete(id uint) error
	// Search matches the term as a case-insensitive substring of the
	// customer name or email.
	Search(term string) ([]models.Customer, error)
}
