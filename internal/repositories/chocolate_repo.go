package repositories

import (
	"chocshop/internal/models"
)

// ChocolateRepository defines the interface for catalog data access.
// Order flows only ever read from it.
type ChocolateRepository interface {
	GetAll() ([]models.Chocolate, error)
	GetByID(id uint) (*models.Chocolate, error)
	Create(chocolate *models.Chocolate) error
}
