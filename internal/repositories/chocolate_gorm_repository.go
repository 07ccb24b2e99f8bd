package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chocshop/internal/models"
)

// GORMChocolateRepository is a GORM implementation of ChocolateRepository.
type GORMChocolateRepository struct {
	db *gorm.DB
}

// NewGORMChocolateRepository creates a new instance of GORMChocolateRepository.
func NewGORMChocolateRepository(db *gorm.DB) *GORMChocolateRepository {
	return &GORMChocolateRepository{
		db: db,
	}
}

// GetAll retrieves the whole chocolate catalog.
func (r *GORMChocolateRepository) GetAll() ([]models.Chocolate, error) {
	var chocolates []models.Chocolate
	if err := r.db.Order("choc_id").Find(&chocolates).Error; err != nil {
		return nil, fmt.Errorf("failed to get all chocolates: %w", err)
	}
	return chocolates, nil
}

// GetByID retrieves a single chocolate by its ID.
func (r *GORMChocolateRepository) GetByID(id uint) (*models.Chocolate, error) {
	var chocolate models.Chocolate
	if err := r.db.First(&chocolate, "choc_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("chocolate with ID %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get chocolate by ID %d: %w", id, err)
	}
	return &chocolate, nil
}

// Create creates a new chocolate in the catalog.
func (r *GORMChocolateRepository) Create(chocolate *models.Chocolate) error {
	if err := r.db.Create(chocolate).Error; err != nil {
		return fmt.Errorf("failed to create chocolate: %w", err)
	}
	return nil
}
