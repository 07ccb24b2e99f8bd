package services

import (
	"chocshop/internal/models"
	"chocshop/internal/repositories"
)

// ChocolateService handles catalog reads for the order flows.
type ChocolateService struct {
	repo repositories.ChocolateRepository
}

// NewChocolateService creates a new ChocolateService.
func NewChocolateService(repo repositories.ChocolateRepository) *ChocolateService {
	return &ChocolateService{
		repo: repo,
	}
}

// GetAllChocolates retrieves the whole catalog.
func (s *ChocolateService) GetAllChocolates() ([]models.Chocolate, error) {
	return s.repo.GetAll()
}

// GetChocolateByID retrieves a single chocolate by its ID.
func (s *ChocolateService) GetChocolateByID(id uint) (*models.Chocolate, error) {
	return s.repo.GetByID(id)
}
