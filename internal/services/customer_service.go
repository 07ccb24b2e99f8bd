package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
)

// ConfirmCustomerDelete lets the caller inspect the customer before the
// delete proceeds.
type ConfirmCustomerDelete func(customer models.Customer) bool

// CustomerService handles the customer directory: creation, the
// name/email edit flow, search, and referentially safe deletion.
type CustomerService struct {
	customerRepo repositories.CustomerRepository
	orderRepo    repositories.OrderRepository
	validate     *validator.Validate
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo repositories.CustomerRepository, orderRepo repositories.OrderRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		validate:     validator.New(),
	}
}

// AddCustomer validates and creates a new customer. The email must not
// already be in use; the uniqueness lookup uses a bound parameter.
func (s *CustomerService) AddCustomer(customer *models.Customer) error {
	if err := s.validate.Struct(customer); err != nil {
		return fmt.Errorf("invalid customer: %w", err)
	}

	if existing, err := s.customerRepo.GetByEmail(customer.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s': %w", customer.Email, models.ErrEmailTaken)
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return fmt.Errorf("failed to add customer: %w", err)
	}
	return nil
}

// GetCustomer retrieves a customer by ID.
func (s *CustomerService) GetCustomer(id uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(id)
}

// EditCustomer updates a customer's name and email. Phone, address and
// zip code stay immutable through this flow.
func (s *CustomerService) EditCustomer(id uint, name, email string) error {
	current, err := s.customerRepo.GetByID(id)
	if err != nil {
		return err
	}

	updated := *current
	updated.Name = name
	updated.Email = email
	if err := s.validate.Struct(&updated); err != nil {
		return fmt.Errorf("invalid customer: %w", err)
	}

	if email != current.Email {
		if existing, lookupErr := s.customerRepo.GetByEmail(email); lookupErr == nil && existing != nil {
			return fmt.Errorf("email '%s': %w", email, models.ErrEmailTaken)
		} else if lookupErr != nil && !errors.Is(lookupErr, models.ErrNotFound) {
			return lookupErr
		}
	}

	return s.customerRepo.UpdateNameEmail(id, name, email)
}

// DeleteCustomer removes a customer after confirmation, refusing while
// any order still references them.
func (s *CustomerService) DeleteCustomer(id uint, confirm ConfirmCustomerDelete) (DeleteOutcome, error) {
	count, err := s.orderRepo.CountByCustomer(id)
	if err != nil {
		return DeleteCancelled, err
	}
	if count > 0 {
		return DeleteCancelled, fmt.Errorf("customer %d: %w", id, models.ErrCustomerHasOrders)
	}

	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return DeleteCancelled, err
	}

	if !confirm(*customer) {
		return DeleteCancelled, nil
	}

	if err := s.customerRepo.Delete(id); err != nil {
		return DeleteCancelled, err
	}
	return DeleteDone, nil
}

// SearchCustomers resolves a directory query: the literal "all" lists
// everyone, an all-digit term looks up one ID, anything else matches the
// name or email as a substring.
func (s *CustomerService) SearchCustomers(raw string) ([]models.Customer, error) {
	term := raw
	if term == "all" {
		return s.customerRepo.GetAll()
	}
	if isDigits(term) {
		id, err := parseID(term)
		if err != nil {
			return nil, err
		}
		customer, err := s.customerRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return []models.Customer{*customer}, nil
	}
	return s.customerRepo.Search(term)
}

// CountOrders returns how many orders reference the customer.
func (s *CustomerService) CountOrders(id uint) (int64, error) {
	return s.orderRepo.CountByCustomer(id)
}
