package services_test

import (
	"errors"
	"fmt"
	"testing"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
	"chocshop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCustomerService_AddCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewCustomerService(mockRepo, orderRepo)

	customer := &models.Customer{
		Name:    "Anabel",
		Email:   "anabel@example.com",
		Phone:   "555-0101",
		Address: "12 Cocoa Lane",
		ZipCode: "12345",
	}

	mockRepo.On("GetByEmail", customer.Email).Return(nil, fmt.Errorf("customer with email %s: %w", customer.Email, models.ErrNotFound)).Once()
	mockRepo.On("Create", customer).Return(nil).Once()

	err := service.AddCustomer(customer)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_AddCustomer_EmailTaken(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewCustomerService(mockRepo, orderRepo)

	customer := &models.Customer{Name: "Anabel", Email: "anabel@example.com"}

	mockRepo.On("GetByEmail", customer.Email).Return(&models.Customer{CustID: 9, Email: customer.Email}, nil).Once()

	err := service.AddCustomer(customer)
	assert.True(t, errors.Is(err, models.ErrEmailTaken))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_AddCustomer_InvalidEmail(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewCustomerService(mockRepo, orderRepo)

	err := service.AddCustomer(&models.Customer{Name: "Anabel", Email: "not-an-email"})
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCustomerService_EditCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewCustomerService(mockRepo, orderRepo)

	current := &models.Customer{CustID: 3, Name: "Anabel", Email: "anabel@example.com"}

	// Name-only edit keeps the email; no uniqueness lookup needed
	mockRepo.On("GetByID", uint(3)).Return(current, nil).Once()
	mockRepo.On("UpdateNameEmail", uint(3), "Anabel Smith", "anabel@example.com").Return(nil).Once()
	err := service.EditCustomer(3, "Anabel Smith", "anabel@example.com")
	assert.NoError(t, err)
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
	mockRepo.AssertExpectations(t)

	// Changing the email checks uniqueness first
	mockRepo.On("GetByID", uint(3)).Return(current, nil).Once()
	mockRepo.On("GetByEmail", "taken@example.com").Return(&models.Customer{CustID: 8}, nil).Once()
	err = service.EditCustomer(3, "Anabel", "taken@example.com")
	assert.True(t, errors.Is(err, models.ErrEmailTaken))
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_DeleteCustomer_Blocked(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	orderRepo.RegisterCustomer(3, "Anabel")
	for i := 0; i < 2; i++ {
		_, err := orderRepo.CreateWithItems(3, []models.OrderItem{{ChocID: 1, Quantity: 1, UnitPrice: 5.00}})
		assert.NoError(t, err)
	}
	service := services.NewCustomerService(mockRepo, orderRepo)

	confirmCalled := false
	outcome, err := service.DeleteCustomer(3, func(models.Customer) bool {
		confirmCalled = true
		return true
	})
	assert.True(t, errors.Is(err, models.ErrCustomerHasOrders))
	assert.Equal(t, services.DeleteCancelled, outcome)
	assert.False(t, confirmCalled)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)

	// The referencing orders are untouched
	orders, err := orderRepo.ListByCustomer(3)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestCustomerService_DeleteCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewCustomerService(mockRepo, orderRepo)

	customer := &models.Customer{CustID: 5, Name: "Bob", Email: "bob@example.com"}

	// Declined confirmation leaves the row in place
	mockRepo.On("GetByID", uint(5)).Return(customer, nil).Once()
	outcome, err := service.DeleteCustomer(5, func(models.Customer) bool { return false })
	assert.NoError(t, err)
	assert.Equal(t, services.DeleteCancelled, outcome)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)

	// Confirmed deletion removes the row
	mockRepo.On("GetByID", uint(5)).Return(customer, nil).Once()
	mockRepo.On("Delete", uint(5)).Return(nil).Once()
	outcome, err = service.DeleteCustomer(5, func(c models.Customer) bool {
		assert.Equal(t, "Bob", c.Name)
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, services.DeleteDone, outcome)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_SearchCustomers(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewCustomerService(mockRepo, orderRepo)

	everyone := []models.Customer{
		{CustID: 1, Name: "Anabel"},
		{CustID: 2, Name: "Juliana"},
	}

	mockRepo.On("GetAll").Return(everyone, nil).Once()
	results, err := service.SearchCustomers("all")
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	mockRepo.On("GetByID", uint(2)).Return(&everyone[1], nil).Once()
	results, err = service.SearchCustomers("2")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "Juliana", results[0].Name)

	// Unknown ID is an empty result, not an error
	mockRepo.On("GetByID", uint(99)).Return(nil, fmt.Errorf("customer with ID 99: %w", models.ErrNotFound)).Once()
	results, err = service.SearchCustomers("99")
	assert.NoError(t, err)
	assert.Empty(t, results)

	mockRepo.On("Search", "ana").Return(everyone, nil).Once()
	results, err = service.SearchCustomers("ana")
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	mockRepo.AssertExpectations(t)
}
