package services_test

import (
	"errors"
	"testing"
	"time"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
	"chocshop/internal/services"

	"github.com/stretchr/testify/assert"
)

// seedOrders stores three orders for two customers through the
// in-memory repository and returns it with the service under test.
func seedOrders(t *testing.T) (*repositories.MockOrderRepository, *services.OrderService) {
	t.Helper()

	repo := repositories.NewMockOrderRepository()
	repo.RegisterCustomer(1, "Anabel")
	repo.RegisterCustomer(2, "Juliana")
	repo.RegisterCustomer(3, "Bob")
	repo.RegisterChocolate(1, "Dark Truffle")
	repo.RegisterChocolate(2, "Milk Praline")

	for _, custID := range []uint{1, 2, 3} {
		_, err := repo.CreateWithItems(custID, []models.OrderItem{
			{ChocID: 1, Quantity: 2, UnitPrice: 5.00},
			{ChocID: 2, Quantity: 1, UnitPrice: 3.50},
		})
		assert.NoError(t, err)
	}

	return repo, services.NewOrderService(repo, nil)
}

func TestOrderService_Search_QuitSentinel(t *testing.T) {
	_, service := seedOrders(t)

	for _, raw := range []string{"q", "Q", " q "} {
		result, err := service.Search(raw)
		assert.NoError(t, err)
		assert.Equal(t, services.SearchQuit, result.Kind)
		assert.Empty(t, result.Orders)
	}
}

func TestOrderService_Search_ByID(t *testing.T) {
	_, service := seedOrders(t)

	result, err := service.Search("2")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByID, result.Kind)
	assert.Len(t, result.Orders, 1)
	assert.Equal(t, uint(2), result.Orders[0].OrderID)
	assert.Equal(t, "Juliana", result.Orders[0].Customer)

	// An unknown ID is a "no results" outcome, not a failure
	result, err = service.Search("999")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByID, result.Kind)
	assert.Empty(t, result.Orders)
}

func TestOrderService_Search_All(t *testing.T) {
	_, service := seedOrders(t)

	result, err := service.Search("all")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchAll, result.Kind)
	assert.Len(t, result.Orders, 3)

	// The "all" token is case-sensitive; "ALL" falls through to the
	// name substring match.
	result, err = service.Search("ALL")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByName, result.Kind)
	assert.Empty(t, result.Orders)
}

func TestOrderService_Search_ByDate(t *testing.T) {
	_, service := seedOrders(t)

	result, err := service.Search(time.Now().Format("2006-01-02"))
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByDate, result.Kind)
	assert.Len(t, result.Orders, 3)

	result, err = service.Search("1999-01-01")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByDate, result.Kind)
	assert.Empty(t, result.Orders)
}

func TestOrderService_Search_ByName(t *testing.T) {
	_, service := seedOrders(t)

	// "ana" matches both Anabel and Juliana, case-insensitively
	result, err := service.Search("ana")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByName, result.Kind)
	assert.Len(t, result.Orders, 2)

	result, err = service.Search("BOB")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByName, result.Kind)
	assert.Len(t, result.Orders, 1)

	result, err = service.Search("nobody")
	assert.NoError(t, err)
	assert.Equal(t, services.SearchByName, result.Kind)
	assert.Empty(t, result.Orders)
}

func TestOrderService_DeleteOrder_Cancelled(t *testing.T) {
	repo, service := seedOrders(t)

	var shown models.OrderSummary
	outcome, err := service.DeleteOrder(1, func(order models.OrderSummary, items []models.OrderItemDetail) bool {
		shown = order
		assert.Len(t, items, 2)
		return false
	})
	assert.NoError(t, err)
	assert.Equal(t, services.DeleteCancelled, outcome)
	assert.Equal(t, uint(1), shown.OrderID)

	// Storage is untouched
	orders, err := repo.ListAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
}

func TestOrderService_DeleteOrder_Cascade(t *testing.T) {
	repo, service := seedOrders(t)

	outcome, err := service.DeleteOrder(2, func(models.OrderSummary, []models.OrderItemDetail) bool {
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, services.DeleteDone, outcome)

	_, err = repo.GetByID(2)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	items, err := repo.GetItems(2)
	assert.NoError(t, err)
	assert.Empty(t, items)

	// Exactly the deleted order's rows are gone
	orders, err := repo.ListAll()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, id := range []uint{1, 3} {
		items, err := repo.GetItems(id)
		assert.NoError(t, err)
		assert.Len(t, items, 2)
	}
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	_, service := seedOrders(t)

	confirmCalled := false
	_, err := service.DeleteOrder(999, func(models.OrderSummary, []models.OrderItemDetail) bool {
		confirmCalled = true
		return true
	})
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.False(t, confirmCalled)
}

func TestOrderService_GetOrderItems_EmptyIsValid(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, nil)

	items, err := service.GetOrderItems(42)
	assert.NoError(t, err)
	assert.Empty(t, items)
}
