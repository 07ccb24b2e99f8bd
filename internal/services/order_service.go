package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
	"chocshop/pkg/rabbitmq"
)

// SearchKind identifies which retrieval strategy a raw query selected.
type SearchKind int

const (
	// SearchQuit means the quit sentinel was entered; nothing was queried.
	SearchQuit SearchKind = iota
	// SearchByID means the query was all digits and looked up one order.
	SearchByID
	// SearchAll means the literal token "all" listed every order.
	SearchAll
	// SearchByDate means the query parsed as an ISO date (YYYY-MM-DD).
	SearchByDate
	// SearchByName means the catch-all customer-name substring match.
	SearchByName
)

// SearchResult carries the classified query and its matching orders.
// An empty Orders slice is a "no results" outcome, not an error.
type SearchResult struct {
	Kind   SearchKind
	Orders []models.OrderSummary
}

// DeleteOutcome reports how a confirmed deletion ended.
type DeleteOutcome int

const (
	// DeleteCancelled means the caller declined; storage is untouched.
	DeleteCancelled DeleteOutcome = iota
	// DeleteDone means the record and its dependents were removed.
	DeleteDone
)

// ConfirmOrderDelete lets the caller inspect the order and its items
// before the cascade delete proceeds.
type ConfirmOrderDelete func(order models.OrderSummary, items []models.OrderItemDetail) bool

// OrderService handles order retrieval, free-form search classification
// and confirmed cascading deletion.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetOrder retrieves a single order joined with its customer's name.
func (s *OrderService) GetOrder(id uint) (*models.OrderSummary, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrderItems retrieves an order's items joined with the chocolate type.
func (s *OrderService) GetOrderItems(orderID uint) ([]models.OrderItemDetail, error) {
	return s.orderRepo.GetItems(orderID)
}

// ListByCustomer retrieves all orders placed by one customer.
func (s *OrderService) ListByCustomer(custID uint) ([]models.OrderSummary, error) {
	return s.orderRepo.ListByCustomer(custID)
}

// ListAllOrders retrieves every order.
func (s *OrderService) ListAllOrders() ([]models.OrderSummary, error) {
	return s.orderRepo.ListAll()
}

// Search classifies one free-form query string into exactly one retrieval
// strategy, first match wins: quit sentinel, all-digits order ID, the
// literal token "all", an ISO calendar date, then the customer-name
// substring catch-all. The cheap token checks run before the date parse
// so no input is ever rejected outright.
func (s *OrderService) Search(raw string) (*SearchResult, error) {
	query := strings.TrimSpace(raw)

	if strings.EqualFold(query, "q") {
		return &SearchResult{Kind: SearchQuit}, nil
	}

	if isDigits(query) {
		id, err := parseID(query)
		if err != nil {
			return nil, err
		}
		summary, err := s.orderRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return &SearchResult{Kind: SearchByID}, nil
			}
			return nil, err
		}
		return &SearchResult{Kind: SearchByID, Orders: []models.OrderSummary{*summary}}, nil
	}

	if query == "all" {
		orders, err := s.orderRepo.ListAll()
		if err != nil {
			return nil, err
		}
		return &SearchResult{Kind: SearchAll, Orders: orders}, nil
	}

	if date, err := time.Parse("2006-01-02", query); err == nil {
		orders, err := s.orderRepo.FindByDate(date)
		if err != nil {
			return nil, err
		}
		return &SearchResult{Kind: SearchByDate, Orders: orders}, nil
	}

	orders, err := s.orderRepo.FindByCustomerName(query)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Kind: SearchByName, Orders: orders}, nil
}

// DeleteOrder performs the two-step confirmed cascade delete: it fetches
// the order and its items, hands them to the caller's confirmation
// callback, and only on approval removes the items and the order row in
// one transaction.
func (s *OrderService) DeleteOrder(id uint, confirm ConfirmOrderDelete) (DeleteOutcome, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return DeleteCancelled, err
	}

	items, err := s.orderRepo.GetItems(id)
	if err != nil {
		return DeleteCancelled, err
	}

	if !confirm(*order, items) {
		return DeleteCancelled, nil
	}

	if err := s.orderRepo.Delete(id); err != nil {
		return DeleteCancelled, err
	}

	if s.mqClient != nil {
		payload := map[string]interface{}{
			"event_id": uuid.New().String(),
			"order_id": order.OrderID,
		}
		if err := s.mqClient.Publish("order.deleted", payload); err != nil {
			log.Warnf("Failed to publish order.deleted event for order %d: %v", order.OrderID, err)
		}
	}

	return DeleteDone, nil
}

// isDigits reports whether the string is non-empty and entirely
// decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseID parses an all-digit identifier string.
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return uint(id), nil
}
