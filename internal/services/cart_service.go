package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"chocshop/internal/models"
	"chocshop/internal/repositories"
	"chocshop/pkg/rabbitmq"
)

// CartLine is a staged order line awaiting commit.
type CartLine struct {
	ChocID    uint    `json:"choc_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// CartService stages order lines in memory so that an abandoned order
// leaves no trace in storage. Commit is the single persistence point.
type CartService struct {
	orderRepo    repositories.OrderRepository
	chocRepo     repositories.ChocolateRepository
	customerRepo repositories.CustomerRepository
	mqClient     *rabbitmq.Client
	lines        []CartLine
}

// NewCartService creates a new CartService.
func NewCartService(orderRepo repositories.OrderRepository, chocRepo repositories.ChocolateRepository, customerRepo repositories.CustomerRepository, mqClient *rabbitmq.Client) *CartService {
	return &CartService{
		orderRepo:    orderRepo,
		chocRepo:     chocRepo,
		customerRepo: customerRepo,
		mqClient:     mqClient,
	}
}

// AddItem validates the chocolate and quantity and stages a new line.
// Repeated additions of the same chocolate accumulate as separate lines.
func (s *CartService) AddItem(chocID uint, quantity int) (CartLine, error) {
	if quantity <= 0 {
		return CartLine{}, fmt.Errorf("quantity %d: %w", quantity, models.ErrInvalidQuantity)
	}

	chocolate, err := s.chocRepo.GetByID(chocID)
	if err != nil {
		return CartLine{}, err
	}

	line := CartLine{
		ChocID:    chocolate.ChocID,
		Quantity:  quantity,
		UnitPrice: chocolate.Price,
	}
	s.lines = append(s.lines, line)
	return line, nil
}

// Items returns the staged lines for display and confirmation.
func (s *CartService) Items() []CartLine {
	return s.lines
}

// Discard clears the staged lines. Nothing was written, so there is no
// persistent effect.
func (s *CartService) Discard() {
	s.lines = nil
}

// Commit persists the staged lines as a new order for the given customer.
// The order row, all item rows and the derived subtotal are written as a
// single transaction; a zero-item order is never persisted. On success the
// cart is cleared and the committed order is returned.
func (s *CartService) Commit(custID uint) (*models.Order, error) {
	if len(s.lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	if _, err := s.customerRepo.GetByID(custID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("customer %d: %w", custID, models.ErrUnknownCustomer)
		}
		return nil, fmt.Errorf("failed to look up customer %d: %w", custID, err)
	}

	items := make([]models.OrderItem, 0, len(s.lines))
	for _, line := range s.lines {
		items = append(items, models.OrderItem{
			ChocID:    line.ChocID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	order, err := s.orderRepo.CreateWithItems(custID, items)
	if err != nil {
		return nil, err
	}
	s.lines = nil

	s.publishOrderEvent("order.created", map[string]interface{}{
		"event_id": uuid.New().String(),
		"order_id": order.OrderID,
		"cust_id":  order.CustID,
		"subtotal": order.Subtotal,
		"items":    len(items),
	})

	return order, nil
}

func (s *CartService) publishOrderEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		log.Debug("RabbitMQ client is not initialized, skipping event publication")
		return
	}
	if err := s.mqClient.Publish(eventType, payload); err != nil {
		log.Warnf("Failed to publish %s event: %v", eventType, err)
	}
}
