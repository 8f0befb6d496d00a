package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // RabbitMQ client, may be nil
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// PlaceOrder snapshots the given line items into an immutable order. The
// user ID comes from the authenticated session, never from the request
// body. The total is recomputed from current catalog prices and stock is
// decremented inside the placement transaction; on any failure nothing is
// persisted and the cart stays intact.
func (s *OrderService) PlaceOrder(userID string, items []models.OrderItem, paymentMethod string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", apperrors.ErrInvalidArgument)
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %s must be at least 1, got %d: %w",
				item.ProductID, item.Quantity, apperrors.ErrInvalidArgument)
		}
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Items:         items,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	if err := s.orderRepo.Place(order); err != nil {
		return nil, err
	}

	s.publishOrderCreated(order)
	return order, nil
}

// GetUserOrders retrieves all orders placed by the user.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// GetOrderByID retrieves a single order. Only the owner or an admin may
// read it.
func (s *OrderService) GetOrderByID(id, requesterID, requesterRole string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != requesterID && requesterRole != models.RoleAdmin {
		return nil, fmt.Errorf("order %s does not belong to the requester: %w", id, apperrors.ErrForbidden)
	}
	return order, nil
}

// publishOrderCreated emits an order.created event. Publishing is
// best-effort: the order is already committed, so a broker failure is
// logged and not surfaced to the caller.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalPrice,
	}
	messageBody, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}
	if err := s.mqClient.Publish("order", "order.created", messageBody); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	}
}
