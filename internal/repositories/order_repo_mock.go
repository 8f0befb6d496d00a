package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// Place mirrors the GORM transaction: stock reservation is all-or-nothing
// and the cart is cleared in the same logical step.
type MockOrderRepository struct {
	orders   map[string]models.Order
	products *MockProductRepository
	carts    CartRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
// carts may be nil when no cart should be cleared on placement.
func NewMockOrderRepository(products *MockProductRepository, carts CartRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
		carts:    carts,
	}
}

// Place reserves stock for every line, captures unit prices and the total,
// stores the order and clears the user's cart.
func (r *MockOrderRepository) Place(order *models.Order) error {
	prices, err := r.products.reserve(order.Items)
	if err != nil {
		return err
	}

	var total float64
	for i := range order.Items {
		item := &order.Items[i]
		item.Price = prices[item.ProductID]
		total += item.Price * float64(item.Quantity)
	}
	order.TotalPrice = total

	r.mu.Lock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = *order
	r.mu.Unlock()

	if r.carts != nil {
		if err := r.carts.Clear(order.UserID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to clear cart after order %s: %w", order.ID, err)
		}
	}
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &order, nil
}

// GetByUserID returns all of the user's orders.
func (r *MockOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}
