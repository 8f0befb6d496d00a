package repositories

import "gerai/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Place persists the order as a single atomic unit: each line's stock is
	// decremented, unit prices and the total are captured from the current
	// product rows, the order is created, and the user's cart lines are
	// deleted. Fails with ErrInsufficientStock when any line's quantity
	// exceeds available stock; nothing is persisted in that case.
	Place(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
}
