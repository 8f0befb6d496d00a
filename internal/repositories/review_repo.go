package repositories

import "gerai/internal/models"

// ReviewRepository defines the interface for review data access.
// Reviews are append-only; there is no update or delete.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByProductID(productID string) ([]models.Review, error)
	GetByUserID(userID string) ([]models.Review, error)
}
