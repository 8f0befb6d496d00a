package repositories

import (
	"sync"

	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews []models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{}
}

// Create appends a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

// GetByProductID returns all reviews for a product.
func (r *MockReviewRepository) GetByProductID(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewList := make([]models.Review, 0)
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviewList = append(reviewList, review)
		}
	}
	return reviewList, nil
}

// GetByUserID returns all reviews by a user.
func (r *MockReviewRepository) GetByUserID(userID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviewList := make([]models.Review, 0)
	for _, review := range r.reviews {
		if review.UserID == userID {
			reviewList = append(reviewList, review)
		}
	}
	return reviewList, nil
}
