package services

import (
	"fmt"
	"strings"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// ReviewService handles business logic for the append-only review ledger.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// AddReview appends a review. Rating must be an integer from 1 to 5 and
// the comment must be non-empty. A user may review the same product more
// than once; reviews are never edited or deleted.
func (s *ReviewService) AddReview(productID, userID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d: %w", rating, apperrors.ErrInvalidArgument)
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("comment must not be empty: %w", apperrors.ErrInvalidArgument)
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetProductReviews retrieves all reviews for a product.
func (s *ReviewService) GetProductReviews(productID string) ([]models.Review, error) {
	return s.reviewRepo.GetByProductID(productID)
}

// GetUserReviews retrieves all reviews written by a user.
func (s *ReviewService) GetUserReviews(userID string) ([]models.Review, error) {
	return s.reviewRepo.GetByUserID(userID)
}
