package services

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// CartService handles business logic for the per-user cart aggregate.
// Cart operations never touch stock; stock changes belong to order
// placement only.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart retrieves the user's cart with products resolved. A user who has
// never added anything gets an empty shell, never a not-found error.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity of a product to the user's cart, merging with an
// existing line for the same product.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d: %w", quantity, apperrors.ErrInvalidArgument)
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.cartRepo.AddItem(userID, productID, quantity)
}

// RemoveItem deletes the product's line entirely, regardless of quantity.
func (s *CartService) RemoveItem(userID, productID string) (*models.Cart, error) {
	return s.cartRepo.RemoveItem(userID, productID)
}

// SetItemQuantity sets a line's quantity to the exact value. A value below
// 1 is rejected rather than clamped; callers must use RemoveItem to drop a
// line.
func (s *CartService) SetItemQuantity(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d: %w", quantity, apperrors.ErrInvalidArgument)
	}
	return s.cartRepo.SetItemQuantity(userID, productID, quantity)
}

// ClearCart empties the user's cart in place.
func (s *CartService) ClearCart(userID string) error {
	return s.cartRepo.Clear(userID)
}
