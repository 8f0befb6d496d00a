package services

import (
	"errors"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
)

// WishlistService handles business logic for the per-user wishlist.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// GetWishlist retrieves the user's wishlist, or an empty shell if none
// exists yet.
func (s *WishlistService) GetWishlist(userID string) (*models.Wishlist, error) {
	wishlist, err := s.wishlistRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &models.Wishlist{UserID: userID, Items: []models.WishlistItem{}}, nil
		}
		return nil, err
	}
	return wishlist, nil
}

// AddItem saves a product to the user's wishlist. Adding a product that is
// already present fails with ErrConflict and leaves the wishlist unchanged.
func (s *WishlistService) AddItem(userID, productID string) (*models.Wishlist, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.wishlistRepo.AddItem(userID, productID)
}

// RemoveItem removes a product from the user's wishlist. Idempotent: a
// product or wishlist that is already gone is not an error.
func (s *WishlistService) RemoveItem(userID, productID string) error {
	return s.wishlistRepo.RemoveItem(userID, productID)
}
