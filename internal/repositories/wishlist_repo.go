package repositories

import "gerai/internal/models"

// WishlistRepository defines the interface for wishlist aggregate data access.
type WishlistRepository interface {
	// GetByUserID returns the user's wishlist with product refs resolved.
	// Fails with ErrNotFound when the user has no wishlist yet.
	GetByUserID(userID string) (*models.Wishlist, error)
	// AddItem creates the wishlist if absent and appends the product.
	// Fails with ErrConflict when the product is already present.
	AddItem(userID, productID string) (*models.Wishlist, error)
	// RemoveItem removes the product. Idempotent: a missing product or a
	// missing wishlist is not an error.
	RemoveItem(userID, productID string) error
}
