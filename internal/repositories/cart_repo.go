package repositories

import "gerai/internal/models"

// CartRepository defines the interface for cart aggregate data access.
// Every mutation is atomic with respect to concurrent requests for the
// same user: two simultaneous AddItem calls must both be counted.
type CartRepository interface {
	// GetByUserID returns the user's cart with product refs resolved.
	// Fails with ErrNotFound when the user has no cart yet.
	GetByUserID(userID string) (*models.Cart, error)
	// AddItem creates the cart if absent, increments the line's quantity if
	// the product is already present, and appends a new line otherwise.
	// Returns the updated cart.
	AddItem(userID, productID string, quantity int) (*models.Cart, error)
	// RemoveItem deletes the line entirely regardless of quantity. A missing
	// line is a no-op; a missing cart fails with ErrNotFound.
	RemoveItem(userID, productID string) (*models.Cart, error)
	// SetItemQuantity sets the line's quantity to the exact value. Fails
	// with ErrNotFound when the cart or the line does not exist.
	SetItemQuantity(userID, productID string, quantity int) (*models.Cart, error)
	// Clear empties the cart's lines in place. Fails with ErrNotFound when
	// the user has no cart.
	Clear(userID string) error
}
