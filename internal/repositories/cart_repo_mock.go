package repositories

import (
	"fmt"
	"sync"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// Each operation runs under the repository mutex, so mutations on the
// same cart are serialized just like the transactional GORM counterpart.
type MockCartRepository struct {
	carts    map[string]models.Cart // keyed by user ID
	products ProductRepository      // for resolving product refs on reads
	mu       sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
// products may be nil when resolution is not needed.
func NewMockCartRepository(products ProductRepository) *MockCartRepository {
	return &MockCartRepository{
		carts:    make(map[string]models.Cart),
		products: products,
	}
}

// GetByUserID returns the user's cart with products resolved.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
	}
	return r.resolvedLocked(cart), nil
}

// AddItem merges quantity into an existing line or appends a new one.
func (r *MockCartRepository) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		cart = models.Cart{ID: uuid.New().String(), UserID: userID}
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity})
	}
	r.carts[userID] = cart

	return r.resolvedLocked(cart), nil
}

// RemoveItem deletes the line entirely; a missing line is a no-op.
func (r *MockCartRepository) RemoveItem(userID, productID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	r.carts[userID] = cart

	return r.resolvedLocked(cart), nil
}

// SetItemQuantity sets the line's quantity to the exact value.
func (r *MockCartRepository) SetItemQuantity(userID, productID string, quantity int) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			r.carts[userID] = cart
			return r.resolvedLocked(cart), nil
		}
	}
	return nil, fmt.Errorf("product %s not in cart: %w", productID, apperrors.ErrNotFound)
}

// Clear empties the cart's lines in place.
func (r *MockCartRepository) Clear(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
	}
	cart.Items = nil
	r.carts[userID] = cart
	return nil
}

// resolvedLocked returns a copy of the cart with product refs filled in.
// Callers must hold r.mu; the copy never aliases stored state.
func (r *MockCartRepository) resolvedLocked(cart models.Cart) *models.Cart {
	out := cart
	out.Items = make([]models.CartItem, len(cart.Items))
	copy(out.Items, cart.Items)
	if r.products == nil {
		return &out
	}
	for i := range out.Items {
		if product, err := r.products.GetByID(out.Items[i].ProductID); err == nil {
			out.Items[i].Product = *product
		}
	}
	return &out
}
