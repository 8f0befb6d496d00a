package repositories

import (
	"fmt"
	"sync"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	wishlists map[string]models.Wishlist // keyed by user ID
	products  ProductRepository          // for resolving product refs on reads
	mu        sync.RWMutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
// products may be nil when resolution is not needed.
func NewMockWishlistRepository(products ProductRepository) *MockWishlistRepository {
	return &MockWishlistRepository{
		wishlists: make(map[string]models.Wishlist),
		products:  products,
	}
}

// GetByUserID returns the user's wishlist with products resolved.
func (r *MockWishlistRepository) GetByUserID(userID string) (*models.Wishlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wishlist, ok := r.wishlists[userID]
	if !ok {
		return nil, fmt.Errorf("wishlist for user %s: %w", userID, apperrors.ErrNotFound)
	}
	return r.resolvedLocked(wishlist), nil
}

// AddItem appends the product; a duplicate add is rejected.
func (r *MockWishlistRepository) AddItem(userID, productID string) (*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wishlist, ok := r.wishlists[userID]
	if !ok {
		wishlist = models.Wishlist{ID: uuid.New().String(), UserID: userID}
	}

	for _, item := range wishlist.Items {
		if item.ProductID == productID {
			return nil, fmt.Errorf("product %s already in wishlist: %w", productID, apperrors.ErrConflict)
		}
	}
	wishlist.Items = append(wishlist.Items, models.WishlistItem{WishlistID: wishlist.ID, ProductID: productID})
	r.wishlists[userID] = wishlist

	return r.resolvedLocked(wishlist), nil
}

// RemoveItem removes the product; idempotent on missing state.
func (r *MockWishlistRepository) RemoveItem(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wishlist, ok := r.wishlists[userID]
	if !ok {
		return nil
	}

	items := make([]models.WishlistItem, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	wishlist.Items = items
	r.wishlists[userID] = wishlist
	return nil
}

// resolvedLocked returns a copy with product refs filled in. Callers must
// hold r.mu.
func (r *MockWishlistRepository) resolvedLocked(wishlist models.Wishlist) *models.Wishlist {
	out := wishlist
	out.Items = make([]models.WishlistItem, len(wishlist.Items))
	copy(out.Items, wishlist.Items)
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
