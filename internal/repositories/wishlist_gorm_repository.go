package repositories

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// GetByUserID retrieves the user's wishlist with products resolved.
func (r *GORMWishlistRepository) GetByUserID(userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.Preload("Items.Product.Category").Where("user_id = ?", userID).First(&wishlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("wishlist for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}
	return &wishlist, nil
}

// AddItem appends the product, creating the wishlist lazily. A duplicate
// add is rejected, not ignored.
func (r *GORMWishlistRepository) AddItem(userID, productID string) (*models.Wishlist, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var wishlist models.Wishlist
		err := tx.Where("user_id = ?", userID).First(&wishlist).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			wishlist = models.Wishlist{ID: uuid.New().String(), UserID: userID}
			if createErr := tx.Create(&wishlist).Error; createErr != nil {
				if lookupErr := tx.Where("user_id = ?", userID).First(&wishlist).Error; lookupErr != nil {
					return createErr
				}
			}
		} else if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.WishlistItem{}).
			Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("product %s already in wishlist: %w", productID, apperrors.ErrConflict)
		}

		item := models.WishlistItem{WishlistID: wishlist.ID, ProductID: productID}
		if err := tx.Omit("Product").Create(&item).Error; err != nil {
			// The unique (wishlist_id, product_id) index also catches the
			// race where a concurrent request added the product first.
			return fmt.Errorf("product %s already in wishlist: %w", productID, apperrors.ErrConflict)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add product %s to wishlist: %w", productID, err)
	}
	return r.GetByUserID(userID)
}

// RemoveItem removes the product. Missing wishlists and missing products
// are both treated as already removed.
func (r *GORMWishlistRepository) RemoveItem(userID, productID string) error {
	var wishlist models.Wishlist
	err := r.db.Where("user_id = ?", userID).First(&wishlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}

	if err := r.db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, productID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		return fmt.Errorf("failed to remove product %s from wishlist: %w", productID, err)
	}
	return nil
}
