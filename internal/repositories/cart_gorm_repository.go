package repositories

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
// All mutations run inside a transaction and use atomic update expressions
// so that concurrent requests against the same cart never lose updates.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves the user's cart with products resolved.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Preload("Items.Product.Category").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// AddItem merges quantity into an existing line or appends a new one,
// creating the cart lazily on first add.
func (r *GORMCartRepository) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		// Increment in place; the expression is evaluated by the database,
		// so two concurrent adds are both counted.
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		if err := tx.Omit("Product").Create(&item).Error; err != nil {
			// Lost the insert race against a concurrent add; the unique
			// (cart_id, product_id) index rejected us, so increment instead.
			return tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cart.ID, productID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart: %w", productID, err)
	}
	return r.GetByUserID(userID)
}

// RemoveItem deletes the line entirely. A missing line is a no-op.
func (r *GORMCartRepository) RemoveItem(userID, productID string) (*models.Cart, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove product %s from cart: %w", productID, err)
	}
	return r.GetByUserID(userID)
}

// SetItemQuantity sets the line's quantity to the exact value.
func (r *GORMCartRepository) SetItemQuantity(userID, productID string, quantity int) (*models.Cart, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID)
		if err != nil {
			return err
		}
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			UpdateColumn("quantity", quantity)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product %s not in cart: %w", productID, apperrors.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update quantity of product %s: %w", productID, err)
	}
	return r.GetByUserID(userID)
}

// Clear empties the cart's lines; the aggregate itself stays.
func (r *GORMCartRepository) Clear(userID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to clear cart for user %s: %w", userID, err)
	}
	return nil
}

// findCart looks up the user's cart inside the given transaction.
func findCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &cart, nil
}

// getOrCreateCart finds the user's cart or creates an empty one. When two
// requests race on the first add, the unique user_id index lets exactly one
// insert win; the loser re-reads the winner's row.
func getOrCreateCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{ID: uuid.New().String(), UserID: userID}
	if createErr := tx.Create(&cart).Error; createErr != nil {
		if lookupErr := tx.Where("user_id = ?", userID).First(&cart).Error; lookupErr != nil {
			return nil, createErr
		}
	}
	return &cart, nil
}
