package repositories

import (
	"errors"
	"fmt"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Place runs the whole checkout as one transaction: stock decrements,
// price capture, order insert and cart clear either all commit or all
// roll back. A retried request can therefore never leave an order behind
// with the cart still full, or sell stock it did not record.
func (r *GORMOrderRepository) Place(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for i := range order.Items {
			item := &order.Items[i]

			// Conditional decrement: the stock check and the write are one
			// statement, so concurrent orders cannot oversell.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}

			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product with ID %s: %w", item.ProductID, apperrors.ErrNotFound)
				}
				return err
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %s (requested: %d, available: %d): %w",
					product.Name, item.Quantity, product.Stock, apperrors.ErrInsufficientStock)
			}

			// Unit price is captured from the catalog at commit time; the
			// client-supplied total is never trusted.
			item.Price = product.Price
			total += product.Price * float64(item.Quantity)
		}
		order.TotalPrice = total

		if err := tx.Omit("Items.Product").Create(order).Error; err != nil {
			return err
		}

		// Snapshot taken; drop the cart lines in the same transaction.
		var cart models.Cart
		err := tx.Where("user_id = ?", order.UserID).First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}

// GetByID retrieves a single order with products resolved.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items.Product").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// GetByUserID retrieves all of the user's orders with products resolved.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Where("user_id = ?", userID).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for user %s: %w", userID, err)
	}
	return orders, nil
}
