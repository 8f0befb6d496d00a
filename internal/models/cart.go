package models

import "gorm.io/gorm"

// Cart is the per-user mutable aggregate of (product, quantity) lines.
// Each user has at most one cart, created lazily on first add.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CartItem is one line in a cart. A cart holds at most one line per product.
type CartItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	CartID    string  `json:"-" gorm:"type:varchar(36);uniqueIndex:idx_cart_product"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_product"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
}

// TotalPrice derives the cart total from resolved product prices. The total
// is never stored; it only exists transiently for display and checkout.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}
