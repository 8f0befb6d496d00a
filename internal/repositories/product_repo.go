package repositories

import (
	"gerai/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns all products, optionally filtered by category.
	// An empty or "all" categoryID returns everything.
	GetAll(categoryID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	// DecrementStock atomically subtracts quantity from the product's stock.
	// Fails with ErrInsufficientStock when the remaining stock does not cover
	// the requested quantity; the stock level is never driven below zero.
	DecrementStock(id string, quantity int) error
}
