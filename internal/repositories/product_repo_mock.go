package repositories

import (
	"fmt"
	"sync"

	"gerai/internal/apperrors"
	"gerai/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products map[string]models.Product
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
	}
}

// GetAll returns all products, optionally filtered by category.
func (r *MockProductRepository) GetAll(categoryID string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if categoryID != "" && categoryID != "all" && p.CategoryID != categoryID {
			continue
		}
		productList = append(productList, p)
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %s for update: %w", product.ID, apperrors.ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s for deletion: %w", id, apperrors.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// DecrementStock atomically checks and subtracts stock under the lock.
func (r *MockProductRepository) DecrementStock(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adjustStockLocked(id, -quantity)
}

// adjustStockLocked applies a stock delta. Callers must hold r.mu.
func (r *MockProductRepository) adjustStockLocked(id string, delta int) error {
	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("product with ID %s: %w", id, apperrors.ErrNotFound)
	}
	if product.Stock+delta < 0 {
		return fmt.Errorf("product %s (requested: %d, available: %d): %w",
			product.Name, -delta, product.Stock, apperrors.ErrInsufficientStock)
	}
	product.Stock += delta
	r.products[id] = product
	return nil
}

// reserve checks and decrements stock for all lines under one lock, so the
// whole set either succeeds or leaves stock untouched. Returns the unit
// price per product, captured at reservation time.
func (r *MockProductRepository) reserve(items []models.OrderItem) (map[string]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		product, ok := r.products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product with ID %s: %w", item.ProductID, apperrors.ErrNotFound)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("product %s (requested: %d, available: %d): %w",
				product.Name, item.Quantity, product.Stock, apperrors.ErrInsufficientStock)
		}
	}

	prices := make(map[string]float64, len(items))
	for _, item := range items {
		product := r.products[item.ProductID]
		product.Stock -= item.Quantity
		r.products[item.ProductID] = product
		prices[item.ProductID] = product.Price
	}
	return prices, nil
}
