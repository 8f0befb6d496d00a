package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

func newProductServiceForTest(t *testing.T) (*services.ProductService, *repositories.MockCategoryRepository) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	categoryRepo := repositories.NewMockCategoryRepository()
	return services.NewProductService(productRepo, categoryRepo), categoryRepo
}

func TestProductService_CreateProduct_UnknownCategory(t *testing.T) {
	service, _ := newProductServiceForTest(t)

	product := &models.Product{Name: "Orphan", Price: 5.0, Stock: 1, CategoryID: "missing"}
	err := service.CreateProduct(product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	products, err := service.GetAllProducts("")
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_CategoryFilter(t *testing.T) {
	service, categoryRepo := newProductServiceForTest(t)

	electronics := &models.Category{Name: "Electronics"}
	books := &models.Category{Name: "Books"}
	assert.NoError(t, categoryRepo.Create(electronics))
	assert.NoError(t, categoryRepo.Create(books))

	assert.NoError(t, service.CreateProduct(&models.Product{Name: "Headphones", Price: 49.9, Stock: 3, CategoryID: electronics.ID}))
	assert.NoError(t, service.CreateProduct(&models.Product{Name: "Keyboard", Price: 89.9, Stock: 2, CategoryID: electronics.ID}))
	assert.NoError(t, service.CreateProduct(&models.Product{Name: "Novel", Price: 12.0, Stock: 7, CategoryID: books.ID}))

	all, err := service.GetAllProducts("")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// "all" behaves like no filter
	all, err = service.GetAllProducts("all")
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := service.GetAllProducts(electronics.ID)
	assert.NoError(t, err)
	assert.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.Equal(t, electronics.ID, p.CategoryID)
	}

	// A filter on a category nobody uses is an empty list, not an error
	empty, err := service.GetAllProducts("unused-category")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductService_UpdateProduct(t *testing.T) {
	service, categoryRepo := newProductServiceForTest(t)

	category := &models.Category{Name: "Electronics"}
	assert.NoError(t, categoryRepo.Create(category))

	product := &models.Product{Name: "Headphones", Price: 49.9, Stock: 3, CategoryID: category.ID}
	assert.NoError(t, service.CreateProduct(product))

	product.Price = 39.9
	assert.NoError(t, service.UpdateProduct(product))

	got, err := service.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 39.9, got.Price)

	// Moving to an unknown category is rejected
	product.CategoryID = "missing"
	err = service.UpdateProduct(product)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_DeleteProduct(t *testing.T) {
	service, categoryRepo := newProductServiceForTest(t)

	category := &models.Category{Name: "Electronics"}
	assert.NoError(t, categoryRepo.Create(category))

	product := &models.Product{Name: "Headphones", Price: 49.9, Stock: 3, CategoryID: category.ID}
	assert.NoError(t, service.CreateProduct(product))

	assert.NoError(t, service.DeleteProduct(product.ID))

	_, err := service.GetProductByID(product.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = service.DeleteProduct(product.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProductService_CreateCategory_DuplicateName(t *testing.T) {
	service, _ := newProductServiceForTest(t)

	assert.NoError(t, service.CreateCategory(&models.Category{Name: "Electronics"}))
	err := service.CreateCategory(&models.Category{Name: "Electronics"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	categories, err := service.GetAllCategories()
	assert.NoError(t, err)
	assert.Len(t, categories, 1)
}
