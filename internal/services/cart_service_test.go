package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func newCartServiceForTest() (*services.CartService, *repositories.MockProductRepository) {
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository(productRepo)
	return services.NewCartService(cartRepo, productRepo), productRepo
}

func seedCartTestProduct(t *testing.T, repo *repositories.MockProductRepository, id string, price float64) {
	t.Helper()
	err := repo.Create(&models.Product{ID: id, Name: "Product " + id, Price: price, Stock: 100})
	assert.NoError(t, err)
}

func TestCartService_GetCart_EmptyShell(t *testing.T) {
	service, _ := newCartServiceForTest()

	// A user who never added anything gets an empty cart, not an error.
	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice())
}

func TestCartService_AddItem_MergesQuantity(t *testing.T) {
	service, productRepo := newCartServiceForTest()
	seedCartTestProduct(t, productRepo, "prod-1", 10.0)

	cart, err := service.AddItem("user-1", "prod-1", 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Adding the same product again merges into one line.
	cart, err = service.AddItem("user-1", "prod-1", 3)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.TotalPrice())
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	service, _ := newCartServiceForTest()

	_, err := service.AddItem("user-1", "nope", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_AddItem_InvalidQuantity(t *testing.T) {
	service, productRepo := newCartServiceForTest()
	seedCartTestProduct(t, productRepo, "prod-1", 10.0)

	_, err := service.AddItem("user-1", "prod-1", 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = service.AddItem("user-1", "prod-1", -2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestCartService_RemoveItem(t *testing.T) {
	service, productRepo := newCartServiceForTest()
	seedCartTestProduct(t, productRepo, "prod-1", 10.0)
	seedCartTestProduct(t, productRepo, "prod-2", 5.0)

	_, err := service.AddItem("user-1", "prod-1", 4)
	assert.NoError(t, err)

	// Removing deletes the whole line regardless of quantity.
	cart, err := service.RemoveItem("user-1", "prod-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing a line that is not in the cart is a no-op.
	cart, err = service.RemoveItem("user-1", "prod-2")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing from a user who has no cart at all is NotFound.
	_, err = service.RemoveItem("user-2", "prod-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_SetItemQuantity(t *testing.T) {
	service, productRepo := newCartServiceForTest()
	seedCartTestProduct(t, productRepo, "prod-1", 10.0)

	_, err := service.AddItem("user-1", "prod-1", 2)
	assert.NoError(t, err)

	cart, err := service.SetItemQuantity("user-1", "prod-1", 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Below 1 is rejected, never clamped; the line keeps its quantity.
	_, err = service.SetItemQuantity("user-1", "prod-1", 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	cart, err = service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)

	// Setting a line that does not exist is NotFound.
	_, err = service.SetItemQuantity("user-1", "prod-99", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// As is setting on a missing cart.
	_, err = service.SetItemQuantity("user-2", "prod-1", 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	service, productRepo := newCartServiceForTest()
	seedCartTestProduct(t, productRepo, "prod-1", 10.0)

	_, err := service.AddItem("user-1", "prod-1", 2)
	assert.NoError(t, err)

	err = service.ClearCart("user-1")
	assert.NoError(t, err)

	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a cart that never existed is NotFound.
	err = service.ClearCart("user-2")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_ConcurrentAddsConverge(t *testing.T) {
	service, productRepo := newCartServiceForTest()
	seedCartTestProduct(t, productRepo, "prod-1", 10.0)

	// N concurrent unit adds on a fresh cart must all be counted.
	const n = 50
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := service.AddItem("user-1", "prod-1", 1)
			return err
		})
	}
	assert.NoError(t, g.Wait())

	cart, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, n, cart.Items[0].Quantity)
}
