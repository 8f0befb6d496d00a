package services_test

import (
	"testing"

	"gerai/internal/apperrors"
	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/stretchr/testify/assert"
)

type orderTestEnv struct {
	orderService *services.OrderService
	cartService  *services.CartService
	productRepo  *repositories.MockProductRepository
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository(productRepo)
	orderRepo := repositories.NewMockOrderRepository(productRepo, cartRepo)

	assert.NoError(t, productRepo.Create(&models.Product{ID: "prod-a", Name: "Product A", Price: 10.0, Stock: 10}))
	assert.NoError(t, productRepo.Create(&models.Product{ID: "prod-b", Name: "Product B", Price: 2.5, Stock: 3}))

	return &orderTestEnv{
		orderService: services.NewOrderService(orderRepo, nil),
		cartService:  services.NewCartService(cartRepo, productRepo),
		productRepo:  productRepo,
	}
}

func TestOrderService_PlaceOrder_EmptyRejected(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.orderService.PlaceOrder("user-1", nil, "card")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	// Nothing was recorded.
	orders, err := env.orderService.GetUserOrders("user-1")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_InvalidQuantityRejected(t *testing.T) {
	env := newOrderTestEnv(t)

	items := []models.OrderItem{{ProductID: "prod-a", Quantity: 0}}
	_, err := env.orderService.PlaceOrder("user-1", items, "card")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestOrderService_PlaceOrder_EndToEnd(t *testing.T) {
	env := newOrderTestEnv(t)

	// Cart with 2 units of a 10.00 product.
	_, err := env.cartService.AddItem("user-1", "prod-a", 2)
	assert.NoError(t, err)

	items := []models.OrderItem{{ProductID: "prod-a", Quantity: 2}}
	order, err := env.orderService.PlaceOrder("user-1", items, "card")
	assert.NoError(t, err)

	// Total is recomputed from catalog prices, not taken from the client.
	assert.Equal(t, 20.0, order.TotalPrice)
	assert.Equal(t, 10.0, order.Items[0].Price)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.ID)

	// Stock went down by the ordered quantity.
	product, err := env.productRepo.GetByID("prod-a")
	assert.NoError(t, err)
	assert.Equal(t, 8, product.Stock)

	// And the cart is empty.
	cart, err := env.cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	// The order shows up in the user's history.
	orders, err := env.orderService.GetUserOrders("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.cartService.AddItem("user-1", "prod-b", 1)
	assert.NoError(t, err)

	// prod-b only has 3 in stock; the whole order is rejected.
	items := []models.OrderItem{
		{ProductID: "prod-a", Quantity: 1},
		{ProductID: "prod-b", Quantity: 5},
	}
	_, err = env.orderService.PlaceOrder("user-1", items, "card")
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	// No partial decrement happened.
	productA, err := env.productRepo.GetByID("prod-a")
	assert.NoError(t, err)
	assert.Equal(t, 10, productA.Stock)
	productB, err := env.productRepo.GetByID("prod-b")
	assert.NoError(t, err)
	assert.Equal(t, 3, productB.Stock)

	// The cart is still intact and no order was recorded.
	cart, err := env.cartService.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	orders, err := env.orderService.GetUserOrders("user-1")
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_PlaceOrder_UnknownProduct(t *testing.T) {
	env := newOrderTestEnv(t)

	items := []models.OrderItem{{ProductID: "nope", Quantity: 1}}
	_, err := env.orderService.PlaceOrder("user-1", items, "card")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderService_GetOrderByID_Ownership(t *testing.T) {
	env := newOrderTestEnv(t)

	items := []models.OrderItem{{ProductID: "prod-a", Quantity: 1}}
	order, err := env.orderService.PlaceOrder("user-1", items, "cod")
	assert.NoError(t, err)

	// The owner can read it.
	got, err := env.orderService.GetOrderByID(order.ID, "user-1", models.RoleCustomer)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Another customer cannot.
	_, err = env.orderService.GetOrderByID(order.ID, "user-2", models.RoleCustomer)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// An admin can.
	_, err = env.orderService.GetOrderByID(order.ID, "admin-1", models.RoleAdmin)
	assert.NoError(t, err)
}
