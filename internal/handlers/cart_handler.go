package handlers

import (
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. All cart
// routes require authentication; the cart is always the session user's.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/carts", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Post("/remove", h.HandleRemoveItem)
	cartRoutes.Put("/update-quantity", h.HandleUpdateQuantity)
	cartRoutes.Post("/clear", h.HandleClearCart)
}

// HandleGetCart returns the session user's cart with the transiently
// computed total. A user without a cart gets an empty shell.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(currentUserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve cart", err)
	}
	return c.JSON(fiber.Map{
		"cart":        cart,
		"total_price": cart.TotalPrice(),
	})
}

// AddToCartRequest represents the request body for adding a cart line.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// HandleAddItem adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.AddItem(currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, "Could not add product to cart", err)
	}
	return c.JSON(fiber.Map{
		"cart":        cart,
		"total_price": cart.TotalPrice(),
	})
}

// RemoveFromCartRequest represents the request body for removing a line.
type RemoveFromCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// HandleRemoveItem deletes a line entirely, regardless of its quantity.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var req RemoveFromCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.RemoveItem(currentUserID(c), req.ProductID)
	if err != nil {
		return respondError(c, "Could not remove product from cart", err)
	}
	return c.JSON(fiber.Map{
		"cart":        cart,
		"total_price": cart.TotalPrice(),
	})
}

// UpdateQuantityRequest represents the request body for setting a line's
// exact quantity.
type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// HandleUpdateQuantity sets a line's quantity to the exact value.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	cart, err := h.service.SetItemQuantity(currentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, "Could not update cart quantity", err)
	}
	return c.JSON(fiber.Map{
		"cart":        cart,
		"total_price": cart.TotalPrice(),
	})
}

// HandleClearCart empties the session user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(currentUserID(c)); err != nil {
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared successfully",
	})
}
