package handlers

import (
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// WishlistHandler handles HTTP requests for the authenticated user's
// wishlist.
type WishlistHandler struct {
	service  *services.WishlistService
	validate *validator.Validate
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	wishlistRoutes := router.Group("/wishlists", authRequired)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddItem)
	wishlistRoutes.Delete("/:productId", h.HandleRemoveItem)
}

// HandleGetWishlist returns the session user's wishlist, or an empty shell.
func (h *WishlistHandler) HandleGetWishlist(c *fiber.Ctx) error {
	wishlist, err := h.service.GetWishlist(currentUserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve wishlist", err)
	}
	return c.JSON(wishlist)
}

// AddToWishlistRequest represents the request body for saving a product.
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// HandleAddItem saves a product to the wishlist. A duplicate add is
// rejected with 409, not silently ignored.
func (h *WishlistHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	wishlist, err := h.service.AddItem(currentUserID(c), req.ProductID)
	if err != nil {
		return respondError(c, "Could not add product to wishlist", err)
	}
	return c.Status(fiber.StatusCreated).JSON(wishlist)
}

// HandleRemoveItem removes a product from the wishlist. Idempotent.
func (h *WishlistHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if err := h.service.RemoveItem(currentUserID(c), productID); err != nil {
		return respondError(c, "Could not remove product from wishlist", err)
	}
	return c.JSON(fiber.Map{
		"message": "Product removed from wishlist",
	})
}
