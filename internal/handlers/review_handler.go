package handlers

import (
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
// Listings are public; posting requires authentication.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Post("/", authRequired, h.HandleAddReview)
	reviewRoutes.Get("/product/:id", h.HandleGetProductReviews)
	reviewRoutes.Get("/user/:id", h.HandleGetUserReviews)
}

// AddReviewRequest represents the request body for posting a review.
type AddReviewRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required"`
}

// HandleAddReview appends a review by the session user.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.service.AddReview(req.ProductID, currentUserID(c), req.Rating, req.Comment)
	if err != nil {
		return respondError(c, "Could not add review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleGetProductReviews returns all reviews for a product.
func (h *ReviewHandler) HandleGetProductReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetProductReviews(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve product reviews", err)
	}
	return c.JSON(reviews)
}

// HandleGetUserReviews returns all reviews written by a user.
func (h *ReviewHandler) HandleGetUserReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetUserReviews(c.Params("id"))
	if err != nil {
		return respondError(c, "Could not retrieve user reviews", err)
	}
	return c.JSON(reviews)
}
