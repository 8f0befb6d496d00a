package handlers

import (
	"gerai/internal/models"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration, login, profile and
// the password-reset flow.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Profile
// routes require a session; everything else is public.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Post("/request-reset", h.HandleRequestReset)
	userRoutes.Post("/verify-reset", h.HandleVerifyReset)
	userRoutes.Post("/reset-password", h.HandleResetPassword)
	userRoutes.Get("/me", authRequired, h.HandleGetMe)
	userRoutes.Put("/me", authRequired, h.HandleUpdateMe)
	userRoutes.Delete("/me", authRequired, h.HandleDeleteMe)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Surname  string `json:"surname" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.RegisterUser(&user); err != nil {
		return respondError(c, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		return respondError(c, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// HandleGetMe returns the session user's profile.
func (h *AuthHandler) HandleGetMe(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(currentUserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve profile", err)
	}
	return c.JSON(user)
}

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"omitempty,min=2,max=100"`
	Surname string `json:"surname" validate:"omitempty,min=2,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// HandleUpdateMe updates the session user's profile.
func (h *AuthHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.authService.UpdateProfile(currentUserID(c), req.Name, req.Surname, req.Email)
	if err != nil {
		return respondError(c, "Could not update profile", err)
	}
	return c.JSON(user)
}

// HandleDeleteMe deletes the session user's account.
func (h *AuthHandler) HandleDeleteMe(c *fiber.Ctx) error {
	if err := h.authService.DeleteAccount(currentUserID(c)); err != nil {
		return respondError(c, "Could not delete account", err)
	}
	return c.JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}

// RequestResetRequest represents the request body for starting a password
// reset.
type RequestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleRequestReset issues a reset token. The response is identical for
// known and unknown emails.
func (h *AuthHandler) HandleRequestReset(c *fiber.Ctx) error {
	var req RequestResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		return respondError(c, "Could not process reset request", err)
	}
	return c.JSON(fiber.Map{
		"message": "If the email is registered, a reset link has been sent",
	})
}

// VerifyResetRequest represents the request body for checking a reset
// token.
type VerifyResetRequest struct {
	Token string `json:"token" validate:"required,uuid"`
}

// HandleVerifyReset checks that a reset token is valid and unexpired.
func (h *AuthHandler) HandleVerifyReset(c *fiber.Ctx) error {
	var req VerifyResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if _, err := h.authService.VerifyResetToken(req.Token); err != nil {
		return respondError(c, "Invalid reset token", err)
	}
	return c.JSON(fiber.Map{
		"message": "Reset token is valid",
	})
}

// ResetPasswordRequest represents the request body for completing a
// password reset.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,uuid"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// HandleResetPassword sets a new password using a valid reset token.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		return respondError(c, "Could not reset password", err)
	}
	return c.JSON(fiber.Map{
		"message": "Password reset successfully",
	})
}
