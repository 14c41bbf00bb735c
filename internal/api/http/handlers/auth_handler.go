package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const minPasswordLength = 6

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if req.Username == "" {
		details["username"] = "Username is required"
	}
	if req.FirstName == "" {
		details["firstName"] = "First name is required"
	}
	if req.LastName == "" {
		details["lastName"] = "Last Name is required"
	}
	if !strings.Contains(req.Email, "@") {
		details["email"] = "Invalid email format"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "Password must be at least 6 characters long"
	}
	if req.Role == "" {
		details["role"] = "Role is required"
	}
	if len(details) > 0 {
		return errorutil.NewValidationError("invalid sign-up payload", details)
	}

	user, pair, err := h.auth.SignUp(c.Context(), service.SignUpInput{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		RoleID:    req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.NewAuthResponse(pair),
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return errorutil.NewValidationError("username and password required", nil)
	}

	user, pair, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.NewAuthResponse(pair),
		},
	})
}

// ForgotPassword handles POST /auth/forgot-password. The token travels to the
// user via the notification collaborator, not the response body.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if !strings.Contains(req.Email, "@") {
		return errorutil.NewValidationError("invalid email format", map[string]any{"email": "Invalid email format"})
	}

	if _, err := h.auth.ForgotPassword(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset token sent via email."})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return errorutil.NewValidationError("user id required", map[string]any{"userId": "User ID is required"})
	}
	if len(req.Password) < minPasswordLength {
		return errorutil.NewValidationError("invalid password", map[string]any{"password": "Password must be at least 6 characters long"})
	}

	if err := h.auth.ResetPassword(c.Context(), req.UserID, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password reset successful."})
}
