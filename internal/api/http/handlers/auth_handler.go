package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/backoffice-api/internal/api/dto"
	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/service"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	result, err := h.auth.Register(c.UserContext(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(authPayload(result))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(authPayload(result))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

func authPayload(result *service.AuthResult) fiber.Map {
	return fiber.Map{
		"data": fiber.Map{
			"account": accountResponse(result.Account),
			"auth": dto.AuthResponse{
				Token:     result.Token,
				TokenType: "Bearer",
				ExpiresAt: result.ExpiresAt,
			},
		},
	}
}

func accountResponse(account *domain.Document[domain.Account]) dto.AccountResponse {
	return dto.AccountResponse{
		Username:    account.Body.Username,
		DisplayName: account.Body.DisplayName,
		CreatedAt:   account.CreatedAt,
	}
}
