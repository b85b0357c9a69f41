package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/oakhavenpractice/intake-backend/internal/dto"
	"github.com/oakhavenpractice/intake-backend/internal/services"
)

type TokenHandler struct {
	tokenService *services.TokenService
}

func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

func (h *TokenHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateTokensRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	issued, err := h.tokenService.GenerateTokens(c.Context(), req.Email)
	if err != nil {
		var genErr *services.TokenGenerationError
		if errors.As(err, &genErr) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to generate tokens",
			})
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Database unavailable",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tokens": issued})
}

// Validate always answers 200; validity is in the body.
func (h *TokenHandler) Validate(c *fiber.Ctx) error {
	return c.JSON(h.tokenService.ValidateToken(c.Params("token")))
}

// MarkUsed retires a token after its questionnaire has been completed.
func (h *TokenHandler) MarkUsed(c *fiber.Ctx) error {
	if err := h.tokenService.MarkTokenUsed(c.Params("token")); err != nil {
		if errors.Is(err, services.ErrTokenNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Token not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(dto.OKResponse{OK: true})
}
