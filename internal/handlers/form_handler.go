package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oakhavenpractice/intake-backend/internal/dto"
	"github.com/oakhavenpractice/intake-backend/internal/services"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(formService *services.FormService) *FormHandler {
	return &FormHandler{formService: formService}
}

func (h *FormHandler) Send(c *fiber.Ctx) error {
	var req dto.SendFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	res, err := h.formService.SendFormInvite(req.Email, req.FormType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownFormType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrClientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrActiveTokenExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SendFormResponse{
		FormID:    res.Form.ID.String(),
		FormType:  res.Form.FormType,
		ExpiresAt: res.Form.TokenExpiresAt.UTC().Format(time.RFC3339),
		EmailSent: res.EmailSent,
	})
}

func (h *FormHandler) Get(c *fiber.Ctx) error {
	q, err := h.formService.GetQuestionnaire(c.Params("token"))
	if err != nil {
		return formTokenError(c, err)
	}
	return c.JSON(q)
}

func (h *FormHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFormRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Answers == nil {
		req.Answers = map[string]any{}
	}

	form, err := h.formService.SubmitForm(c.Params("token"), req.Answers)
	if err != nil {
		return formTokenError(c, err)
	}

	result := dto.FormResultResponse{
		FormID:     form.ID.String(),
		FormType:   form.FormType,
		TotalScore: form.TotalScore,
		Scores:     []byte(form.Scores),
	}
	if form.SubmittedAt != nil {
		result.SubmittedAt = form.SubmittedAt.UTC().Format(time.RFC3339)
	}
	return c.JSON(result)
}

// formTokenError maps the form token failure modes onto status codes. A
// lookup miss is 404; spent, revoked, and expired tokens are 410.
func formTokenError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrFormNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrFormSubmitted), errors.Is(err, services.ErrFormInactive):
		return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	case errors.Is(err, services.ErrFormExpired):
		return c.Status(fiber.StatusGone).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
