package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oakhavenpractice/intake-backend/internal/dto"
	"github.com/oakhavenpractice/intake-backend/internal/models"
	"github.com/oakhavenpractice/intake-backend/internal/services"
)

type ClientHandler struct {
	clientService *services.ClientService
	formService   *services.FormService
}

func NewClientHandler(clientService *services.ClientService, formService *services.FormService) *ClientHandler {
	return &ClientHandler{clientService: clientService, formService: formService}
}

func (h *ClientHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid date of birth, expected YYYY-MM-DD",
			})
		}
		dob = &parsed
	}

	client, err := h.clientService.Signup(req.Email, req.Name, dob)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewClientResponse(client))
}

func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.clientService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	resp := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		resp = append(resp, dto.NewClientResponse(&clients[i]))
	}
	return c.JSON(resp)
}

func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	client, err := h.clientService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.NewClientResponse(client))
}

// Status reports per-questionnaire progress. Unknown ids are a 200 with
// exists:false, not a 404.
func (h *ClientHandler) Status(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	status, err := h.formService.GetClientFormsStatus(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(status)
}

func (h *ClientHandler) Results(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	forms, err := h.formService.ClientResults(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	resp := make([]dto.FormResultResponse, 0, len(forms))
	for i := range forms {
		form := &forms[i]
		result := dto.FormResultResponse{
			FormID:     form.ID.String(),
			FormType:   form.FormType,
			TotalScore: form.TotalScore,
			Scores:     []byte(form.Scores),
		}
		if form.SubmittedAt != nil {
			result.SubmittedAt = form.SubmittedAt.UTC().Format(time.RFC3339)
		}
		matrix, err := h.formService.SMISummaryMatrix(form)
		if err != nil {
			slog.Error("summary matrix unavailable", "form_id", form.ID.String(), "error", err)
		} else if matrix != nil {
			result.Matrix = matrix
		}
		resp = append(resp, result)
	}
	return c.JSON(resp)
}

func (h *ClientHandler) Activate(c *fiber.Ctx) error {
	return h.setStatus(c, h.clientService.Activate)
}

func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	return h.setStatus(c, h.clientService.Deactivate)
}

func (h *ClientHandler) setStatus(c *fiber.Ctx, change func(uuid.UUID) (*models.Client, error)) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid client id",
		})
	}

	client, err := change(id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.OKResponse{OK: true, Data: dto.NewClientResponse(client)})
}
