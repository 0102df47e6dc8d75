package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	service clientApplicationService
}

type clientApplicationService interface {
	AddClient(ctx context.Context, input services.ClientInput) (*models.Client, error)
	UpdateClient(ctx context.Context, clientID int64, input services.ClientInput) (*models.Client, error)
	DeleteClient(ctx context.Context, clientID int64) error
	AdjustCredits(ctx context.Context, clientID int64, delta int) (*models.Client, error)
	ListFiltered(ctx context.Context, filter services.ClientFilter) ([]models.Client, error)
	History(ctx context.Context, clientID int64) ([]models.HistoryEntry, error)
	Statistics(ctx context.Context, clientID int64) (*models.ClientStatistics, error)
}

func NewClientHandler(service clientApplicationService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	Name              string  `json:"name"`
	Phone             *string `json:"phone"`
	Type              string  `json:"type"`
	Price             float64 `json:"price"`
	BlockPrice        float64 `json:"block_price"`
	TotalSessions     int     `json:"total_sessions"`
	RemainingSessions int     `json:"remaining_sessions"`
	Color             string  `json:"color"`
	Note              *string `json:"note"`
}

type adjustCreditsRequest struct {
	Delta int `json:"delta"`
}

func (r clientRequest) toInput() services.ClientInput {
	return services.ClientInput{
		Name:              strings.TrimSpace(r.Name),
		Phone:             r.Phone,
		Type:              strings.TrimSpace(r.Type),
		Price:             r.Price,
		BlockPrice:        r.BlockPrice,
		TotalSessions:     r.TotalSessions,
		RemainingSessions: r.RemainingSessions,
		Color:             strings.TrimSpace(r.Color),
		Note:              r.Note,
	}
}

func (h *ClientHandler) AddClient(c *fiber.Ctx) error {
	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	client, err := h.service.AddClient(c.Context(), req.toInput())
	if err != nil {
		return mapClientError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req clientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	client, err := h.service.UpdateClient(c.Context(), clientID, req.toInput())
	if err != nil {
		return mapClientError(c, err)
	}
	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	if err := h.service.DeleteClient(c.Context(), clientID); err != nil {
		return mapClientError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ClientHandler) AdjustCredits(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	var req adjustCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Delta == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "delta must not be 0"})
	}

	client, err := h.service.AdjustCredits(c.Context(), clientID, req.Delta)
	if err != nil {
		return mapClientError(c, err)
	}
	return c.JSON(fiber.Map{"client": client})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	status := strings.TrimSpace(c.Query("status"))
	if status != "" && status != "active" && status != "inactive" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be active or inactive"})
	}

	clients, err := h.service.ListFiltered(c.Context(), services.ClientFilter{
		Name:   strings.TrimSpace(c.Query("name")),
		Color:  strings.TrimSpace(c.Query("color")),
		Type:   strings.TrimSpace(c.Query("type")),
		Status: status,
	})
	if err != nil {
		return mapClientError(c, err)
	}
	return c.JSON(fiber.Map{"clients": clients})
}

func (h *ClientHandler) GetHistory(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	entries, err := h.service.History(c.Context(), clientID)
	if err != nil {
		return mapClientError(c, err)
	}
	return c.JSON(fiber.Map{"history": entries})
}

func (h *ClientHandler) GetStatistics(c *fiber.Ctx) error {
	clientID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid client id"})
	}

	stats, err := h.service.Statistics(c.Context(), clientID)
	if err != nil {
		return mapClientError(c, err)
	}
	return c.JSON(fiber.Map{"statistics": stats})
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func mapClientError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Client not found"})
	case errors.Is(err, services.ErrDuplicateName):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A client with this name already exists"})
	case errors.Is(err, services.ErrNegativeBalance):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Credit balance cannot go below zero"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process client request"})
	}
}
