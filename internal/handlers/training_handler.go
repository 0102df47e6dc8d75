package handlers

import (
	"context"
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TrainingHandler struct {
	service scheduleApplicationService
}

type scheduleApplicationService interface {
	BookSession(ctx context.Context, input services.BookingInput) (*models.Training, error)
	RescheduleSession(ctx context.Context, input services.RescheduleInput) (*models.Training, error)
	CancelSession(ctx context.Context, sessionID int64) error
	CompleteSession(ctx context.Context, sessionID int64) (*models.Training, error)
	CheckAvailability(input services.BookingInput, excludeID int64) (bool, error)
	SessionsOn(date string) iter.Seq[models.Training]
}

func NewTrainingHandler(service scheduleApplicationService) *TrainingHandler {
	return &TrainingHandler{service: service}
}

type trainingRequest struct {
	ClientID        int64    `json:"client_id"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price"`
	Note            *string  `json:"note"`
}

func (r trainingRequest) toInput() services.BookingInput {
	return services.BookingInput{
		ClientID:        r.ClientID,
		Date:            strings.TrimSpace(r.Date),
		StartTime:       strings.TrimSpace(r.StartTime),
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Note:            r.Note,
	}
}

func (h *TrainingHandler) BookTraining(c *fiber.Ctx) error {
	var req trainingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ClientID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "client_id is required"})
	}
	if req.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration_minutes must be greater than 0"})
	}

	training, err := h.service.BookSession(c.Context(), req.toInput())
	if err != nil {
		return mapTrainingError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"training": training})
}

func (h *TrainingHandler) RescheduleTraining(c *fiber.Ctx) error {
	trainingID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training id"})
	}

	var req trainingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	training, err := h.service.RescheduleSession(c.Context(), services.RescheduleInput{
		ID:           trainingID,
		BookingInput: req.toInput(),
	})
	if err != nil {
		return mapTrainingError(c, err)
	}
	return c.JSON(fiber.Map{"training": training})
}

func (h *TrainingHandler) CancelTraining(c *fiber.Ctx) error {
	trainingID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training id"})
	}

	if err := h.service.CancelSession(c.Context(), trainingID); err != nil {
		return mapTrainingError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TrainingHandler) CompleteTraining(c *fiber.Ctx) error {
	trainingID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid training id"})
	}

	training, err := h.service.CompleteSession(c.Context(), trainingID)
	if err != nil {
		return mapTrainingError(c, err)
	}
	return c.JSON(fiber.Map{"training": training})
}

func (h *TrainingHandler) ListTrainings(c *fiber.Ctx) error {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date query parameter is required"})
	}

	trainings := make([]models.Training, 0)
	for training := range h.service.SessionsOn(date) {
		trainings = append(trainings, training)
	}
	return c.JSON(fiber.Map{"trainings": trainings})
}

func (h *TrainingHandler) CheckAvailability(c *fiber.Ctx) error {
	duration, err := strconv.Atoi(c.Query("duration_minutes", "60"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration_minutes must be a number"})
	}
	excludeID, _ := strconv.ParseInt(c.Query("exclude_id", "0"), 10, 64)

	available, err := h.service.CheckAvailability(services.BookingInput{
		Date:            strings.TrimSpace(c.Query("date")),
		StartTime:       strings.TrimSpace(c.Query("start_time")),
		DurationMinutes: duration,
	}, excludeID)
	if err != nil {
		return mapTrainingError(c, err)
	}
	return c.JSON(fiber.Map{"available": available})
}

func mapTrainingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Training not found"})
	case errors.Is(err, services.ErrSlotTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Requested time overlaps another session"})
	case errors.Is(err, services.ErrNoCreditsRemaining):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Client has no sessions left in the block"})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrPartialFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Operation partially applied, manual reconciliation required"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process training request"})
	}
}
