package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/pkg/timeutil"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service financeApplicationService
}

type financeApplicationService interface {
	Report(ctx context.Context, period models.Period) (*models.Report, error)
	ReportCSV(ctx context.Context, period models.Period) ([]byte, error)
}

func NewReportHandler(service financeApplicationService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Report(c.Context(), period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return c.JSON(fiber.Map{"report": report, "period": period})
}

func (h *ReportHandler) ExportReport(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := h.service.ReportCSV(c.Context(), period)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export report"})
	}

	filename := "report_" + period.Start.Format(timeutil.DateLayout) + "_" + period.End.Format(timeutil.DateLayout) + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func parsePeriod(c *fiber.Ctx) (models.Period, error) {
	start, err := timeutil.ParseDate(c.Query("start"))
	if err != nil {
		return models.Period{}, errors.New("start must be a valid date")
	}
	end, err := timeutil.ParseDate(c.Query("end"))
	if err != nil {
		return models.Period{}, errors.New("end must be a valid date")
	}
	if end.Before(start) {
		return models.Period{}, errors.New("end must not precede start")
	}

	kind := strings.TrimSpace(c.Query("kind", models.PeriodDay))
	switch kind {
	case models.PeriodDay, models.PeriodWeek, models.PeriodMonth:
	default:
		return models.Period{}, errors.New("kind must be day, week or month")
	}

	return models.Period{Start: start, End: end, Kind: kind}, nil
}
