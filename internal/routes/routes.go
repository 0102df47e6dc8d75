package routes

import (
	"context"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/config"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/handlers"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/repository"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires storage, services and handlers in one pass:
// store handles first, then the ledger and the scheduler against them,
// then a single data load before the routes go live.
func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	clientRepo := repository.NewClientRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	credits := services.NewCreditBook(clientRepo)
	grid := services.ScheduleGrid{
		DayStartMinutes: cfg.ScheduleDayStart,
		DayEndMinutes:   cfg.ScheduleDayEnd,
		SlotMinutes:     cfg.SlotMinutes,
	}
	scheduleService := services.NewScheduleService(trainingRepo, historyRepo, credits, grid)
	if err := scheduleService.Load(context.Background()); err != nil {
		return err
	}
	clientService := services.NewClientService(clientRepo, historyRepo, credits, scheduleService)
	financeService := services.NewFinanceService(scheduleService)

	clientHandler := handlers.NewClientHandler(clientService)
	trainingHandler := handlers.NewTrainingHandler(scheduleService)
	reportHandler := handlers.NewReportHandler(financeService)

	api := app.Group("/api/v1")

	clients := api.Group("/clients")
	clients.Get("", clientHandler.ListClients)
	clients.Post("", clientHandler.AddClient)
	clients.Put("/:id", clientHandler.UpdateClient)
	clients.Delete("/:id", clientHandler.DeleteClient)
	clients.Post("/:id/credits", clientHandler.AdjustCredits)
	clients.Get("/:id/history", clientHandler.GetHistory)
	clients.Get("/:id/statistics", clientHandler.GetStatistics)

	trainings := api.Group("/trainings")
	trainings.Get("", trainingHandler.ListTrainings)
	trainings.Get("/availability", trainingHandler.CheckAvailability)
	trainings.Post("", trainingHandler.BookTraining)
	trainings.Put("/:id", trainingHandler.RescheduleTraining)
	trainings.Delete("/:id", trainingHandler.CancelTraining)
	trainings.Post("/:id/complete", trainingHandler.CompleteTraining)

	reports := api.Group("/reports")
	reports.Get("", reportHandler.GetReport)
	reports.Get("/export", reportHandler.ExportReport)

	return nil
}
