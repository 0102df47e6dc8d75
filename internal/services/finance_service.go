package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/pkg/timeutil"
)

type scheduleSnapshotter interface {
	Snapshot(ctx context.Context) ([]models.Training, []models.Client, error)
}

// FinanceService derives read-only reports from a consistent snapshot of
// the schedule. It never mutates anything.
type FinanceService struct {
	schedule scheduleSnapshotter
	now      func() time.Time
}

func NewFinanceService(schedule scheduleSnapshotter) *FinanceService {
	return &FinanceService{schedule: schedule, now: time.Now}
}

func (s *FinanceService) Report(ctx context.Context, period models.Period) (*models.Report, error) {
	trainings, clients, err := s.schedule.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now().Format(timeutil.DateLayout)
	return BuildReport(trainings, clients, period, today), nil
}

func (s *FinanceService) ReportCSV(ctx context.Context, period models.Period) ([]byte, error) {
	report, err := s.Report(ctx, period)
	if err != nil {
		return nil, err
	}
	return ExportCSV(report)
}

// BuildReport folds the session log into the period's financial
// aggregate. Only completed sessions dated inside the period count;
// scheduled and cancelled ones contribute to no figure. The price stored
// at booking time is authoritative so later plan changes cannot rewrite
// history; a zero stored price falls back to the client's current rate.
func BuildReport(trainings []models.Training, clients []models.Client, period models.Period, today string) *models.Report {
	clientsByID := make(map[int64]models.Client, len(clients))
	for _, client := range clients {
		clientsByID[client.ID] = client
	}

	report := &models.Report{
		DailyStats:  make([]models.DailyStat, 0),
		ClientStats: make([]models.ClientStat, 0),
		Operations:  make([]models.Operation, 0),
	}

	daily := make(map[string]*models.DailyStat)
	perClient := make(map[int64]*models.ClientStat)
	todayClients := make(map[int64]struct{})

	for _, training := range trainings {
		if training.Status != models.TrainingStatusCompleted || !period.Contains(training.Date) {
			continue
		}

		client, known := clientsByID[training.ClientID]
		cost := training.Price
		if cost == 0 && known {
			cost = client.SessionRate()
		}

		report.TotalIncome += cost
		report.TotalTrainings++
		clientType := models.ClientTypeSingle
		clientName := "Unknown client"
		remaining := 0
		if known {
			clientType = client.Type
			clientName = client.Name
			if client.Type == models.ClientTypeModule {
				remaining = client.RemainingSessions
			}
		}
		if clientType == models.ClientTypeModule {
			report.ModuleTrainings++
		} else {
			report.SingleTrainings++
		}

		day, ok := daily[training.Date]
		if !ok {
			day = &models.DailyStat{Date: training.Date}
			daily[training.Date] = day
		}
		day.Income += cost
		day.Trainings++

		stat, ok := perClient[training.ClientID]
		if !ok {
			stat = &models.ClientStat{
				ClientID:          training.ClientID,
				ClientName:        clientName,
				RemainingSessions: remaining,
			}
			perClient[training.ClientID] = stat
		}
		stat.TotalIncome += cost
		stat.Trainings++

		report.Operations = append(report.Operations, models.Operation{
			TrainingID:      training.ID,
			Date:            training.Date,
			ClientName:      clientName,
			Type:            clientType,
			DurationMinutes: training.DurationMinutes,
			Cost:            cost,
		})

		if training.Date == today {
			todayClients[training.ClientID] = struct{}{}
		}
	}

	if report.TotalTrainings > 0 {
		report.AverageCheck = report.TotalIncome / float64(report.TotalTrainings)
	}
	report.ClientsToday = len(todayClients)

	for _, day := range daily {
		report.DailyStats = append(report.DailyStats, *day)
	}
	sort.Slice(report.DailyStats, func(i, j int) bool {
		return report.DailyStats[i].Date < report.DailyStats[j].Date
	})

	for _, stat := range perClient {
		report.ClientStats = append(report.ClientStats, *stat)
	}
	sort.Slice(report.ClientStats, func(i, j int) bool {
		return report.ClientStats[i].ClientID < report.ClientStats[j].ClientID
	})

	sort.SliceStable(report.Operations, func(i, j int) bool {
		return report.Operations[i].Date > report.Operations[j].Date
	})

	return report
}

// ExportCSV renders the report's operation log as CSV, one row per
// counted session, most recent first.
func ExportCSV(report *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Date", "Client", "Type", "Duration", "Cost"}); err != nil {
		return nil, err
	}
	for _, op := range report.Operations {
		record := []string{
			op.Date,
			op.ClientName,
			op.Type,
			strconv.Itoa(op.DurationMinutes),
			strconv.FormatFloat(op.Cost, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
