package models

import "time"

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Period is an inclusive date range used to filter sessions for
// reporting. Kind is informational for the caller; only the bounds
// affect which sessions are counted.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  string    `json:"kind"`
}

// Contains reports whether a calendar date ("2006-01-02") falls within
// the period bounds.
func (p Period) Contains(date string) bool {
	start := p.Start.Format("2006-01-02")
	end := p.End.Format("2006-01-02")
	return date >= start && date <= end
}

type DailyStat struct {
	Date      string  `json:"date"`
	Income    float64 `json:"income"`
	Trainings int     `json:"trainings"`
}

type ClientStat struct {
	ClientID          int64   `json:"client_id"`
	ClientName        string  `json:"client_name"`
	TotalIncome       float64 `json:"total_income"`
	Trainings         int     `json:"trainings"`
	RemainingSessions int     `json:"remaining_sessions"`
}

type Operation struct {
	TrainingID      int64   `json:"training_id"`
	Date            string  `json:"date"`
	ClientName      string  `json:"client_name"`
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration_minutes"`
	Cost            float64 `json:"cost"`
}

// Report is the read-only financial aggregate over one period. Only
// completed sessions inside the period contribute to any figure.
type Report struct {
	TotalIncome     float64      `json:"total_income"`
	TotalTrainings  int          `json:"total_trainings"`
	SingleTrainings int          `json:"single_trainings"`
	ModuleTrainings int          `json:"module_trainings"`
	AverageCheck    float64      `json:"average_check"`
	ClientsToday    int          `json:"clients_today"`
	DailyStats      []DailyStat  `json:"daily_stats"`
	ClientStats     []ClientStat `json:"client_stats"`
	Operations      []Operation  `json:"operations"`
}
