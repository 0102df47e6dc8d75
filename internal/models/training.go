package models

import "time"

const (
	TrainingStatusScheduled = "scheduled"
	TrainingStatusCompleted = "completed"
	TrainingStatusCancelled = "cancelled"
)

// Training is one booked slot on the shared calendar. Date and StartTime
// keep the wire format of the scheduling grid ("2006-01-02" / "15:04");
// Price is frozen at booking time so later plan changes do not rewrite
// historical figures.
type Training struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	Note            *string   `json:"note"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HistoryEntry is one append-only record of a delivered session, written
// when a training completes and kept independent of the live schedule.
type HistoryEntry struct {
	ID              int64     `json:"id"`
	ClientID        int64     `json:"client_id"`
	Date            time.Time `json:"date"`
	Amount          float64   `json:"amount"`
	DurationMinutes int       `json:"duration_minutes"`
}
