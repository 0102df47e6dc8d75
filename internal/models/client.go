package models

import "time"

const (
	ClientTypeSingle = "single"
	ClientTypeModule = "module"
)

type Client struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Phone             *string   `json:"phone"`
	Type              string    `json:"type"`
	Price             float64   `json:"price"`
	BlockPrice        float64   `json:"block_price"`
	TotalSessions     int       `json:"total_sessions"`
	RemainingSessions int       `json:"remaining_sessions"`
	Color             string    `json:"color"`
	Note              *string   `json:"note"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SessionRate is the price of one session at the client's current plan.
func (c *Client) SessionRate() float64 {
	switch c.Type {
	case ClientTypeSingle:
		return c.Price
	case ClientTypeModule:
		if c.TotalSessions > 0 {
			return c.BlockPrice / float64(c.TotalSessions)
		}
	}
	return 0
}

// Active reports whether the client can still book sessions: single
// clients always can, module clients only while credits remain.
func (c *Client) Active() bool {
	return c.Type == ClientTypeSingle || c.RemainingSessions > 0
}

type ClientStatistics struct {
	TotalSessions int        `json:"total_sessions"`
	TotalAmount   float64    `json:"total_amount"`
	LastSession   *time.Time `json:"last_session"`
}
