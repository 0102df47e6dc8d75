package services

import (
	"context"
	"errors"
	"strings"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/store"
)

type sessionPurger interface {
	RemoveClientSessions(ctx context.Context, clientID int64) error
}

type ClientService struct {
	clients  store.ClientStore
	history  store.HistoryStore
	credits  *CreditBook
	sessions sessionPurger
}

func NewClientService(
	clients store.ClientStore,
	history store.HistoryStore,
	credits *CreditBook,
	sessions sessionPurger,
) *ClientService {
	return &ClientService{
		clients:  clients,
		history:  history,
		credits:  credits,
		sessions: sessions,
	}
}

type ClientInput struct {
	Name              string
	Phone             *string
	Type              string
	Price             float64
	BlockPrice        float64
	TotalSessions     int
	RemainingSessions int
	Color             string
	Note              *string
}

type ClientFilter struct {
	Name   string
	Color  string
	Type   string
	Status string
}

func (s *ClientService) AddClient(ctx context.Context, input ClientInput) (*models.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(ctx, input.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	return s.clients.Add(ctx, clientFromInput(input))
}

func (s *ClientService) UpdateClient(ctx context.Context, clientID int64, input ClientInput) (*models.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateClientInput(input); err != nil {
		return nil, err
	}

	existing, err := s.credits.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(ctx, input.Name, clientID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	updated := clientFromInput(input)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.clients.Update(ctx, updated); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteClient cascades: history entries and booked sessions go first so
// no record is left pointing at a missing client.
func (s *ClientService) DeleteClient(ctx context.Context, clientID int64) error {
	if _, err := s.credits.Get(ctx, clientID); err != nil {
		return err
	}

	entries, err := s.history.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.ClientID != clientID {
			continue
		}
		if err := s.history.Delete(ctx, entry.ID); err != nil {
			return err
		}
	}

	if err := s.sessions.RemoveClientSessions(ctx, clientID); err != nil {
		return err
	}

	return s.clients.Delete(ctx, clientID)
}

func (s *ClientService) AdjustCredits(ctx context.Context, clientID int64, delta int) (*models.Client, error) {
	return s.credits.Adjust(ctx, clientID, delta)
}

func (s *ClientService) ListFiltered(ctx context.Context, filter ClientFilter) ([]models.Client, error) {
	clients, err := s.clients.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	filtered := make([]models.Client, 0, len(clients))
	for _, client := range clients {
		if name != "" && !strings.Contains(strings.ToLower(client.Name), name) {
			continue
		}
		if filter.Color != "" && client.Color != filter.Color {
			continue
		}
		if filter.Type != "" && client.Type != filter.Type {
			continue
		}
		switch filter.Status {
		case "active":
			if !client.Active() {
				continue
			}
		case "inactive":
			if client.Active() {
				continue
			}
		}
		filtered = append(filtered, client)
	}
	return filtered, nil
}

// History returns a client's completed-session log, oldest first.
func (s *ClientService) History(ctx context.Context, clientID int64) ([]models.HistoryEntry, error) {
	if _, err := s.credits.Get(ctx, clientID); err != nil {
		return nil, err
	}

	entries, err := s.history.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	own := make([]models.HistoryEntry, 0)
	for _, entry := range entries {
		if entry.ClientID == clientID {
			own = append(own, entry)
		}
	}
	return own, nil
}

// Statistics folds the history log into lifetime figures, independent of
// the live schedule.
func (s *ClientService) Statistics(ctx context.Context, clientID int64) (*models.ClientStatistics, error) {
	entries, err := s.History(ctx, clientID)
	if err != nil {
		return nil, err
	}

	stats := models.ClientStatistics{TotalSessions: len(entries)}
	for _, entry := range entries {
		stats.TotalAmount += entry.Amount
		if stats.LastSession == nil || entry.Date.After(*stats.LastSession) {
			last := entry.Date
			stats.LastSession = &last
		}
	}
	return &stats, nil
}

func (s *ClientService) nameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	clients, err := s.clients.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, client := range clients {
		if client.ID != excludeID && strings.EqualFold(client.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func validateClientInput(input ClientInput) error {
	if input.Name == "" {
		return ErrInvalidInput
	}
	switch input.Type {
	case models.ClientTypeSingle:
		if input.Price < 0 {
			return ErrInvalidInput
		}
	case models.ClientTypeModule:
		if input.TotalSessions <= 0 || input.BlockPrice < 0 || input.RemainingSessions < 0 {
			return ErrInvalidInput
		}
	default:
		return ErrInvalidInput
	}
	return nil
}

func clientFromInput(input ClientInput) *models.Client {
	client := &models.Client{
		Name:  input.Name,
		Phone: input.Phone,
		Type:  input.Type,
		Color: input.Color,
		Note:  input.Note,
	}
	// Plan fields of the other billing mode are not carried.
	if input.Type == models.ClientTypeSingle {
		client.Price = input.Price
	} else {
		client.BlockPrice = input.BlockPrice
		client.TotalSessions = input.TotalSessions
		client.RemainingSessions = input.RemainingSessions
	}
	return client
}
