package services

import (
	"context"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/store"
)

// In-memory stores mirroring the record-store contract: Add assigns an
// id, Update fails with store.ErrNotFound, Delete is a no-op on absent
// ids. The err fields inject failures for the rollback paths.

type memClientStore struct {
	seq     int64
	clients []models.Client

	addErr    error
	getAllErr error
	updateErr error
	deleteErr error
}

func (s *memClientStore) Add(_ context.Context, client *models.Client) (*models.Client, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.seq++
	created := *client
	created.ID = s.seq
	s.clients = append(s.clients, created)
	return &created, nil
}

func (s *memClientStore) GetAll(_ context.Context) ([]models.Client, error) {
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out, nil
}

func (s *memClientStore) Update(_ context.Context, client *models.Client) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.clients {
		if s.clients[i].ID == client.ID {
			s.clients[i] = *client
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memClientStore) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.clients {
		if s.clients[i].ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memClientStore) mustGet(id int64) models.Client {
	for _, client := range s.clients {
		if client.ID == id {
			return client
		}
	}
	return models.Client{}
}

type memTrainingStore struct {
	seq       int64
	trainings []models.Training

	addErr    error
	getAllErr error
	updateErr error
	deleteErr error
}

func (s *memTrainingStore) Add(_ context.Context, training *models.Training) (*models.Training, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.seq++
	created := *training
	created.ID = s.seq
	s.trainings = append(s.trainings, created)
	return &created, nil
}

func (s *memTrainingStore) GetAll(_ context.Context) ([]models.Training, error) {
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	out := make([]models.Training, len(s.trainings))
	copy(out, s.trainings)
	return out, nil
}

func (s *memTrainingStore) Update(_ context.Context, training *models.Training) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.trainings {
		if s.trainings[i].ID == training.ID {
			s.trainings[i] = *training
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memTrainingStore) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i := range s.trainings {
		if s.trainings[i].ID == id {
			s.trainings = append(s.trainings[:i], s.trainings[i+1:]...)
			return nil
		}
	}
	return nil
}

type memHistoryStore struct {
	seq     int64
	entries []models.HistoryEntry

	addErr error
}

func (s *memHistoryStore) Add(_ context.Context, entry *models.HistoryEntry) (*models.HistoryEntry, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.seq++
	created := *entry
	created.ID = s.seq
	s.entries = append(s.entries, created)
	return &created, nil
}

func (s *memHistoryStore) GetAll(_ context.Context) ([]models.HistoryEntry, error) {
	out := make([]models.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *memHistoryStore) Delete(_ context.Context, id int64) error {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}
