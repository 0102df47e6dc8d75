// Package store declares the persistent record-store contract the
// services consume: per-collection CRUD over records keyed by an
// auto-assigned identifier. Implementations live in internal/repository.
package store

import (
	"context"
	"errors"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
)

// ErrNotFound is returned by Update when no record matches the id.
// Delete is a no-op on absent records.
var ErrNotFound = errors.New("record not found")

type ClientStore interface {
	Add(ctx context.Context, client *models.Client) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id int64) error
}

type TrainingStore interface {
	Add(ctx context.Context, training *models.Training) (*models.Training, error)
	GetAll(ctx context.Context) ([]models.Training, error)
	Update(ctx context.Context, training *models.Training) error
	Delete(ctx context.Context, id int64) error
}

type HistoryStore interface {
	Add(ctx context.Context, entry *models.HistoryEntry) (*models.HistoryEntry, error)
	GetAll(ctx context.Context) ([]models.HistoryEntry, error)
	Delete(ctx context.Context, id int64) error
}
