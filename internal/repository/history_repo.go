package repository

import (
	"context"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
)

type HistoryRepository struct {
	db DBTX
}

func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Add(ctx context.Context, entry *models.HistoryEntry) (*models.HistoryEntry, error) {
	query := `
		INSERT INTO client_history (client_id, session_at, amount, duration_min)
		VALUES ($1, $2, $3, $4)
		RETURNING id, client_id, session_at, amount, duration_min
	`

	var created models.HistoryEntry
	err := r.db.QueryRow(
		ctx,
		query,
		entry.ClientID,
		entry.Date,
		entry.Amount,
		entry.DurationMinutes,
	).Scan(
		&created.ID,
		&created.ClientID,
		&created.Date,
		&created.Amount,
		&created.DurationMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *HistoryRepository) GetAll(ctx context.Context) ([]models.HistoryEntry, error) {
	query := `
		SELECT id, client_id, session_at, amount, duration_min
		FROM client_history
		ORDER BY session_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var entry models.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ClientID,
			&entry.Date,
			&entry.Amount,
			&entry.DurationMinutes,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM client_history WHERE id = $1`, id)
	return err
}
