package repository

import (
	"context"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/store"
)

type ClientRepository struct {
	db DBTX
}

func NewClientRepository(db DBTX) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Add(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		INSERT INTO clients (name, phone, type, price, block_price, total_sessions, remaining_sessions, color, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, phone, type, price, block_price, total_sessions, remaining_sessions, color, note, created_at, updated_at
	`

	var created models.Client
	err := r.db.QueryRow(
		ctx,
		query,
		client.Name,
		client.Phone,
		client.Type,
		client.Price,
		client.BlockPrice,
		client.TotalSessions,
		client.RemainingSessions,
		client.Color,
		client.Note,
	).Scan(
		&created.ID,
		&created.Name,
		&created.Phone,
		&created.Type,
		&created.Price,
		&created.BlockPrice,
		&created.TotalSessions,
		&created.RemainingSessions,
		&created.Color,
		&created.Note,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ClientRepository) GetAll(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT id, name, phone, type, price, block_price, total_sessions, remaining_sessions, color, note, created_at, updated_at
		FROM clients
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]models.Client, 0)
	for rows.Next() {
		var client models.Client
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.Phone,
			&client.Type,
			&client.Price,
			&client.BlockPrice,
			&client.TotalSessions,
			&client.RemainingSessions,
			&client.Color,
			&client.Note,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $2, phone = $3, type = $4, price = $5, block_price = $6,
		    total_sessions = $7, remaining_sessions = $8, color = $9, note = $10,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		client.ID,
		client.Name,
		client.Phone,
		client.Type,
		client.Price,
		client.BlockPrice,
		client.TotalSessions,
		client.RemainingSessions,
		client.Color,
		client.Note,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}
