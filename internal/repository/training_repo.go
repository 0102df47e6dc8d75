package repository

import (
	"context"
	"time"

	"github.com/a-sokolov-dev/TrainerDeskBack/internal/models"
	"github.com/a-sokolov-dev/TrainerDeskBack/internal/store"
	"github.com/a-sokolov-dev/TrainerDeskBack/pkg/timeutil"
)

type TrainingRepository struct {
	db DBTX
}

func NewTrainingRepository(db DBTX) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) Add(ctx context.Context, training *models.Training) (*models.Training, error) {
	query := `
		INSERT INTO trainings (client_id, session_date, start_time, duration_min, price, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, client_id, session_date, start_time, duration_min, price, status, note, created_at, updated_at
	`

	row := r.db.QueryRow(
		ctx,
		query,
		training.ClientID,
		training.Date,
		training.StartTime,
		training.DurationMinutes,
		training.Price,
		training.Status,
		training.Note,
	)
	created, err := scanTraining(row)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *TrainingRepository) GetAll(ctx context.Context) ([]models.Training, error) {
	query := `
		SELECT id, client_id, session_date, start_time, duration_min, price, status, note, created_at, updated_at
		FROM trainings
		ORDER BY session_date ASC, start_time ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainings := make([]models.Training, 0)
	for rows.Next() {
		training, err := scanTraining(rows)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, *training)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trainings, nil
}

func (r *TrainingRepository) Update(ctx context.Context, training *models.Training) error {
	query := `
		UPDATE trainings
		SET client_id = $2, session_date = $3, start_time = $4, duration_min = $5,
		    price = $6, status = $7, note = $8, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		training.ID,
		training.ClientID,
		training.Date,
		training.StartTime,
		training.DurationMinutes,
		training.Price,
		training.Status,
		training.Note,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *TrainingRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// session_date is a DATE column; the model keeps the grid's wire format.
func scanTraining(row rowScanner) (*models.Training, error) {
	var (
		training    models.Training
		sessionDate time.Time
	)
	if err := row.Scan(
		&training.ID,
		&training.ClientID,
		&sessionDate,
		&training.StartTime,
		&training.DurationMinutes,
		&training.Price,
		&training.Status,
		&training.Note,
		&training.CreatedAt,
		&training.UpdatedAt,
	); err != nil {
		return nil, err
	}
	training.Date = sessionDate.Format(timeutil.DateLayout)
	return &training, nil
}
