package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/limbo/exectrack/pkg/entity"
)

type WorkoutRepository struct {
	conn PgConnection
}

func NewWorkoutRepo(conn PgConnection) *WorkoutRepository {
	return &WorkoutRepository{
		conn: conn,
	}
}

func (wr *WorkoutRepository) List(ctx context.Context, uid uuid.UUID) ([]*entity.WorkoutDay, error) {
	rows, err := wr.conn.Query(ctx, `SELECT id, user_id, day_index, title, details
		FROM workout_schedule WHERE user_id = $1 ORDER BY day_index ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting workout schedule error: " + err.Error())
	}
	defer rows.Close()
	days := make([]*entity.WorkoutDay, 0)
	for rows.Next() {
		d := entity.WorkoutDay{}
		if err = rows.Scan(&d.ID, &d.UserID, &d.DayIndex, &d.Title, &d.Details); err != nil {
			return nil, errors.New("workout row parsing error: " + err.Error())
		}
		days = append(days, &d)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected workout rows error: " + rows.Err().Error())
	}
	return days, nil
}

func (wr *WorkoutRepository) Upsert(ctx context.Context, uid uuid.UUID, day *entity.WorkoutDay) error {
	_, err := wr.conn.Exec(ctx, `INSERT INTO workout_schedule (user_id, day_index, title, details) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, day_index) DO UPDATE SET title = $3, details = $4;`,
		uid, day.DayIndex, day.Title, day.Details,
	)
	if err != nil {
		return errors.New("upserting workout day error: " + err.Error())
	}
	return nil
}
