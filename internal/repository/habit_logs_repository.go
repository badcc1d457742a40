package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/pkg/entity"
)

type HabitLogsRepository struct {
	conn PgConnection
}

func NewHabitLogsRepo(conn PgConnection) *HabitLogsRepository {
	return &HabitLogsRepository{
		conn: conn,
	}
}

// Upsert writes the (user, habit, date) log. Omitted fields keep stored
// values. created_at is re-stamped only when completed flips from false to
// true, which restarts the 24h streak countdown.
func (lr *HabitLogsRepository) Upsert(ctx context.Context, uid uuid.UUID, upd *HabitLogUpsert) error {
	_, err := lr.conn.Exec(ctx, `INSERT INTO habit_logs (user_id, habit_id, date, completed, time_spent, note)
		VALUES ($1, $2, $3, COALESCE($4, FALSE), COALESCE($5, 0), COALESCE($6, ''))
		ON CONFLICT (user_id, habit_id, date) DO UPDATE SET
			completed = COALESCE($4, habit_logs.completed),
			time_spent = COALESCE($5, habit_logs.time_spent),
			note = COALESCE($6, habit_logs.note),
			created_at = CASE WHEN $4 = TRUE AND habit_logs.completed = FALSE THEN NOW() ELSE habit_logs.created_at END;`,
		uid, upd.HabitID, upd.Date, upd.Completed, upd.TimeSpent, upd.Note,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrHabitNotFound
			}
		}
		return errors.New("upserting habit log error: " + err.Error())
	}
	return nil
}

func (lr *HabitLogsRepository) GetForDate(ctx context.Context, uid uuid.UUID, date string) ([]*entity.HabitLog, error) {
	return lr.list(ctx, `SELECT id, user_id, habit_id, date, completed, time_spent, note, created_at
		FROM habit_logs WHERE user_id = $1 AND date = $2;`, uid, date)
}

func (lr *HabitLogsRepository) ListCompleted(ctx context.Context, uid uuid.UUID) ([]*entity.HabitLog, error) {
	return lr.list(ctx, `SELECT id, user_id, habit_id, date, completed, time_spent, note, created_at
		FROM habit_logs WHERE user_id = $1 AND completed = TRUE ORDER BY created_at DESC;`, uid)
}

func (lr *HabitLogsRepository) list(ctx context.Context, query string, args ...any) ([]*entity.HabitLog, error) {
	rows, err := lr.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("getting habit logs error: " + err.Error())
	}
	defer rows.Close()
	logs := make([]*entity.HabitLog, 0)
	for rows.Next() {
		l := entity.HabitLog{}
		err = rows.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Date, &l.Completed, &l.TimeSpent, &l.Note, &l.CreatedAt)
		if err != nil {
			return nil, errors.New("habit log row parsing error: " + err.Error())
		}
		logs = append(logs, &l)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected habit log rows error: " + rows.Err().Error())
	}
	return logs, nil
}

func (lr *HabitLogsRepository) DeleteByHabit(ctx context.Context, uid, habitID uuid.UUID) error {
	_, err := lr.conn.Exec(ctx, `DELETE FROM habit_logs WHERE user_id = $1 AND habit_id = $2;`, uid, habitID)
	if err != nil {
		return errors.New("deleting habit logs error: " + err.Error())
	}
	return nil
}
