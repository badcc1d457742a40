package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/pkg/entity"
)

type HabitsRepository struct {
	conn PgConnection
}

func NewHabitsRepo(conn PgConnection) *HabitsRepository {
	return &HabitsRepository{
		conn: conn,
	}
}

func (hr *HabitsRepository) Create(ctx context.Context, habit *entity.Habit) (uuid.UUID, error) {
	var id uuid.UUID
	row := hr.conn.QueryRow(ctx, `INSERT INTO habits (user_id, title, subtitle, icon, color, priority, track_streak)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
		habit.UserID,
		habit.Title,
		habit.Subtitle,
		habit.Icon,
		habit.Color,
		habit.Priority,
		habit.TrackStreak,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating habit db error: " + err.Error())
	}
	return id, nil
}

func (hr *HabitsRepository) GetByID(ctx context.Context, uid, id uuid.UUID) (*entity.Habit, error) {
	var habit entity.Habit
	habit.ID = id
	row := hr.conn.QueryRow(ctx, `SELECT user_id, title, subtitle, icon, color, priority, track_streak, is_archived, created_at
		FROM habits WHERE id = $1 AND user_id = $2;`, id, uid)
	err := row.Scan(&habit.UserID, &habit.Title, &habit.Subtitle, &habit.Icon, &habit.Color,
		&habit.Priority, &habit.TrackStreak, &habit.Archived, &habit.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrHabitNotFound
		}
		return nil, errors.New("getting habit by id error: " + err.Error())
	}
	return &habit, nil
}

func (hr *HabitsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	return hr.list(ctx, `SELECT id, user_id, title, subtitle, icon, color, priority, track_streak, is_archived, created_at
		FROM habits WHERE user_id = $1 ORDER BY created_at ASC;`, uid)
}

func (hr *HabitsRepository) GetActive(ctx context.Context, uid uuid.UUID) ([]*entity.Habit, error) {
	return hr.list(ctx, `SELECT id, user_id, title, subtitle, icon, color, priority, track_streak, is_archived, created_at
		FROM habits WHERE user_id = $1 AND is_archived = FALSE ORDER BY created_at ASC;`, uid)
}

func (hr *HabitsRepository) list(ctx context.Context, query string, uid uuid.UUID) ([]*entity.Habit, error) {
	habits := make([]*entity.Habit, 0)
	rows, err := hr.conn.Query(ctx, query, uid)
	if err != nil {
		return nil, errors.New("getting habits by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		h := entity.Habit{}
		err = rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Subtitle, &h.Icon, &h.Color,
			&h.Priority, &h.TrackStreak, &h.Archived, &h.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling habit error: " + err.Error())
		}
		habits = append(habits, &h)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return habits, nil
}

func (hr *HabitsRepository) Update(ctx context.Context, uid uuid.UUID, upd *HabitUpdate) error {
	ct, err := hr.conn.Exec(ctx, `UPDATE habits SET
		title = COALESCE($1, title),
		subtitle = COALESCE($2, subtitle),
		icon = COALESCE($3, icon),
		color = COALESCE($4, color),
		priority = COALESCE($5, priority),
		track_streak = COALESCE($6, track_streak)
		WHERE id = $7 AND user_id = $8;`,
		upd.Title, upd.Subtitle, upd.Icon, upd.Color, upd.Priority, upd.TrackStreak, upd.ID, uid,
	)
	if err != nil {
		return errors.New("error updating habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Archive(ctx context.Context, uid, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `UPDATE habits SET is_archived = TRUE WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("error archiving habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}

func (hr *HabitsRepository) Delete(ctx context.Context, uid, id uuid.UUID) error {
	ct, err := hr.conn.Exec(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("error deleting habit: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrHabitNotFound
	}
	return nil
}
