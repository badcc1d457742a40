package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/pkg/entity"
)

type TasksRepository struct {
	conn PgConnection
}

func NewTasksRepo(conn PgConnection) *TasksRepository {
	return &TasksRepository{
		conn: conn,
	}
}

func (tr *TasksRepository) Create(ctx context.Context, task *entity.Task) (int64, error) {
	var id int64
	row := tr.conn.QueryRow(ctx, `INSERT INTO tasks (user_id, date, title, priority, habit_id, section_id, note, estimated_time, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE) RETURNING id;`,
		task.UserID,
		task.Date,
		task.Title,
		task.Priority,
		task.HabitID,
		task.SectionID,
		task.Note,
		task.EstimatedTime,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation on the per-day habit index
			case "23505":
				return 0, errorvalues.ErrTaskExists
			// FK violation
			case "23503":
				return 0, errorvalues.ErrOwnerNotFound
			}
		}
		return 0, errors.New("creating task db error: " + err.Error())
	}
	return id, nil
}

// InsertHabitTasks materializes one task per missing habit for the date.
// The whole batch runs in a single transaction so a later read sees either
// all of the day's habit rows or none; ON CONFLICT DO NOTHING makes the
// call safe under concurrent materialization of the same day.
func (tr *TasksRepository) InsertHabitTasks(ctx context.Context, uid uuid.UUID, date string, habits []*entity.Habit) (int, error) {
	if len(habits) == 0 {
		return 0, nil
	}
	tx, err := tr.conn.Begin(ctx)
	if err != nil {
		return 0, errors.New("opening materialization tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	inserted := 0
	for _, h := range habits {
		ct, err := tx.Exec(ctx, `INSERT INTO tasks (user_id, date, title, priority, habit_id, completed)
			VALUES ($1, $2, $3, $4, $5, FALSE) ON CONFLICT (user_id, date, habit_id) WHERE habit_id IS NOT NULL DO NOTHING;`,
			uid, date, h.Title, h.Priority, h.ID,
		)
		if err != nil {
			return 0, errors.New("materializing habit task error: " + err.Error())
		}
		inserted += int(ct.RowsAffected())
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, errors.New("committing materialization tx error: " + err.Error())
	}
	return inserted, nil
}

func (tr *TasksRepository) HabitRefsForDate(ctx context.Context, uid uuid.UUID, date string) ([]uuid.UUID, error) {
	rows, err := tr.conn.Query(ctx, `SELECT habit_id FROM tasks WHERE user_id = $1 AND date = $2 AND habit_id IS NOT NULL;`, uid, date)
	if err != nil {
		return nil, errors.New("getting habit refs error: " + err.Error())
	}
	defer rows.Close()
	refs := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, errors.New("habit ref row parsing error: " + err.Error())
		}
		refs = append(refs, id)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected habit ref rows error: " + rows.Err().Error())
	}
	return refs, nil
}

// ListForDay is the carry-over read: the day's rows plus every older
// incomplete row. Carried rows keep their original date; labeling them is
// the client's job.
func (tr *TasksRepository) ListForDay(ctx context.Context, uid uuid.UUID, date string) ([]*entity.Task, error) {
	return tr.list(ctx, `SELECT t.id, t.user_id, t.date, t.title, t.completed, t.priority, t.note, t.habit_id, t.section_id, t.estimated_time, t.created_at, s.title AS section_title
		FROM tasks t
		LEFT JOIN sections s ON t.section_id = s.id
		WHERE ((t.date = $2) OR (t.date < $2 AND t.completed = FALSE)) AND t.user_id = $1
		ORDER BY t.priority DESC, t.id ASC;`, uid, date)
}

func (tr *TasksRepository) ListAll(ctx context.Context, uid uuid.UUID) ([]*entity.Task, error) {
	return tr.list(ctx, `SELECT t.id, t.user_id, t.date, t.title, t.completed, t.priority, t.note, t.habit_id, t.section_id, t.estimated_time, t.created_at, s.title AS section_title
		FROM tasks t
		LEFT JOIN sections s ON t.section_id = s.id
		WHERE t.user_id = $1
		ORDER BY t.priority DESC, t.id ASC;`, uid)
}

func (tr *TasksRepository) ListCompletedInRange(ctx context.Context, uid uuid.UUID, from, to string) ([]*entity.Task, error) {
	return tr.list(ctx, `SELECT t.id, t.user_id, t.date, t.title, t.completed, t.priority, t.note, t.habit_id, t.section_id, t.estimated_time, t.created_at, s.title AS section_title
		FROM tasks t
		LEFT JOIN sections s ON t.section_id = s.id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3 AND t.completed = TRUE
		ORDER BY t.priority DESC, t.id ASC;`, uid, from, to)
}

func (tr *TasksRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Task, error) {
	rows, err := tr.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.New("getting tasks error: " + err.Error())
	}
	defer rows.Close()
	tasks := make([]*entity.Task, 0)
	for rows.Next() {
		t := entity.Task{}
		err = rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Title, &t.Completed, &t.Priority,
			&t.Note, &t.HabitID, &t.SectionID, &t.EstimatedTime, &t.CreatedAt, &t.SectionTitle)
		if err != nil {
			return nil, errors.New("task row parsing error: " + err.Error())
		}
		tasks = append(tasks, &t)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected task rows error: " + rows.Err().Error())
	}
	return tasks, nil
}

func (tr *TasksRepository) Update(ctx context.Context, uid uuid.UUID, upd *TaskUpdate) error {
	ct, err := tr.conn.Exec(ctx, `UPDATE tasks SET
		title = COALESCE($1, title),
		completed = COALESCE($2, completed),
		priority = COALESCE($3, priority),
		note = COALESCE($4, note),
		section_id = COALESCE($5, section_id),
		estimated_time = COALESCE($6, estimated_time)
		WHERE id = $7 AND user_id = $8;`,
		upd.Title, upd.Completed, upd.Priority, upd.Note, upd.SectionID, upd.EstimatedTime, upd.ID, uid,
	)
	if err != nil {
		return errors.New("error updating task: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) Delete(ctx context.Context, uid uuid.UUID, id int64) error {
	ct, err := tr.conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("error deleting task: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) CountActiveBySection(ctx context.Context, uid uuid.UUID, sectionID int64) (int, error) {
	var count int
	row := tr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND section_id = $2 AND completed = FALSE;`, uid, sectionID)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("error counting section tasks: " + err.Error())
	}
	return count, nil
}
