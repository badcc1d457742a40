package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestUpsertHabitLog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitLogsRepo(mock)
	query := regexp.QuoteMeta(`INSERT INTO habit_logs (user_id, habit_id, date, completed, time_spent, note)
		VALUES ($1, $2, $3, COALESCE($4, FALSE), COALESCE($5, 0), COALESCE($6, ''))
		ON CONFLICT (user_id, habit_id, date) DO UPDATE SET
			completed = COALESCE($4, habit_logs.completed),
			time_spent = COALESCE($5, habit_logs.time_spent),
			note = COALESCE($6, habit_logs.note),
			created_at = CASE WHEN $4 = TRUE AND habit_logs.completed = FALSE THEN NOW() ELSE habit_logs.created_at END;`)
	habitID := uuid.New()
	completed := true
	upd := repository.HabitLogUpsert{
		HabitID:   habitID,
		Date:      "2025-06-15",
		Completed: &completed,
	}
	ctx := context.Background()
	t.Run("success with partial fields", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID, upd.HabitID, upd.Date, upd.Completed, upd.TimeSpent, upd.Note).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Upsert(ctx, userID, &upd)
		assert.NoError(t, err)
	})
	t.Run("unknown habit", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID, upd.HabitID, upd.Date, upd.Completed, upd.TimeSpent, upd.Note).
			WillReturnError(&pgconn.PgError{Code: "23503"})
		err := repo.Upsert(ctx, userID, &upd)
		assert.ErrorIs(t, err, errorvalues.ErrHabitNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID, upd.HabitID, upd.Date, upd.Completed, upd.TimeSpent, upd.Note).
			WillReturnError(errors.New("db error"))
		err := repo.Upsert(ctx, userID, &upd)
		assert.Error(t, err)
	})
}

func TestListCompletedLogs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitLogsRepo(mock)
	query := regexp.QuoteMeta(`SELECT id, user_id, habit_id, date, completed, time_spent, note, created_at
		FROM habit_logs WHERE user_id = $1 AND completed = TRUE ORDER BY created_at DESC;`)
	habitID := uuid.New()
	ctx := context.Background()
	cols := []string{"id", "user_id", "habit_id", "date", "completed", "time_spent", "note", "created_at"}
	t.Run("success", func(t *testing.T) {
		now := time.Now()
		rows := pgxmock.NewRows(cols).
			AddRow(int64(2), userID, habitID, "2025-06-15", true, 30, "", now).
			AddRow(int64(1), userID, habitID, "2025-06-14", true, 25, "easy", now.Add(-24*time.Hour))
		mock.ExpectQuery(query).WithArgs(userID).WillReturnRows(rows)
		logs, err := repo.ListCompleted(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(logs))
		assert.Equal(t, "2025-06-15", logs[0].Date)
		assert.Equal(t, 25, logs[1].TimeSpent)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(errors.New("db error"))
		_, err := repo.ListCompleted(ctx, userID)
		assert.Error(t, err)
	})
}

func TestDeleteLogsByHabit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewHabitLogsRepo(mock)
	query := regexp.QuoteMeta(`DELETE FROM habit_logs WHERE user_id = $1 AND habit_id = $2;`)
	habitID := uuid.New()
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(userID, habitID).WillReturnResult(pgxmock.NewResult("DELETE", 3))
		err := repo.DeleteByHabit(ctx, userID, habitID)
		assert.NoError(t, err)
	})
	t.Run("no rows is fine", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(userID, habitID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.DeleteByHabit(ctx, userID, habitID)
		assert.NoError(t, err)
	})
}
