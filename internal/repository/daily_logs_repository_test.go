package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dailyLogCols = []string{"user_id", "date", "tle_minutes", "note", "tomorrow_intent", "dsa_done", "dev_done", "gym_done",
	"dsa_minutes", "dev_minutes", "gym_minutes", "dsa_note", "dev_note", "gym_note"}

func TestGetDailyLog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDailyLogsRepo(mock)
	query := regexp.QuoteMeta(`FROM daily_logs WHERE user_id = $1 AND date = $2;`)
	date := "2025-06-15"
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows(dailyLogCols).
			AddRow(userID, date, 30, "solid", "ship it", true, false, true, 60, 0, 45, "two problems", "", "push day")
		mock.ExpectQuery(query).WithArgs(userID, date).WillReturnRows(rows)
		l, err := repo.Get(ctx, userID, date)
		assert.NoError(t, err)
		assert.Equal(t, 30, l.TLEMinutes)
		assert.True(t, l.DsaDone)
		assert.Equal(t, "push day", l.GymNote)
	})
	t.Run("missing row maps to nil without error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, date).WillReturnError(pgx.ErrNoRows)
		l, err := repo.Get(ctx, userID, date)
		assert.NoError(t, err)
		assert.Nil(t, l)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, date).WillReturnError(errors.New("db error"))
		_, err := repo.Get(ctx, userID, date)
		assert.Error(t, err)
	})
}

func TestUpsertDailyLog(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDailyLogsRepo(mock)
	query := regexp.QuoteMeta(`ON CONFLICT (user_id, date) DO UPDATE SET`)
	tle := 25
	note := "late start"
	upd := repository.DailyLogUpsert{
		Date:       "2025-06-15",
		TLEMinutes: &tle,
		Note:       &note,
	}
	ctx := context.Background()
	t.Run("partial fields pass through untouched", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID, upd.Date, upd.TLEMinutes, upd.Note, upd.TomorrowIntent, upd.DsaDone, upd.DevDone, upd.GymDone,
				upd.DsaMinutes, upd.DevMinutes, upd.GymMinutes, upd.DsaNote, upd.DevNote, upd.GymNote).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		err := repo.Upsert(ctx, userID, &upd)
		assert.NoError(t, err)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(userID, upd.Date, upd.TLEMinutes, upd.Note, upd.TomorrowIntent, upd.DsaDone, upd.DevDone, upd.GymDone,
				upd.DsaMinutes, upd.DevMinutes, upd.GymMinutes, upd.DsaNote, upd.DevNote, upd.GymNote).
			WillReturnError(errors.New("db error"))
		err := repo.Upsert(ctx, userID, &upd)
		assert.Error(t, err)
	})
}

func TestDailyLogHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewDailyLogsRepo(mock)
	query := regexp.QuoteMeta(`FROM daily_logs WHERE user_id = $1 ORDER BY date DESC LIMIT $2;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows(dailyLogCols).
			AddRow(userID, "2025-06-15", 0, "", "", true, false, false, 0, 0, 0, "", "", "").
			AddRow(userID, "2025-06-14", 10, "", "", true, true, false, 0, 0, 0, "", "", "")
		mock.ExpectQuery(query).WithArgs(userID, 100).WillReturnRows(rows)
		logs, err := repo.History(ctx, userID, 100)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(logs))
		assert.Equal(t, "2025-06-15", logs[0].Date)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, 100).WillReturnError(errors.New("db error"))
		_, err := repo.History(ctx, userID, 100)
		assert.Error(t, err)
	})
}

func TestDailyLogsIntegrational(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.ConnString())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	repo := repository.NewDailyLogsRepo(pool)
	date := "2025-06-15"

	t.Run("first upsert stores the row", func(t *testing.T) {
		tle := 45
		note := "first pass"
		dsa := true
		require.NoError(t, repo.Upsert(ctx, userID, &repository.DailyLogUpsert{
			Date:       date,
			TLEMinutes: &tle,
			Note:       &note,
			DsaDone:    &dsa,
		}))
		stored, err := repo.Get(ctx, userID, date)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, 45, stored.TLEMinutes)
		assert.Equal(t, "first pass", stored.Note)
		assert.True(t, stored.DsaDone)
	})
	t.Run("note-only upsert keeps stored fields", func(t *testing.T) {
		note := "second pass"
		require.NoError(t, repo.Upsert(ctx, userID, &repository.DailyLogUpsert{
			Date: date,
			Note: &note,
		}))
		stored, err := repo.Get(ctx, userID, date)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "second pass", stored.Note)
		assert.Equal(t, 45, stored.TLEMinutes)
		assert.True(t, stored.DsaDone)
	})
	t.Run("absent row reads as nil", func(t *testing.T) {
		stored, err := repo.Get(ctx, userID, "2025-01-01")
		assert.NoError(t, err)
		assert.Nil(t, stored)
	})
}
