package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateRule(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRulesRepo(mock)
	query := regexp.QuoteMeta(`INSERT INTO memory_rules (user_id, content) VALUES ($1, $2) RETURNING id, created_at;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, "Health is non-negotiable").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))
		rule, err := repo.Create(ctx, userID, "Health is non-negotiable")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rule.ID)
		assert.Equal(t, "Health is non-negotiable", rule.Content)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID, "Health is non-negotiable").
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, userID, "Health is non-negotiable")
		assert.Error(t, err)
	})
}

func TestListRules(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRulesRepo(mock)
	query := regexp.QuoteMeta(`SELECT id, user_id, content, created_at FROM memory_rules WHERE user_id = $1 ORDER BY created_at ASC;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "content", "created_at"}).
				AddRow(int64(1), userID, "Consistency > Intensity", time.Now()).
				AddRow(int64(2), userID, "Health is non-negotiable", time.Now()))
		rules, err := repo.List(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(rules))
		assert.Equal(t, "Consistency > Intensity", rules[0].Content)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(userID).WillReturnError(errors.New("db error"))
		_, err := repo.List(ctx, userID)
		assert.Error(t, err)
	})
}

func TestDeleteRule(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRulesRepo(mock)
	query := regexp.QuoteMeta(`DELETE FROM memory_rules WHERE id = $1 AND user_id = $2;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(int64(1), userID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
		assert.NoError(t, repo.Delete(ctx, userID, 1))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(int64(1), userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		err := repo.Delete(ctx, userID, 1)
		assert.ErrorIs(t, err, errorvalues.ErrRuleNotFound)
	})
}
