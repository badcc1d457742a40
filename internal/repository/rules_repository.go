package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/pkg/entity"
)

type RulesRepository struct {
	conn PgConnection
}

func NewRulesRepo(conn PgConnection) *RulesRepository {
	return &RulesRepository{
		conn: conn,
	}
}

func (rr *RulesRepository) Create(ctx context.Context, uid uuid.UUID, content string) (*entity.MemoryRule, error) {
	rule := entity.MemoryRule{
		UserID:  uid,
		Content: content,
	}
	row := rr.conn.QueryRow(ctx, `INSERT INTO memory_rules (user_id, content) VALUES ($1, $2) RETURNING id, created_at;`, uid, content)
	if err := row.Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return nil, errors.New("creating memory rule error: " + err.Error())
	}
	return &rule, nil
}

func (rr *RulesRepository) List(ctx context.Context, uid uuid.UUID) ([]*entity.MemoryRule, error) {
	rows, err := rr.conn.Query(ctx, `SELECT id, user_id, content, created_at FROM memory_rules WHERE user_id = $1 ORDER BY created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting memory rules error: " + err.Error())
	}
	defer rows.Close()
	rules := make([]*entity.MemoryRule, 0)
	for rows.Next() {
		rule := entity.MemoryRule{}
		if err = rows.Scan(&rule.ID, &rule.UserID, &rule.Content, &rule.CreatedAt); err != nil {
			return nil, errors.New("memory rule row parsing error: " + err.Error())
		}
		rules = append(rules, &rule)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected memory rule rows error: " + rows.Err().Error())
	}
	return rules, nil
}

func (rr *RulesRepository) Delete(ctx context.Context, uid uuid.UUID, id int64) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM memory_rules WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting memory rule error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRuleNotFound
	}
	return nil
}
