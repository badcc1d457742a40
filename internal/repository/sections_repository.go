package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/exectrack/internal/error_values"
	"github.com/limbo/exectrack/pkg/entity"
)

type SectionsRepository struct {
	conn PgConnection
}

func NewSectionsRepo(conn PgConnection) *SectionsRepository {
	return &SectionsRepository{
		conn: conn,
	}
}

func (sr *SectionsRepository) Create(ctx context.Context, uid uuid.UUID, title string) (*entity.Section, error) {
	s := entity.Section{
		UserID: uid,
		Title:  title,
	}
	row := sr.conn.QueryRow(ctx, `INSERT INTO sections (user_id, title) VALUES ($1, $2) RETURNING id, created_at;`, uid, title)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, errors.New("creating section error: " + err.Error())
	}
	return &s, nil
}

func (sr *SectionsRepository) List(ctx context.Context, uid uuid.UUID) ([]*entity.Section, error) {
	rows, err := sr.conn.Query(ctx, `SELECT id, user_id, title, created_at FROM sections WHERE user_id = $1 ORDER BY created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting sections error: " + err.Error())
	}
	defer rows.Close()
	sections := make([]*entity.Section, 0)
	for rows.Next() {
		s := entity.Section{}
		if err = rows.Scan(&s.ID, &s.UserID, &s.Title, &s.CreatedAt); err != nil {
			return nil, errors.New("section row parsing error: " + err.Error())
		}
		sections = append(sections, &s)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected section rows error: " + rows.Err().Error())
	}
	return sections, nil
}

func (sr *SectionsRepository) Delete(ctx context.Context, uid uuid.UUID, id int64) error {
	ct, err := sr.conn.Exec(ctx, `DELETE FROM sections WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting section error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrSectionNotFound
	}
	return nil
}
