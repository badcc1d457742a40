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

type ShoppingRepository struct {
	conn PgConnection
}

func NewShoppingRepo(conn PgConnection) *ShoppingRepository {
	return &ShoppingRepository{
		conn: conn,
	}
}

func (sr *ShoppingRepository) CreateItem(ctx context.Context, item *entity.ShoppingItem) (int64, error) {
	var id int64
	row := sr.conn.QueryRow(ctx, `INSERT INTO buying_list (user_id, item, category, note) VALUES ($1, $2, $3, $4) RETURNING id;`,
		item.UserID,
		item.Item,
		item.Category,
		item.Note,
	)
	if err := row.Scan(&id); err != nil {
		return 0, errors.New("creating shopping item error: " + err.Error())
	}
	return id, nil
}

func (sr *ShoppingRepository) ListItems(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingItem, error) {
	rows, err := sr.conn.Query(ctx, `SELECT id, user_id, item, category, completed, note, created_at
		FROM buying_list WHERE user_id = $1 ORDER BY created_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting shopping items error: " + err.Error())
	}
	defer rows.Close()
	items := make([]*entity.ShoppingItem, 0)
	for rows.Next() {
		i := entity.ShoppingItem{}
		if err = rows.Scan(&i.ID, &i.UserID, &i.Item, &i.Category, &i.Completed, &i.Note, &i.CreatedAt); err != nil {
			return nil, errors.New("shopping item row parsing error: " + err.Error())
		}
		items = append(items, &i)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected shopping item rows error: " + rows.Err().Error())
	}
	return items, nil
}

func (sr *ShoppingRepository) UpdateItem(ctx context.Context, uid uuid.UUID, id int64, completed bool) error {
	ct, err := sr.conn.Exec(ctx, `UPDATE buying_list SET completed = $1 WHERE id = $2 AND user_id = $3;`, completed, id, uid)
	if err != nil {
		return errors.New("updating shopping item error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrItemNotFound
	}
	return nil
}

func (sr *ShoppingRepository) DeleteItem(ctx context.Context, uid uuid.UUID, id int64) error {
	ct, err := sr.conn.Exec(ctx, `DELETE FROM buying_list WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting shopping item error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrItemNotFound
	}
	return nil
}

func (sr *ShoppingRepository) CountItemsByCategory(ctx context.Context, uid uuid.UUID, name string) (int, error) {
	var count int
	row := sr.conn.QueryRow(ctx, `SELECT COUNT(*) FROM buying_list WHERE user_id = $1 AND category = $2 AND completed = FALSE;`, uid, name)
	if err := row.Scan(&count); err != nil {
		return 0, errors.New("counting category items error: " + err.Error())
	}
	return count, nil
}

func (sr *ShoppingRepository) FindCategory(ctx context.Context, uid uuid.UUID, id int64) (*entity.ShoppingCategory, error) {
	var cat entity.ShoppingCategory
	row := sr.conn.QueryRow(ctx, `SELECT id, user_id, name, created_at FROM buying_categories WHERE id = $1 AND user_id = $2;`, id, uid)
	if err := row.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrCategoryNotFound
		}
		return nil, errors.New("searching shopping category error: " + err.Error())
	}
	return &cat, nil
}

func (sr *ShoppingRepository) CreateCategory(ctx context.Context, uid uuid.UUID, name string) (int64, error) {
	var id int64
	row := sr.conn.QueryRow(ctx, `INSERT INTO buying_categories (user_id, name) VALUES ($1, $2) RETURNING id;`, uid, name)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return 0, errorvalues.ErrCategoryExists
			}
		}
		return 0, errors.New("creating shopping category error: " + err.Error())
	}
	return id, nil
}

func (sr *ShoppingRepository) ListCategories(ctx context.Context, uid uuid.UUID) ([]*entity.ShoppingCategory, error) {
	rows, err := sr.conn.Query(ctx, `SELECT id, user_id, name, created_at
		FROM buying_categories WHERE user_id = $1 ORDER BY created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting shopping categories error: " + err.Error())
	}
	defer rows.Close()
	cats := make([]*entity.ShoppingCategory, 0)
	for rows.Next() {
		c := entity.ShoppingCategory{}
		if err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt); err != nil {
			return nil, errors.New("shopping category row parsing error: " + err.Error())
		}
		cats = append(cats, &c)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected shopping category rows error: " + rows.Err().Error())
	}
	return cats, nil
}

func (sr *ShoppingRepository) DeleteCategory(ctx context.Context, uid uuid.UUID, id int64) error {
	ct, err := sr.conn.Exec(ctx, `DELETE FROM buying_categories WHERE id = $1 AND user_id = $2;`, id, uid)
	if err != nil {
		return errors.New("deleting shopping category error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrCategoryNotFound
	}
	return nil
}
