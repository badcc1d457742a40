package repository

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose"

	"github.com/limbo/exectrack/pkg/cleanup"
	"github.com/limbo/exectrack/pkg/metrics"
)

// LazyPool is the process-wide connection used by every repository. The
// first caller runs migrations and opens the pool; concurrent first callers
// wait on the same attempt. A failed attempt is not cached: the next call
// retries instead of poisoning the process.
type LazyPool struct {
	cfg           DBConfig
	migrationsDir string

	mu   sync.Mutex
	pool *pgxpool.Pool
}

func NewLazyPool(cfg DBConfig, migrationsDir string) *LazyPool {
	return &LazyPool{
		cfg:           cfg,
		migrationsDir: migrationsDir,
	}
}

func (lp *LazyPool) get(ctx context.Context) (*pgxpool.Pool, error) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.pool != nil {
		return lp.pool, nil
	}
	if err := lp.migrate(); err != nil {
		metrics.SchemaInitRetries.Inc()
		return nil, errors.New("applying migrations error: " + err.Error())
	}
	pool, err := pgxpool.New(ctx, lp.cfg.ConnString())
	if err != nil {
		metrics.SchemaInitRetries.Inc()
		return nil, errors.New("creating pgx pool error: " + err.Error())
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.SchemaInitRetries.Inc()
		return nil, errors.New("pinging pgx pool error: " + err.Error())
	}
	lp.pool = pool
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return lp.pool, nil
}

// migrate applies the versioned migration list; goose tracks the schema
// version marker itself.
func (lp *LazyPool) migrate() error {
	db, err := sql.Open("postgres", lp.cfg.ConnString()+"?sslmode=disable")
	if err != nil {
		return err
	}
	defer db.Close()
	if err = goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, lp.migrationsDir)
}

func (lp *LazyPool) Ping(ctx context.Context) error {
	pool, err := lp.get(ctx)
	if err != nil {
		return err
	}
	return pool.Ping(ctx)
}

func (lp *LazyPool) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	pool, err := lp.get(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pool.Exec(ctx, sql, arguments...)
}

func (lp *LazyPool) Begin(ctx context.Context) (pgx.Tx, error) {
	pool, err := lp.get(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Begin(ctx)
}

func (lp *LazyPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	pool, err := lp.get(ctx)
	if err != nil {
		return nil, err
	}
	return pool.Query(ctx, sql, args...)
}

func (lp *LazyPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	pool, err := lp.get(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return pool.QueryRow(ctx, sql, args...)
}

// errRow defers an initialization failure to Scan, matching pgx.Row's
// error-on-scan contract.
type errRow struct {
	err error
}

func (r errRow) Scan(dest ...any) error {
	return r.err
}
