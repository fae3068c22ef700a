package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS editor_state (
	key        TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const loadSQL = `SELECT record FROM editor_state WHERE key = $1`

const saveSQL = `INSERT INTO editor_state (key, record, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at`

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres keeps one JSONB row per key in the editor_state table.
type Postgres struct {
	db    querier
	close func()
}

// NewPostgres opens a pool, checks connectivity and ensures the table exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("persist: parse database url: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("persist: open pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("persist: ping postgres: %w", err)
	}

	p := &Postgres{db: pool, close: pool.Close}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func newPostgresWith(db querier) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("persist: create table: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "postgres.Load",
		trace.WithAttributes(attribute.String("db.key", key)))
	defer span.End()

	var data []byte
	err := p.db.QueryRow(ctx, loadSQL, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return data, nil
}

func (p *Postgres) Save(ctx context.Context, key string, data []byte) error {
	ctx, span := tracer.Start(ctx, "postgres.Save",
		trace.WithAttributes(attribute.String("db.key", key)))
	defer span.End()

	if _, err := p.db.Exec(ctx, saveSQL, key, data); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (p *Postgres) Close() {
	if p.close != nil {
		p.close()
	}
}
