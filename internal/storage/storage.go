package storage

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Storage wraps a small fixed-size Postgres connection pool. Atomicity of
// multi-statement sequences is delegated entirely to Begin; no in-process
// locks are held around database state.
type Storage struct {
	ctx    context.Context
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func NewStorage(ctx context.Context, l *zap.Logger) *Storage {
	return &Storage{ctx: ctx, logger: l}
}

func (s *Storage) Connect(dsn string) error {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return err
	}
	cfg.MaxConns = 3 // we don't need too many here
	s.pool, err = pgxpool.ConnectConfig(s.ctx, cfg)
	return err
}

// Begin runs fn inside a transaction, rolling back on any error and on every
// exit path of fn.
func (s *Storage) Begin(ctx context.Context, fn func(pgx.Tx) error) error {
	return s.pool.BeginFunc(ctx, fn)
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}
