package model

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// Service is the tag stamped on every row this bot writes. Membership sync
// only ever revokes rows carrying this tag, so grants made through the
// website are left alone.
const Service = "infernoplex"

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx so entity functions
// can run standalone or inside a caller's transaction.
type Querier interface {
	QueryFunc(ctx context.Context, sql string, args []interface{}, scans []interface{}, f func(pgx.QueryFuncRow) error) (pgconn.CommandTag, error)
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

func queryRowFuncNoOp(row pgx.QueryFuncRow) error { return nil }

func query(ctx context.Context, q Querier, sql string, args []interface{}, scans []interface{}) error {
	_, err := q.QueryFunc(ctx, sql, args, scans, queryRowFuncNoOp)
	return err
}

// queryRow is like query but reports whether any row was scanned.
func queryRow(ctx context.Context, q Querier, sql string, args []interface{}, scans []interface{}) (bool, error) {
	var found bool
	_, err := q.QueryFunc(ctx, sql, args, scans, func(pgx.QueryFuncRow) error {
		found = true
		return nil
	})
	return found, err
}
