package store

import (
	"context"
	"database/sql"
)

// The stores split their database access in two: reads go through the DB
// handle they are constructed with, writes take an Execer per call so a
// service can pass its *sqlx.Tx and keep the mutation and its activity log
// entry in one transaction. Both *sqlx.DB and *sqlx.Tx satisfy Execer.

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Getter interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

type Selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// DB is the read-side handle held by every store.
type DB interface {
	Execer
	Getter
	Selecter
}
