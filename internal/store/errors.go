package store

import (
	"database/sql"
	"errors"

	"expensepro/internal/db"
)

var (
	// ErrNotReady is returned when a store is used before the database
	// handle exists.
	ErrNotReady = errors.New("store not initialized")
	// ErrNotFound is the absent-record result for get/update/delete by key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned by Create when the primary key or a
	// unique index already holds the value.
	ErrDuplicateKey = errors.New("duplicate key")
)

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if db.IsUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func mapReadErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
