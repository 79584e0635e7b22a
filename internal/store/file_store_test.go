package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"expensepro/internal/models"
)

func TestFileStoreCreate(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO files") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 7 || args[0] != "file-1" || args[3] != int64(2048) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewFileStore(stubDB{})
	err := store.Create(context.Background(), execer, models.File{
		ID:         "file-1",
		Filename:   "receipt.pdf",
		Mimetype:   "application/pdf",
		Size:       2048,
		Data:       "JVBERi0=",
		UploadedBy: "alice",
		UploadedAt: "2025-03-10T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFileStoreGetNotFound(t *testing.T) {
	store := NewFileStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	})
	if _, err := store.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreCreatePassesThroughWriteErrors(t *testing.T) {
	wantErr := errors.New("disk full")
	execer := stubExecer{
		execFn: func(context.Context, string, ...any) (sql.Result, error) {
			return nil, wantErr
		},
	}
	store := NewFileStore(stubDB{})
	if err := store.Create(context.Background(), execer, models.File{ID: "file-1"}); err != wantErr {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
