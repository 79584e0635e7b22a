package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"expensepro/internal/models"
)

func TestLogStoreAppend(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO logs") {
				t.Fatalf("unexpected query: %s", query)
			}
			want := []any{"alice", models.ActionLogin, "User logged in", "2025-03-10T09:00:00Z"}
			if len(args) != len(want) {
				t.Fatalf("unexpected args: %#v", args)
			}
			for i := range want {
				if args[i] != want[i] {
					t.Fatalf("arg %d = %#v, want %#v", i, args[i], want[i])
				}
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewLogStore(stubDB{})
	err := store.Append(context.Background(), execer, "alice", models.ActionLogin, "User logged in", "2025-03-10T09:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogStoreListFilterClauses(t *testing.T) {
	var captured string
	var capturedArgs []any
	store := NewLogStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			captured = query
			capturedArgs = args
			return nil
		},
	})
	_, err := store.List(context.Background(), LogFilter{
		UserID:    "alice",
		Action:    models.ActionTransactionCreate,
		StartTime: "2025-03-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, clause := range []string{
		"user_id = $1",
		"action = $2",
		"timestamp >= $3",
		"ORDER BY timestamp DESC, id DESC",
	} {
		if !strings.Contains(captured, clause) {
			t.Fatalf("query missing %q: %s", clause, captured)
		}
	}
	if len(capturedArgs) != 3 {
		t.Fatalf("unexpected args: %#v", capturedArgs)
	}
}

func TestLogStoreListNotReady(t *testing.T) {
	store := NewLogStore(nil)
	if _, err := store.List(context.Background(), LogFilter{}); err != ErrNotReady {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestLogStoreInsertKeepsID(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "(id, user_id,") {
				t.Fatalf("restore insert must carry the id: %s", query)
			}
			if args[0] != int64(12) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewLogStore(stubDB{})
	err := store.Insert(context.Background(), execer, models.LogEntry{
		ID: 12, UserID: "admin", Action: models.ActionDataImport, Timestamp: "2025-03-10T09:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
