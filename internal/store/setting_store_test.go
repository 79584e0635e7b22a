package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"expensepro/internal/models"
)

func TestSettingStoreSetUpserts(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "ON CONFLICT (key) DO UPDATE") {
				t.Fatalf("expected upsert, got: %s", query)
			}
			if len(args) != 2 || args[0] != "currency" || args[1] != `"₹"` {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewSettingStore(stubDB{})
	if err := store.Set(context.Background(), execer, "currency", `"₹"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSettingStoreGetNotFound(t *testing.T) {
	store := NewSettingStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	})
	if _, err := store.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingStoreGet(t *testing.T) {
	store := NewSettingStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if len(args) != 1 || args[0] != "taxRate" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*models.Setting) = models.Setting{Key: "taxRate", Value: "18"}
			return nil
		},
	})
	setting, err := store.Get(context.Background(), "taxRate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setting.Value != "18" {
		t.Fatalf("unexpected setting: %#v", setting)
	}
}
