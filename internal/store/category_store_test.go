package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"expensepro/internal/models"
)

func TestCategoryStoreCreateAssignsID(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if strings.Contains(query, "(id,") {
				t.Fatalf("zero-ID create must let the database assign the id: %s", query)
			}
			if len(args) != 6 {
				t.Fatalf("expected 6 args, got %d", len(args))
			}
			return stubResult{lastID: 9, rows: 1}, nil
		},
	}
	store := NewCategoryStore(stubDB{})
	id, err := store.Create(context.Background(), execer, models.Category{Name: "Travel", Type: models.CategoryExpense})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 9 {
		t.Fatalf("expected id 9, got %d", id)
	}
}

func TestCategoryStoreCreateKeepsExplicitID(t *testing.T) {
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "(id, name,") {
				t.Fatalf("explicit-ID create must insert the id: %s", query)
			}
			if args[0] != int64(3) {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewCategoryStore(stubDB{})
	id, err := store.Create(context.Background(), execer, models.Category{ID: 3, Name: "Office", Type: models.CategoryExpense})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}
}

func TestCategoryStoreListByType(t *testing.T) {
	store := NewCategoryStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE type = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != models.CategoryIncome {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.Category) = []models.Category{{ID: 7, Name: "Sales Revenue"}}
			return nil
		},
	})
	categories, err := store.List(context.Background(), models.CategoryIncome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 1 || categories[0].ID != 7 {
		t.Fatalf("unexpected result: %#v", categories)
	}
}

func TestCategoryStoreGetNotFound(t *testing.T) {
	store := NewCategoryStore(stubDB{
		getFn: func(context.Context, any, string, ...any) error {
			return sql.ErrNoRows
		},
	})
	if _, err := store.Get(context.Background(), 42); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
