package services

import (
	"context"
	"errors"
	"testing"

	"expensepro/internal/models"
	"expensepro/internal/store"
)

func categoryFixture() stubCategoryStore {
	return stubCategoryStore{
		getFn: func(_ context.Context, id int64) (models.Category, error) {
			switch id {
			case 1:
				return models.Category{ID: 1, Name: "Office Expenses", Type: models.CategoryExpense}, nil
			case 7:
				return models.Category{ID: 7, Name: "Sales Revenue", Type: models.CategoryIncome}, nil
			}
			return models.Category{}, store.ErrNotFound
		},
	}
}

func TestCategoryCreate(t *testing.T) {
	parent := int64(1)
	categories := categoryFixture()
	categories.createFn = func(_ context.Context, _ store.Execer, category models.Category) (int64, error) {
		if category.ParentID == nil || *category.ParentID != 1 {
			t.Fatalf("parent not stored: %#v", category)
		}
		return 9, nil
	}
	svc := NewCategoryService(fakeTxRunner{}, categories, stubLogStore{})
	category, err := svc.Create(context.Background(), CategoryRequest{
		Actor: "root", Name: "Stationery", Type: models.CategoryExpense, ParentID: &parent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.ID != 9 {
		t.Fatalf("expected assigned id 9, got %d", category.ID)
	}
}

func TestCategoryCreateValidation(t *testing.T) {
	svc := NewCategoryService(fakeTxRunner{}, categoryFixture(), stubLogStore{})
	missingParent := int64(99)
	crossType := int64(7)
	cases := []struct {
		name string
		req  CategoryRequest
	}{
		{"empty name", CategoryRequest{Actor: "root", Type: models.CategoryExpense}},
		{"bad type", CategoryRequest{Actor: "root", Name: "X", Type: "Expense"}},
		{"missing parent", CategoryRequest{Actor: "root", Name: "X", Type: models.CategoryExpense, ParentID: &missingParent}},
		{"cross-type parent", CategoryRequest{Actor: "root", Name: "X", Type: models.CategoryExpense, ParentID: &crossType}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tc.req); !errors.Is(err, ErrInvalidCategory) {
				t.Fatalf("expected ErrInvalidCategory, got %v", err)
			}
		})
	}
}

func TestCategoryUpdateRejectsSelfParent(t *testing.T) {
	self := int64(1)
	svc := NewCategoryService(fakeTxRunner{}, categoryFixture(), stubLogStore{})
	_, err := svc.Update(context.Background(), CategoryRequest{
		Actor: "root", ID: 1, Name: "Office Expenses", Type: models.CategoryExpense, ParentID: &self,
	})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestCategoryListRejectsUnknownType(t *testing.T) {
	svc := NewCategoryService(fakeTxRunner{}, categoryFixture(), stubLogStore{})
	if _, err := svc.List(context.Background(), "Expense"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("category types are lowercase, got %v", err)
	}
	if _, err := svc.List(context.Background(), ""); err != nil {
		t.Fatalf("empty type lists everything, got %v", err)
	}
}
