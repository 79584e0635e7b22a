package store

import (
	"context"

	"expensepro/internal/models"
)

type CategoryStore struct {
	db DB
}

func NewCategoryStore(db DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, type, parent_id, color, icon, created_at`

// Create inserts a category. A zero ID lets the database assign one; a
// non-zero ID (snapshot restore) is kept as-is.
func (s *CategoryStore) Create(ctx context.Context, tx Execer, category models.Category) (int64, error) {
	if category.ID != 0 {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, type, parent_id, color, icon, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, category.ID, category.Name, category.Type, category.ParentID, category.Color, category.Icon, category.CreatedAt)
		return category.ID, mapWriteErr(err)
	}
	result, err := tx.ExecContext(ctx, `
		INSERT INTO categories (name, type, parent_id, color, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, category.Name, category.Type, category.ParentID, category.Color, category.Icon, category.CreatedAt)
	if err != nil {
		return 0, mapWriteErr(err)
	}
	return result.LastInsertId()
}

func (s *CategoryStore) Get(ctx context.Context, id int64) (models.Category, error) {
	if s.db == nil {
		return models.Category{}, ErrNotReady
	}
	var category models.Category
	err := s.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return category, mapReadErr(err)
}

// List returns all categories, or those of one type when categoryType is
// non-empty.
func (s *CategoryStore) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	var categories []models.Category
	if categoryType != "" {
		err := s.db.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM categories WHERE type = $1 ORDER BY id`, categoryType)
		return categories, err
	}
	err := s.db.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	return categories, err
}

func (s *CategoryStore) Update(ctx context.Context, tx Execer, category models.Category) error {
	query := `
		UPDATE categories SET name = $1, type = $2, parent_id = $3, color = $4, icon = $5
		WHERE id = $6
	`
	_, err := tx.ExecContext(ctx, query, category.Name, category.Type, category.ParentID, category.Color, category.Icon, category.ID)
	return mapWriteErr(err)
}

func (s *CategoryStore) Delete(ctx context.Context, tx Execer, id int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

func (s *CategoryStore) Clear(ctx context.Context, tx Execer) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM categories`)
	return err
}
