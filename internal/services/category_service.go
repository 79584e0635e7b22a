package services

import (
	"context"
	"errors"

	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/store"

	"github.com/jmoiron/sqlx"
)

type CategoryService struct {
	txRunner   db.TxRunner
	categories CategoryStore
	logStore   LogStore
}

func NewCategoryService(txRunner db.TxRunner, categories CategoryStore, logStore LogStore) *CategoryService {
	return &CategoryService{
		txRunner:   txRunner,
		categories: categories,
		logStore:   logStore,
	}
}

type CategoryRequest struct {
	Actor    string
	ID       int64 // only for Update
	Name     string
	Type     string
	ParentID *int64
	Color    string
	Icon     string
}

func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (models.Category, error) {
	if err := s.validate(ctx, req); err != nil {
		return models.Category{}, err
	}
	category := models.Category{
		Name:      req.Name,
		Type:      req.Type,
		ParentID:  req.ParentID,
		Color:     req.Color,
		Icon:      req.Icon,
		CreatedAt: nowRFC3339(),
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.categories.Create(ctx, tx, category)
		if err != nil {
			return err
		}
		category.ID = id
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionSettingsUpdate,
			"Created category "+category.Name, category.CreatedAt)
	})
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, req CategoryRequest) (models.Category, error) {
	if err := s.validate(ctx, req); err != nil {
		return models.Category{}, err
	}
	category, err := s.categories.Get(ctx, req.ID)
	if err != nil {
		return models.Category{}, err
	}
	if req.ParentID != nil && *req.ParentID == category.ID {
		return models.Category{}, ErrInvalidCategory
	}
	category.Name = req.Name
	category.Type = req.Type
	category.ParentID = req.ParentID
	category.Color = req.Color
	category.Icon = req.Icon
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.categories.Update(ctx, tx, category); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionSettingsUpdate,
			"Updated category "+category.Name, nowRFC3339())
	})
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, actor string, id int64) error {
	if _, err := s.categories.Get(ctx, id); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.categories.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, actor, models.ActionSettingsUpdate,
			"Deleted category", nowRFC3339())
	})
}

func (s *CategoryService) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	if categoryType != "" && !models.ValidCategoryType(categoryType) {
		return nil, ErrInvalidCategory
	}
	return s.categories.List(ctx, categoryType)
}

// validate checks the type and, when a parent is named, that the parent
// exists and carries the same type.
func (s *CategoryService) validate(ctx context.Context, req CategoryRequest) error {
	if req.Name == "" || !models.ValidCategoryType(req.Type) {
		return ErrInvalidCategory
	}
	if req.ParentID == nil {
		return nil
	}
	parent, err := s.categories.Get(ctx, *req.ParentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	if parent.Type != req.Type {
		return ErrInvalidCategory
	}
	return nil
}
