package store

import (
	"context"

	"expensepro/internal/models"
)

// SettingStore maps setting keys to raw JSON values.
type SettingStore struct {
	db DB
}

func NewSettingStore(db DB) *SettingStore {
	return &SettingStore{db: db}
}

func (s *SettingStore) Get(ctx context.Context, key string) (models.Setting, error) {
	if s.db == nil {
		return models.Setting{}, ErrNotReady
	}
	var setting models.Setting
	err := s.db.GetContext(ctx, &setting, `SELECT key, value FROM settings WHERE key = $1`, key)
	return setting, mapReadErr(err)
}

func (s *SettingStore) List(ctx context.Context) ([]models.Setting, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	var settings []models.Setting
	err := s.db.SelectContext(ctx, &settings, `SELECT key, value FROM settings ORDER BY key`)
	return settings, err
}

// Set upserts; settings have no create/update distinction.
func (s *SettingStore) Set(ctx context.Context, tx Execer, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`
	_, err := tx.ExecContext(ctx, query, key, value)
	return err
}

func (s *SettingStore) Delete(ctx context.Context, tx Execer, key string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE key = $1`, key)
	return err
}

func (s *SettingStore) Clear(ctx context.Context, tx Execer) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM settings`)
	return err
}
