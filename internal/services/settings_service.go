package services

import (
	"context"
	"encoding/json"

	"expensepro/internal/db"
	"expensepro/internal/models"

	"github.com/jmoiron/sqlx"
)

type SettingsService struct {
	txRunner db.TxRunner
	settings SettingStore
	logStore LogStore
}

func NewSettingsService(txRunner db.TxRunner, settings SettingStore, logStore LogStore) *SettingsService {
	return &SettingsService{
		txRunner: txRunner,
		settings: settings,
		logStore: logStore,
	}
}

func (s *SettingsService) Get(ctx context.Context, key string) (models.Setting, error) {
	return s.settings.Get(ctx, key)
}

func (s *SettingsService) List(ctx context.Context) ([]models.Setting, error) {
	return s.settings.List(ctx)
}

// Set stores value under key. Values are raw JSON; anything that does
// not parse is rejected before it reaches the store.
func (s *SettingsService) Set(ctx context.Context, actor, key, value string) error {
	if !json.Valid([]byte(value)) {
		return ErrInvalidSetting
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.settings.Set(ctx, tx, key, value); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, actor, models.ActionSettingsUpdate,
			"Updated setting "+key, nowRFC3339())
	})
}
