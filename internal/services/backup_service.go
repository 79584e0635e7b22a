package services

import (
	"context"
	"fmt"

	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/store"

	"github.com/jmoiron/sqlx"
)

// SnapshotUser carries the password hash that models.User hides from
// ordinary JSON responses. Restored accounts keep their credentials.
type SnapshotUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// Snapshot is the full-database backup document.
type Snapshot struct {
	Users        []SnapshotUser       `json:"users"`
	Transactions []models.Transaction `json:"transactions"`
	Settings     []models.Setting     `json:"settings"`
	Categories   []models.Category    `json:"categories"`
	Logs         []models.LogEntry    `json:"logs"`
	Files        []models.File        `json:"files"`
	ExportDate   string               `json:"exportDate"`
	Version      int                  `json:"version"`
}

type BackupService struct {
	txRunner   db.TxRunner
	users      UserStore
	txStore    TransactionStore
	settings   SettingStore
	categories CategoryStore
	logStore   LogStore
	files      FileStore
}

func NewBackupService(txRunner db.TxRunner, users UserStore, txStore TransactionStore, settings SettingStore, categories CategoryStore, logStore LogStore, files FileStore) *BackupService {
	return &BackupService{
		txRunner:   txRunner,
		users:      users,
		txStore:    txStore,
		settings:   settings,
		categories: categories,
		logStore:   logStore,
		files:      files,
	}
}

func (s *BackupService) Export(ctx context.Context, actor string) (Snapshot, error) {
	snapshot := Snapshot{
		ExportDate: nowRFC3339(),
		Version:    db.SchemaVersion,
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Users = make([]SnapshotUser, 0, len(users))
	for _, user := range users {
		snapshot.Users = append(snapshot.Users, SnapshotUser{User: user, PasswordHash: user.PasswordHash})
	}
	if snapshot.Transactions, err = s.txStore.List(ctx, store.TransactionFilter{}); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Settings, err = s.settings.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Categories, err = s.categories.List(ctx, ""); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Logs, err = s.logStore.List(ctx, store.LogFilter{}); err != nil {
		return Snapshot{}, err
	}
	if snapshot.Files, err = s.files.List(ctx); err != nil {
		return Snapshot{}, err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.logStore.Append(ctx, tx, actor, models.ActionDataExport, "Exported full backup", snapshot.ExportDate)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

// Import replaces the entire database with the snapshot in a single
// transaction, so a bad snapshot leaves the existing data untouched.
func (s *BackupService) Import(ctx context.Context, actor string, snapshot Snapshot) error {
	if snapshot.Version < 1 || snapshot.Version > db.SchemaVersion || len(snapshot.Users) == 0 {
		return ErrBadSnapshot
	}
	for _, txn := range snapshot.Transactions {
		if txn.Amount <= 0 || !models.ValidType(txn.Type) || !models.ValidStatus(txn.Status) {
			return ErrBadSnapshot
		}
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, clear := range []func(context.Context, store.Execer) error{
			s.txStore.Clear, s.files.Clear, s.logStore.Clear,
			s.categories.Clear, s.settings.Clear, s.users.Clear,
		} {
			if err := clear(ctx, tx); err != nil {
				return err
			}
		}
		for _, su := range snapshot.Users {
			user := su.User
			user.PasswordHash = su.PasswordHash
			if err := s.users.Create(ctx, tx, user); err != nil {
				return err
			}
		}
		for _, txn := range snapshot.Transactions {
			if err := s.txStore.Create(ctx, tx, txn); err != nil {
				return err
			}
		}
		for _, setting := range snapshot.Settings {
			if err := s.settings.Set(ctx, tx, setting.Key, setting.Value); err != nil {
				return err
			}
		}
		for _, category := range snapshot.Categories {
			if _, err := s.categories.Create(ctx, tx, category); err != nil {
				return err
			}
		}
		for _, entry := range snapshot.Logs {
			if err := s.logStore.Insert(ctx, tx, entry); err != nil {
				return err
			}
		}
		for _, file := range snapshot.Files {
			if err := s.files.Create(ctx, tx, file); err != nil {
				return err
			}
		}
		details := fmt.Sprintf("Restored backup from %s (%d transactions)", snapshot.ExportDate, len(snapshot.Transactions))
		return s.logStore.Append(ctx, tx, actor, models.ActionDataImport, details, nowRFC3339())
	})
}

// ClearData wipes the chosen collections. Accounts, settings, and the
// category tree always survive; only "all", "transactions", "logs", and
// "files" are recognized scopes.
func (s *BackupService) ClearData(ctx context.Context, actor, scope string) error {
	var clears []func(context.Context, store.Execer) error
	switch scope {
	case "all":
		clears = []func(context.Context, store.Execer) error{s.txStore.Clear, s.logStore.Clear, s.files.Clear}
	case "transactions":
		clears = []func(context.Context, store.Execer) error{s.txStore.Clear}
	case "logs":
		clears = []func(context.Context, store.Execer) error{s.logStore.Clear}
	case "files":
		clears = []func(context.Context, store.Execer) error{s.files.Clear}
	default:
		return ErrUnknownClearScope
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, clear := range clears {
			if err := clear(ctx, tx); err != nil {
				return err
			}
		}
		return s.logStore.Append(ctx, tx, actor, models.ActionDataClear, "Cleared data: "+scope, nowRFC3339())
	})
}
