package services

import (
	"context"

	"expensepro/internal/models"
	"expensepro/internal/store"
	"expensepro/internal/websocket"
)

// Consumer-side store contracts. Services depend on exactly the methods
// they call so tests can stub them.

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, user models.User) error
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Role(ctx context.Context, username string) (string, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, tx store.Execer, user models.User) error
	UpdateLastLogin(ctx context.Context, tx store.Execer, username, timestamp string) error
	Delete(ctx context.Context, tx store.Execer, username string) error
	Clear(ctx context.Context, tx store.Execer) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, txn models.Transaction) error
	Get(ctx context.Context, id string) (models.Transaction, error)
	List(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error)
	Update(ctx context.Context, tx store.Execer, txn models.Transaction) error
	Delete(ctx context.Context, tx store.Execer, id string) error
	DeleteByUser(ctx context.Context, tx store.Execer, userID string) (int64, error)
	Clear(ctx context.Context, tx store.Execer) error
}

type SettingStore interface {
	Get(ctx context.Context, key string) (models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
	Set(ctx context.Context, tx store.Execer, key, value string) error
	Clear(ctx context.Context, tx store.Execer) error
}

type CategoryStore interface {
	Create(ctx context.Context, tx store.Execer, category models.Category) (int64, error)
	Get(ctx context.Context, id int64) (models.Category, error)
	List(ctx context.Context, categoryType string) ([]models.Category, error)
	Update(ctx context.Context, tx store.Execer, category models.Category) error
	Delete(ctx context.Context, tx store.Execer, id int64) error
	Clear(ctx context.Context, tx store.Execer) error
}

type LogStore interface {
	Append(ctx context.Context, tx store.Execer, userID, action, details, timestamp string) error
	Insert(ctx context.Context, tx store.Execer, entry models.LogEntry) error
	List(ctx context.Context, filter store.LogFilter) ([]models.LogEntry, error)
	Clear(ctx context.Context, tx store.Execer) error
}

type FileStore interface {
	Create(ctx context.Context, tx store.Execer, file models.File) error
	Get(ctx context.Context, id string) (models.File, error)
	List(ctx context.Context) ([]models.File, error)
	Delete(ctx context.Context, tx store.Execer, id string) error
	Clear(ctx context.Context, tx store.Execer) error
}

type TransactionHub interface {
	BroadcastTransaction(username string, update websocket.TransactionUpdate)
}
