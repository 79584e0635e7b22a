package handlers

import (
	"context"
	"io"

	"expensepro/internal/models"
	"expensepro/internal/services"
	"expensepro/internal/store"
)

// Service contracts the handlers consume. Declared here so handler tests
// can stub each surface independently.

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, models.User, error)
	Logout(ctx context.Context, username string) error
	Me(ctx context.Context, username string) (models.User, error)
	ChangePassword(ctx context.Context, username, current, updated string) error
}

type TransactionService interface {
	Create(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error)
	Update(ctx context.Context, req services.UpdateTransactionRequest) (models.Transaction, error)
	Delete(ctx context.Context, actor, id string) error
	SetStatus(ctx context.Context, actor, id, status, comment string) (models.Transaction, error)
	Get(ctx context.Context, actor, id string) (models.Transaction, error)
	List(ctx context.Context, actor string, filter store.TransactionFilter) ([]models.Transaction, error)
	BulkSetStatus(ctx context.Context, actor string, ids []string, status string) []services.BulkResult
	BulkDelete(ctx context.Context, actor string, ids []string) []services.BulkResult
}

type UserService interface {
	Create(ctx context.Context, req services.CreateUserRequest) (models.User, error)
	Update(ctx context.Context, req services.UpdateUserRequest) (models.User, error)
	UpdateProfile(ctx context.Context, req services.UpdateProfileRequest) (models.User, error)
	Delete(ctx context.Context, actor, username string) error
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, username string) (models.User, error)
}

type SettingsService interface {
	Get(ctx context.Context, key string) (models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
	Set(ctx context.Context, actor, key, value string) error
}

type CategoryService interface {
	Create(ctx context.Context, req services.CategoryRequest) (models.Category, error)
	Update(ctx context.Context, req services.CategoryRequest) (models.Category, error)
	Delete(ctx context.Context, actor string, id int64) error
	List(ctx context.Context, categoryType string) ([]models.Category, error)
}

type StatsService interface {
	ForUser(ctx context.Context, actor string, filter store.TransactionFilter) (services.Stats, error)
	System(ctx context.Context) (services.AdminStats, error)
}

type BackupService interface {
	Export(ctx context.Context, actor string) (services.Snapshot, error)
	Import(ctx context.Context, actor string, snapshot services.Snapshot) error
	ClearData(ctx context.Context, actor, scope string) error
}

type ExportService interface {
	TransactionsCSV(ctx context.Context, actor string, filter store.TransactionFilter, w io.Writer) error
	LogsCSV(ctx context.Context, actor string, filter store.LogFilter, w io.Writer) error
}

type FileService interface {
	Upload(ctx context.Context, req services.UploadRequest) (models.File, error)
	Get(ctx context.Context, id string) (models.File, error)
	List(ctx context.Context) ([]models.File, error)
	Delete(ctx context.Context, actor, id string) error
}

// LogStore is used directly for log listing and clearing; those are plain
// store operations with no workflow around them.
type LogStore interface {
	List(ctx context.Context, filter store.LogFilter) ([]models.LogEntry, error)
	Clear(ctx context.Context, tx store.Execer) error
}
