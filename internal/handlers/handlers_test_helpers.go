package handlers

import (
	"context"
	"io"

	"expensepro/internal/config"
	"expensepro/internal/logging"
	"expensepro/internal/middleware"
	"expensepro/internal/models"
	"expensepro/internal/services"
	"expensepro/internal/store"
	"expensepro/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubRoles struct {
	roleFn func(ctx context.Context, username string) (string, error)
}

func (s stubRoles) Role(ctx context.Context, username string) (string, error) {
	if s.roleFn == nil {
		return models.RoleUser, nil
	}
	return s.roleFn(ctx, username)
}

type stubAuthService struct {
	loginFn          func(ctx context.Context, username, password string) (string, models.User, error)
	logoutFn         func(ctx context.Context, username string) error
	meFn             func(ctx context.Context, username string) (models.User, error)
	changePasswordFn func(ctx context.Context, username, current, updated string) error
}

func (s stubAuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	if s.loginFn == nil {
		return "", models.User{}, services.ErrInvalidCredentials
	}
	return s.loginFn(ctx, username, password)
}

func (s stubAuthService) Logout(ctx context.Context, username string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, username)
}

func (s stubAuthService) Me(ctx context.Context, username string) (models.User, error) {
	if s.meFn == nil {
		return models.User{Username: username}, nil
	}
	return s.meFn(ctx, username)
}

func (s stubAuthService) ChangePassword(ctx context.Context, username, current, updated string) error {
	if s.changePasswordFn == nil {
		return nil
	}
	return s.changePasswordFn(ctx, username, current, updated)
}

type stubTransactionService struct {
	createFn        func(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error)
	updateFn        func(ctx context.Context, req services.UpdateTransactionRequest) (models.Transaction, error)
	deleteFn        func(ctx context.Context, actor, id string) error
	setStatusFn     func(ctx context.Context, actor, id, status, comment string) (models.Transaction, error)
	getFn           func(ctx context.Context, actor, id string) (models.Transaction, error)
	listFn          func(ctx context.Context, actor string, filter store.TransactionFilter) ([]models.Transaction, error)
	bulkSetStatusFn func(ctx context.Context, actor string, ids []string, status string) []services.BulkResult
	bulkDeleteFn    func(ctx context.Context, actor string, ids []string) []services.BulkResult
}

func (s stubTransactionService) Create(ctx context.Context, req services.CreateTransactionRequest) (models.Transaction, error) {
	if s.createFn == nil {
		return models.Transaction{}, nil
	}
	return s.createFn(ctx, req)
}

func (s stubTransactionService) Update(ctx context.Context, req services.UpdateTransactionRequest) (models.Transaction, error) {
	if s.updateFn == nil {
		return models.Transaction{}, nil
	}
	return s.updateFn(ctx, req)
}

func (s stubTransactionService) Delete(ctx context.Context, actor, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, actor, id)
}

func (s stubTransactionService) SetStatus(ctx context.Context, actor, id, status, comment string) (models.Transaction, error) {
	if s.setStatusFn == nil {
		return models.Transaction{}, nil
	}
	return s.setStatusFn(ctx, actor, id, status, comment)
}

func (s stubTransactionService) Get(ctx context.Context, actor, id string) (models.Transaction, error) {
	if s.getFn == nil {
		return models.Transaction{}, store.ErrNotFound
	}
	return s.getFn(ctx, actor, id)
}

func (s stubTransactionService) List(ctx context.Context, actor string, filter store.TransactionFilter) ([]models.Transaction, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, actor, filter)
}

func (s stubTransactionService) BulkSetStatus(ctx context.Context, actor string, ids []string, status string) []services.BulkResult {
	if s.bulkSetStatusFn == nil {
		return nil
	}
	return s.bulkSetStatusFn(ctx, actor, ids, status)
}

func (s stubTransactionService) BulkDelete(ctx context.Context, actor string, ids []string) []services.BulkResult {
	if s.bulkDeleteFn == nil {
		return nil
	}
	return s.bulkDeleteFn(ctx, actor, ids)
}

type stubUserService struct {
	createFn        func(ctx context.Context, req services.CreateUserRequest) (models.User, error)
	updateFn        func(ctx context.Context, req services.UpdateUserRequest) (models.User, error)
	updateProfileFn func(ctx context.Context, req services.UpdateProfileRequest) (models.User, error)
	deleteFn        func(ctx context.Context, actor, username string) error
	listFn          func(ctx context.Context) ([]models.User, error)
	getFn           func(ctx context.Context, username string) (models.User, error)
}

func (s stubUserService) UpdateProfile(ctx context.Context, req services.UpdateProfileRequest) (models.User, error) {
	if s.updateProfileFn == nil {
		return models.User{}, nil
	}
	return s.updateProfileFn(ctx, req)
}

func (s stubUserService) Create(ctx context.Context, req services.CreateUserRequest) (models.User, error) {
	if s.createFn == nil {
		return models.User{}, nil
	}
	return s.createFn(ctx, req)
}

func (s stubUserService) Update(ctx context.Context, req services.UpdateUserRequest) (models.User, error) {
	if s.updateFn == nil {
		return models.User{}, nil
	}
	return s.updateFn(ctx, req)
}

func (s stubUserService) Delete(ctx context.Context, actor, username string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, actor, username)
}

func (s stubUserService) List(ctx context.Context) ([]models.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubUserService) Get(ctx context.Context, username string) (models.User, error) {
	if s.getFn == nil {
		return models.User{}, store.ErrNotFound
	}
	return s.getFn(ctx, username)
}

type stubSettingsService struct {
	getFn  func(ctx context.Context, key string) (models.Setting, error)
	listFn func(ctx context.Context) ([]models.Setting, error)
	setFn  func(ctx context.Context, actor, key, value string) error
}

func (s stubSettingsService) Get(ctx context.Context, key string) (models.Setting, error) {
	if s.getFn == nil {
		return models.Setting{}, store.ErrNotFound
	}
	return s.getFn(ctx, key)
}

func (s stubSettingsService) List(ctx context.Context) ([]models.Setting, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubSettingsService) Set(ctx context.Context, actor, key, value string) error {
	if s.setFn == nil {
		return nil
	}
	return s.setFn(ctx, actor, key, value)
}

type stubCategoryService struct {
	createFn func(ctx context.Context, req services.CategoryRequest) (models.Category, error)
	updateFn func(ctx context.Context, req services.CategoryRequest) (models.Category, error)
	deleteFn func(ctx context.Context, actor string, id int64) error
	listFn   func(ctx context.Context, categoryType string) ([]models.Category, error)
}

func (s stubCategoryService) Create(ctx context.Context, req services.CategoryRequest) (models.Category, error) {
	if s.createFn == nil {
		return models.Category{}, nil
	}
	return s.createFn(ctx, req)
}

func (s stubCategoryService) Update(ctx context.Context, req services.CategoryRequest) (models.Category, error) {
	if s.updateFn == nil {
		return models.Category{}, nil
	}
	return s.updateFn(ctx, req)
}

func (s stubCategoryService) Delete(ctx context.Context, actor string, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, actor, id)
}

func (s stubCategoryService) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, categoryType)
}

type stubStatsService struct {
	forUserFn func(ctx context.Context, actor string, filter store.TransactionFilter) (services.Stats, error)
	systemFn  func(ctx context.Context) (services.AdminStats, error)
}

func (s stubStatsService) ForUser(ctx context.Context, actor string, filter store.TransactionFilter) (services.Stats, error) {
	if s.forUserFn == nil {
		return services.Stats{}, nil
	}
	return s.forUserFn(ctx, actor, filter)
}

func (s stubStatsService) System(ctx context.Context) (services.AdminStats, error) {
	if s.systemFn == nil {
		return services.AdminStats{}, nil
	}
	return s.systemFn(ctx)
}

type stubBackupService struct {
	exportFn    func(ctx context.Context, actor string) (services.Snapshot, error)
	importFn    func(ctx context.Context, actor string, snapshot services.Snapshot) error
	clearDataFn func(ctx context.Context, actor, scope string) error
}

func (s stubBackupService) Export(ctx context.Context, actor string) (services.Snapshot, error) {
	if s.exportFn == nil {
		return services.Snapshot{}, nil
	}
	return s.exportFn(ctx, actor)
}

func (s stubBackupService) Import(ctx context.Context, actor string, snapshot services.Snapshot) error {
	if s.importFn == nil {
		return nil
	}
	return s.importFn(ctx, actor, snapshot)
}

func (s stubBackupService) ClearData(ctx context.Context, actor, scope string) error {
	if s.clearDataFn == nil {
		return nil
	}
	return s.clearDataFn(ctx, actor, scope)
}

type stubExportService struct {
	transactionsCSVFn func(ctx context.Context, actor string, filter store.TransactionFilter, w io.Writer) error
	logsCSVFn         func(ctx context.Context, actor string, filter store.LogFilter, w io.Writer) error
}

func (s stubExportService) TransactionsCSV(ctx context.Context, actor string, filter store.TransactionFilter, w io.Writer) error {
	if s.transactionsCSVFn == nil {
		return nil
	}
	return s.transactionsCSVFn(ctx, actor, filter, w)
}

func (s stubExportService) LogsCSV(ctx context.Context, actor string, filter store.LogFilter, w io.Writer) error {
	if s.logsCSVFn == nil {
		return nil
	}
	return s.logsCSVFn(ctx, actor, filter, w)
}

type stubFileService struct {
	uploadFn func(ctx context.Context, req services.UploadRequest) (models.File, error)
	getFn    func(ctx context.Context, id string) (models.File, error)
	listFn   func(ctx context.Context) ([]models.File, error)
	deleteFn func(ctx context.Context, actor, id string) error
}

func (s stubFileService) Upload(ctx context.Context, req services.UploadRequest) (models.File, error) {
	if s.uploadFn == nil {
		return models.File{}, nil
	}
	return s.uploadFn(ctx, req)
}

func (s stubFileService) Get(ctx context.Context, id string) (models.File, error) {
	if s.getFn == nil {
		return models.File{}, store.ErrNotFound
	}
	return s.getFn(ctx, id)
}

func (s stubFileService) List(ctx context.Context) ([]models.File, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubFileService) Delete(ctx context.Context, actor, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, actor, id)
}

type stubLogStore struct {
	listFn  func(ctx context.Context, filter store.LogFilter) ([]models.LogEntry, error)
	clearFn func(ctx context.Context, tx store.Execer) error
}

func (s stubLogStore) List(ctx context.Context, filter store.LogFilter) ([]models.LogEntry, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, filter)
}

func (s stubLogStore) Clear(ctx context.Context, tx store.Execer) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx, tx)
}

// testHandlerOverrides names the collaborators a test cares about; the
// rest default to inert stubs.
type testHandlerOverrides struct {
	roles        middleware.RoleStore
	authService  AuthService
	transactions TransactionService
	userService  UserService
	settings     SettingsService
	categories   CategoryService
	stats        StatsService
	backup       BackupService
	export       ExportService
	files        FileService
	logStore     LogStore
	txRunner     fakeTxRunner
}

func newTestHandler(overrides testHandlerOverrides) *Handler {
	cfg := config.Config{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: 60,
		AllowedOrigins:  "*",
	}
	if overrides.roles == nil {
		overrides.roles = stubRoles{}
	}
	if overrides.authService == nil {
		overrides.authService = stubAuthService{}
	}
	if overrides.transactions == nil {
		overrides.transactions = stubTransactionService{}
	}
	if overrides.userService == nil {
		overrides.userService = stubUserService{}
	}
	if overrides.settings == nil {
		overrides.settings = stubSettingsService{}
	}
	if overrides.categories == nil {
		overrides.categories = stubCategoryService{}
	}
	if overrides.stats == nil {
		overrides.stats = stubStatsService{}
	}
	if overrides.backup == nil {
		overrides.backup = stubBackupService{}
	}
	if overrides.export == nil {
		overrides.export = stubExportService{}
	}
	if overrides.files == nil {
		overrides.files = stubFileService{}
	}
	if overrides.logStore == nil {
		overrides.logStore = stubLogStore{}
	}
	return New(cfg, logging.New("disabled"), overrides.txRunner, overrides.roles,
		overrides.authService, overrides.transactions, overrides.userService,
		overrides.settings, overrides.categories, overrides.stats,
		overrides.backup, overrides.export, overrides.files,
		overrides.logStore, websocket.NewHub())
}
