package services

import (
	"context"
	"sync"

	"expensepro/internal/models"
	"expensepro/internal/store"
	"expensepro/internal/websocket"

	"github.com/jmoiron/sqlx"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn          func(ctx context.Context, tx store.Execer, user models.User) error
	getByUsernameFn   func(ctx context.Context, username string) (models.User, error)
	roleFn            func(ctx context.Context, username string) (string, error)
	listFn            func(ctx context.Context) ([]models.User, error)
	updateFn          func(ctx context.Context, tx store.Execer, user models.User) error
	updateLastLoginFn func(ctx context.Context, tx store.Execer, username, timestamp string) error
	deleteFn          func(ctx context.Context, tx store.Execer, username string) error
	clearFn           func(ctx context.Context, tx store.Execer) error
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, user models.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, user)
}

func (s stubUserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if s.getByUsernameFn == nil {
		return models.User{Username: username, Role: models.RoleUser}, nil
	}
	return s.getByUsernameFn(ctx, username)
}

func (s stubUserStore) Role(ctx context.Context, username string) (string, error) {
	if s.roleFn == nil {
		return models.RoleUser, nil
	}
	return s.roleFn(ctx, username)
}

func (s stubUserStore) List(ctx context.Context) ([]models.User, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubUserStore) Update(ctx context.Context, tx store.Execer, user models.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, user)
}

func (s stubUserStore) UpdateLastLogin(ctx context.Context, tx store.Execer, username, timestamp string) error {
	if s.updateLastLoginFn == nil {
		return nil
	}
	return s.updateLastLoginFn(ctx, tx, username, timestamp)
}

func (s stubUserStore) Delete(ctx context.Context, tx store.Execer, username string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, username)
}

func (s stubUserStore) Clear(ctx context.Context, tx store.Execer) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx, tx)
}

type stubTxnStore struct {
	createFn       func(ctx context.Context, tx store.Execer, txn models.Transaction) error
	getFn          func(ctx context.Context, id string) (models.Transaction, error)
	listFn         func(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error)
	updateFn       func(ctx context.Context, tx store.Execer, txn models.Transaction) error
	deleteFn       func(ctx context.Context, tx store.Execer, id string) error
	deleteByUserFn func(ctx context.Context, tx store.Execer, userID string) (int64, error)
	clearFn        func(ctx context.Context, tx store.Execer) error
}

func (s stubTxnStore) Create(ctx context.Context, tx store.Execer, txn models.Transaction) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, txn)
}

func (s stubTxnStore) Get(ctx context.Context, id string) (models.Transaction, error) {
	if s.getFn == nil {
		return models.Transaction{}, store.ErrNotFound
	}
	return s.getFn(ctx, id)
}

func (s stubTxnStore) List(ctx context.Context, filter store.TransactionFilter) ([]models.Transaction, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, filter)
}

func (s stubTxnStore) Update(ctx context.Context, tx store.Execer, txn models.Transaction) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, txn)
}

func (s stubTxnStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

func (s stubTxnStore) DeleteByUser(ctx context.Context, tx store.Execer, userID string) (int64, error) {
	if s.deleteByUserFn == nil {
		return 0, nil
	}
	return s.deleteByUserFn(ctx, tx, userID)
}

func (s stubTxnStore) Clear(ctx context.Context, tx store.Execer) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx, tx)
}

type stubSettingStore struct {
	getFn   func(ctx context.Context, key string) (models.Setting, error)
	listFn  func(ctx context.Context) ([]models.Setting, error)
	setFn   func(ctx context.Context, tx store.Execer, key, value string) error
	clearFn func(ctx context.Context, tx store.Execer) error
}

func (s stubSettingStore) Get(ctx context.Context, key string) (models.Setting, error) {
	if s.getFn == nil {
		return models.Setting{}, store.ErrNotFound
	}
	return s.getFn(ctx, key)
}

func (s stubSettingStore) List(ctx context.Context) ([]models.Setting, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubSettingStore) Set(ctx context.Context, tx store.Execer, key, value string) error {
	if s.setFn == nil {
		return nil
	}
	return s.setFn(ctx, tx, key, value)
}

func (s stubSettingStore) Clear(ctx context.Context, tx store.Execer) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx, tx)
}

type stubCategoryStore struct {
	createFn func(ctx context.Context, tx store.Execer, category models.Category) (int64, error)
	getFn    func(ctx context.Context, id int64) (models.Category, error)
	listFn   func(ctx context.Context, categoryType string) ([]models.Category, error)
	updateFn func(ctx context.Context, tx store.Execer, category models.Category) error
	deleteFn func(ctx context.Context, tx store.Execer, id int64) error
	clearFn  func(ctx context.Context, tx store.Execer) error
}

func (s stubCategoryStore) Create(ctx context.Context, tx store.Execer, category models.Category) (int64, error) {
	if s.createFn == nil {
		return 1, nil
	}
	return s.createFn(ctx, tx, category)
}

func (s stubCategoryStore) Get(ctx context.Context, id int64) (models.Category, error) {
	if s.getFn == nil {
		return models.Category{}, store.ErrNotFound
	}
	return s.getFn(ctx, id)
}

func (s stubCategoryStore) List(ctx context.Context, categoryType string) ([]models.Category, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, categoryType)
}

func (s stubCategoryStore) Update(ctx context.Context, tx store.Execer, category models.Category) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, tx, category)
}

func (s stubCategoryStore) Delete(ctx context.Context, tx store.Execer, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

func (s stubCategoryStore) Clear(ctx context.Context, tx store.Execer) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx, tx)
}

type stubLogStore struct {
	appendFn func(ctx context.Context, tx store.Execer, userID, action, details, timestamp string) error
	insertFn func(ctx context.Context, tx store.Execer, entry models.LogEntry) error
	listFn   func(ctx context.Context, filter store.LogFilter) ([]models.LogEntry, error)
	clearFn  func(ctx context.Context, tx store.Execer) error
}

func (s stubLogStore) Append(ctx context.Context, tx store.Execer, userID, action, details, timestamp string) error {
	if s.appendFn == nil {
		return nil
	}
	return s.appendFn(ctx, tx, userID, action, details, timestamp)
}

func (s stubLogStore) Insert(ctx context.Context, tx store.Execer, entry models.LogEntry) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, entry)
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

type stubFileStore struct {
	createFn func(ctx context.Context, tx store.Execer, file models.File) error
	getFn    func(ctx context.Context, id string) (models.File, error)
	listFn   func(ctx context.Context) ([]models.File, error)
	deleteFn func(ctx context.Context, tx store.Execer, id string) error
	clearFn  func(ctx context.Context, tx store.Execer) error
}

func (s stubFileStore) Create(ctx context.Context, tx store.Execer, file models.File) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, file)
}

func (s stubFileStore) Get(ctx context.Context, id string) (models.File, error) {
	if s.getFn == nil {
		return models.File{}, store.ErrNotFound
	}
	return s.getFn(ctx, id)
}

func (s stubFileStore) List(ctx context.Context) ([]models.File, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubFileStore) Delete(ctx context.Context, tx store.Execer, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, id)
}

func (s stubFileStore) Clear(ctx context.Context, tx store.Execer) error {
	if s.clearFn == nil {
		return nil
	}
	return s.clearFn(ctx, tx)
}

type recordHub struct {
	mu      sync.Mutex
	updates map[string][]websocket.TransactionUpdate
}

func newRecordHub() *recordHub {
	return &recordHub{updates: make(map[string][]websocket.TransactionUpdate)}
}

func (h *recordHub) BroadcastTransaction(username string, update websocket.TransactionUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updates[username] = append(h.updates[username], update)
}

func adminRole(username string) stubUserStore {
	return stubUserStore{
		roleFn: func(_ context.Context, u string) (string, error) {
			if u == username {
				return models.RoleAdmin, nil
			}
			return models.RoleUser, nil
		},
	}
}
