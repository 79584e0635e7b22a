package store

import (
	"context"
	"fmt"

	"expensepro/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// TransactionFilter is a conjunction of optional predicates; zero values
// impose no constraint. Month is 1-12.
type TransactionFilter struct {
	UserID    string
	Type      string
	Status    string
	Approver  string
	CreatedBy string
	Month     int
	Year      int
	DateStart string
	DateEnd   string
}

const transactionColumns = `id, user_id, type, amount, date, description, category, cost_center, ledger, approver, status, attachments, comments, created_by, created_at, last_modified`

func (s *TransactionStore) Create(ctx context.Context, tx Execer, txn models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, date, description, category, cost_center, ledger, approver, status, attachments, comments, created_by, created_at, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := tx.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.Type, txn.Amount, txn.Date, txn.Description,
		txn.Category, txn.CostCenter, txn.Ledger, txn.Approver, txn.Status,
		txn.Attachments, txn.Comments, txn.CreatedBy, txn.CreatedAt, txn.LastModified,
	)
	return mapWriteErr(err)
}

func (s *TransactionStore) Get(ctx context.Context, id string) (models.Transaction, error) {
	if s.db == nil {
		return models.Transaction{}, ErrNotReady
	}
	var txn models.Transaction
	err := s.db.GetContext(ctx, &txn, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return txn, mapReadErr(err)
}

// List applies the filter in SQL and returns newest-date first, with
// created_at then id as deterministic tiebreaks.
func (s *TransactionStore) List(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}
	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.Approver != "" {
		add("approver = $%d", filter.Approver)
	}
	if filter.CreatedBy != "" {
		add("created_by = $%d", filter.CreatedBy)
	}
	if filter.Month != 0 {
		add("CAST(strftime('%%m', date) AS INTEGER) = $%d", filter.Month)
	}
	if filter.Year != 0 {
		add("CAST(strftime('%%Y', date) AS INTEGER) = $%d", filter.Year)
	}
	if filter.DateStart != "" {
		add("date >= $%d", filter.DateStart)
	}
	if filter.DateEnd != "" {
		add("date <= $%d", filter.DateEnd)
	}
	query += ` ORDER BY date DESC, created_at DESC, id DESC`
	var txns []models.Transaction
	err := s.db.SelectContext(ctx, &txns, query, args...)
	return txns, err
}

// Update upserts by id.
func (s *TransactionStore) Update(ctx context.Context, tx Execer, txn models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, date, description, category, cost_center, ledger, approver, status, attachments, comments, created_by, created_at, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			type = excluded.type,
			amount = excluded.amount,
			date = excluded.date,
			description = excluded.description,
			category = excluded.category,
			cost_center = excluded.cost_center,
			ledger = excluded.ledger,
			approver = excluded.approver,
			status = excluded.status,
			attachments = excluded.attachments,
			comments = excluded.comments,
			last_modified = excluded.last_modified
	`
	_, err := tx.ExecContext(ctx, query,
		txn.ID, txn.UserID, txn.Type, txn.Amount, txn.Date, txn.Description,
		txn.Category, txn.CostCenter, txn.Ledger, txn.Approver, txn.Status,
		txn.Attachments, txn.Comments, txn.CreatedBy, txn.CreatedAt, txn.LastModified,
	)
	return mapWriteErr(err)
}

func (s *TransactionStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

// DeleteByUser removes every transaction owned by userID and reports how
// many went away. Used by the user-deletion cascade.
func (s *TransactionStore) DeleteByUser(ctx context.Context, tx Execer, userID string) (int64, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *TransactionStore) Clear(ctx context.Context, tx Execer) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM transactions`)
	return err
}
