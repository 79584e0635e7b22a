package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/money"
	"expensepro/internal/store"

	"github.com/jmoiron/sqlx"
)

// ExportService renders transaction and log sets as CSV.
type ExportService struct {
	txRunner db.TxRunner
	users    UserStore
	txStore  TransactionStore
	logStore LogStore
}

func NewExportService(txRunner db.TxRunner, users UserStore, txStore TransactionStore, logStore LogStore) *ExportService {
	return &ExportService{
		txRunner: txRunner,
		users:    users,
		txStore:  txStore,
		logStore: logStore,
	}
}

var transactionHeader = []string{
	"Date", "Type", "Category", "Description", "Amount",
	"Status", "Approver", "Created By", "Created At", "Last Modified",
}

// TransactionsCSV writes the actor-visible transactions matching filter.
// Non-admins export only their own records.
func (s *ExportService) TransactionsCSV(ctx context.Context, actor string, filter store.TransactionFilter, w io.Writer) error {
	role, err := s.users.Role(ctx, actor)
	if err != nil {
		return err
	}
	if role != models.RoleAdmin {
		filter.UserID = actor
	}
	txns, err := s.txStore.List(ctx, filter)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(transactionHeader); err != nil {
		return err
	}
	for _, txn := range txns {
		record := []string{
			txn.Date, txn.Type, txn.Category, txn.Description,
			money.FormatMinor(txn.Amount), txn.Status, txn.Approver,
			txn.CreatedBy, txn.CreatedAt, txn.LastModified,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		details := fmt.Sprintf("Exported %d transactions to CSV", len(txns))
		return s.logStore.Append(ctx, tx, actor, models.ActionDataExport, details, nowRFC3339())
	})
}

var logHeader = []string{"Timestamp", "User", "Action", "Details"}

func (s *ExportService) LogsCSV(ctx context.Context, actor string, filter store.LogFilter, w io.Writer) error {
	entries, err := s.logStore.List(ctx, filter)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(logHeader); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writer.Write([]string{entry.Timestamp, entry.UserID, entry.Action, entry.Details}); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		details := fmt.Sprintf("Exported %d log entries to CSV", len(entries))
		return s.logStore.Append(ctx, tx, actor, models.ActionDataExport, details, nowRFC3339())
	})
}
