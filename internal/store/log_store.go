package store

import (
	"context"
	"fmt"

	"expensepro/internal/models"
)

// LogStore is the append-only activity log. Entries are written inside the
// same transaction as the mutation they record and are never updated.
type LogStore struct {
	db DB
}

func NewLogStore(db DB) *LogStore {
	return &LogStore{db: db}
}

type LogFilter struct {
	UserID    string
	Action    string
	StartTime string
	EndTime   string
}

func (s *LogStore) Append(ctx context.Context, tx Execer, userID, action, details, timestamp string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO logs (user_id, action, details, timestamp)
		VALUES ($1, $2, $3, $4)
	`, userID, action, details, timestamp)
	return err
}

// Insert keeps an explicit id; used only by snapshot restore.
func (s *LogStore) Insert(ctx context.Context, tx Execer, entry models.LogEntry) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO logs (id, user_id, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.UserID, entry.Action, entry.Details, entry.Timestamp)
	return mapWriteErr(err)
}

func (s *LogStore) List(ctx context.Context, filter LogFilter) ([]models.LogEntry, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	query := `SELECT id, user_id, action, details, timestamp FROM logs WHERE 1=1`
	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}
	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.Action != "" {
		add("action = $%d", filter.Action)
	}
	if filter.StartTime != "" {
		add("timestamp >= $%d", filter.StartTime)
	}
	if filter.EndTime != "" {
		add("timestamp <= $%d", filter.EndTime)
	}
	query += ` ORDER BY timestamp DESC, id DESC`
	var entries []models.LogEntry
	err := s.db.SelectContext(ctx, &entries, query, args...)
	return entries, err
}

func (s *LogStore) Clear(ctx context.Context, tx Execer) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM logs`)
	return err
}
