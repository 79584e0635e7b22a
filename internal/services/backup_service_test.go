package services

import (
	"context"
	"errors"
	"testing"

	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/store"
)

func validSnapshot() Snapshot {
	return Snapshot{
		Users: []SnapshotUser{
			{User: models.User{Username: "admin", Role: models.RoleAdmin, CreatedAt: "2025-01-01T00:00:00Z"}, PasswordHash: "hash"},
		},
		Transactions: []models.Transaction{
			{ID: "txn-1", UserID: "admin", Type: models.TypeExpense, Amount: 100, Date: "2025-03-10",
				Status: models.StatusPending, CreatedBy: "admin", CreatedAt: "2025-03-10T09:00:00Z", LastModified: "2025-03-10T09:00:00Z"},
		},
		ExportDate: "2025-03-11T00:00:00Z",
		Version:    db.SchemaVersion,
	}
}

func newBackupService(users UserStore, txStore TransactionStore, logStore LogStore) *BackupService {
	return NewBackupService(fakeTxRunner{}, users, txStore, stubSettingStore{}, stubCategoryStore{}, logStore, stubFileStore{})
}

func TestImportRejectsBadSnapshots(t *testing.T) {
	svc := newBackupService(stubUserStore{}, stubTxnStore{}, stubLogStore{})
	cases := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"zero version", func(s *Snapshot) { s.Version = 0 }},
		{"future version", func(s *Snapshot) { s.Version = db.SchemaVersion + 1 }},
		{"no users", func(s *Snapshot) { s.Users = nil }},
		{"bad amount", func(s *Snapshot) { s.Transactions[0].Amount = 0 }},
		{"bad type", func(s *Snapshot) { s.Transactions[0].Type = "Transfer" }},
		{"bad status", func(s *Snapshot) { s.Transactions[0].Status = "Done" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := validSnapshot()
			tc.mutate(&snapshot)
			if err := svc.Import(context.Background(), "root", snapshot); !errors.Is(err, ErrBadSnapshot) {
				t.Fatalf("expected ErrBadSnapshot, got %v", err)
			}
		})
	}
}

func TestImportClearsThenRepopulates(t *testing.T) {
	var cleared, inserted []string
	users := stubUserStore{
		clearFn: func(context.Context, store.Execer) error {
			cleared = append(cleared, "users")
			return nil
		},
		createFn: func(_ context.Context, _ store.Execer, user models.User) error {
			inserted = append(inserted, "user:"+user.Username)
			if user.PasswordHash != "hash" {
				t.Fatalf("restore must keep password hashes, got %q", user.PasswordHash)
			}
			return nil
		},
	}
	txStore := stubTxnStore{
		clearFn: func(context.Context, store.Execer) error {
			cleared = append(cleared, "transactions")
			return nil
		},
		createFn: func(_ context.Context, _ store.Execer, txn models.Transaction) error {
			inserted = append(inserted, "txn:"+txn.ID)
			return nil
		},
	}
	var loggedAction string
	logStore := stubLogStore{
		appendFn: func(_ context.Context, _ store.Execer, userID, action, details, timestamp string) error {
			loggedAction = action
			return nil
		},
	}
	svc := newBackupService(users, txStore, logStore)
	if err := svc.Import(context.Background(), "root", validSnapshot()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cleared) != 2 {
		t.Fatalf("both stores must be cleared, got %v", cleared)
	}
	if len(inserted) != 2 || inserted[0] != "user:admin" || inserted[1] != "txn:txn-1" {
		t.Fatalf("unexpected inserts: %v", inserted)
	}
	if loggedAction != models.ActionDataImport {
		t.Fatalf("expected data_import log, got %q", loggedAction)
	}
}

func TestImportRollsBackOnFailure(t *testing.T) {
	boom := errors.New("insert failed")
	txStore := stubTxnStore{
		createFn: func(context.Context, store.Execer, models.Transaction) error {
			return boom
		},
	}
	svc := newBackupService(stubUserStore{}, txStore, stubLogStore{})
	if err := svc.Import(context.Background(), "root", validSnapshot()); !errors.Is(err, boom) {
		t.Fatalf("expected the insert failure to surface, got %v", err)
	}
}

func TestExportCarriesVersionAndHashes(t *testing.T) {
	users := stubUserStore{
		listFn: func(context.Context) ([]models.User, error) {
			return []models.User{{Username: "admin", PasswordHash: "hash"}}, nil
		},
	}
	svc := newBackupService(users, stubTxnStore{}, stubLogStore{})
	snapshot, err := svc.Export(context.Background(), "root")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snapshot.Version != db.SchemaVersion {
		t.Fatalf("version = %d, want %d", snapshot.Version, db.SchemaVersion)
	}
	if snapshot.ExportDate == "" {
		t.Fatal("export date must be stamped")
	}
	if len(snapshot.Users) != 1 || snapshot.Users[0].PasswordHash != "hash" {
		t.Fatalf("snapshot users must carry hashes: %#v", snapshot.Users)
	}
}

func TestClearDataScopes(t *testing.T) {
	var cleared []string
	txStore := stubTxnStore{
		clearFn: func(context.Context, store.Execer) error {
			cleared = append(cleared, "transactions")
			return nil
		},
	}
	var loggedAction string
	logStore := stubLogStore{
		clearFn: func(context.Context, store.Execer) error {
			cleared = append(cleared, "logs")
			return nil
		},
		appendFn: func(_ context.Context, _ store.Execer, _, action, _, _ string) error {
			loggedAction = action
			return nil
		},
	}
	svc := newBackupService(stubUserStore{}, txStore, logStore)
	if err := svc.ClearData(context.Background(), "root", "transactions"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loggedAction != models.ActionDataClear {
		t.Fatalf("a wipe must be logged as %s, got %q", models.ActionDataClear, loggedAction)
	}
	if len(cleared) != 1 || cleared[0] != "transactions" {
		t.Fatalf("scope must clear only its collection, got %v", cleared)
	}
	cleared = nil
	if err := svc.ClearData(context.Background(), "root", "all"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cleared) != 2 {
		t.Fatalf("all must clear transactions, logs, and files, got %v", cleared)
	}
	if err := svc.ClearData(context.Background(), "root", "users"); !errors.Is(err, ErrUnknownClearScope) {
		t.Fatalf("accounts are never cleared, got %v", err)
	}
}
