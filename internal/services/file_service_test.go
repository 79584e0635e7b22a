package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"expensepro/internal/models"
	"expensepro/internal/store"
)

func TestFileUpload(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("receipt bytes"))
	var created models.File
	files := stubFileStore{
		createFn: func(_ context.Context, _ store.Execer, file models.File) error {
			created = file
			return nil
		},
	}
	svc := NewFileService(fakeTxRunner{}, files, stubUserStore{})
	file, err := svc.Upload(context.Background(), UploadRequest{
		Actor: "alice", Filename: "receipt.pdf", Mimetype: "application/pdf", Data: payload,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(file.ID, "file-") {
		t.Fatalf("unexpected id: %s", file.ID)
	}
	if file.Size != int64(len("receipt bytes")) {
		t.Fatalf("size must be the decoded length, got %d", file.Size)
	}
	if created.ID != file.ID || created.UploadedBy != "alice" {
		t.Fatalf("file was not stored: %#v", created)
	}
}

func TestFileUploadValidation(t *testing.T) {
	svc := NewFileService(fakeTxRunner{}, stubFileStore{}, stubUserStore{})
	if _, err := svc.Upload(context.Background(), UploadRequest{Actor: "alice", Filename: "x", Data: "not base64!!"}); !errors.Is(err, ErrBadUpload) {
		t.Fatalf("expected ErrBadUpload, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), UploadRequest{Actor: "alice", Data: ""}); !errors.Is(err, ErrBadUpload) {
		t.Fatalf("empty filename must be rejected, got %v", err)
	}
}

func TestFileDeleteOwnership(t *testing.T) {
	files := stubFileStore{
		getFn: func(_ context.Context, id string) (models.File, error) {
			return models.File{ID: id, UploadedBy: "bob"}, nil
		},
	}
	svc := NewFileService(fakeTxRunner{}, files, stubUserStore{})
	if err := svc.Delete(context.Background(), "alice", "file-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	adminSvc := NewFileService(fakeTxRunner{}, files, adminRole("root"))
	if err := adminSvc.Delete(context.Background(), "root", "file-1"); err != nil {
		t.Fatalf("admins may delete any file, got %v", err)
	}
}
