package services

import (
	"context"
	"encoding/base64"

	"expensepro/internal/db"
	"expensepro/internal/models"

	"github.com/jmoiron/sqlx"
)

// FileService stores uploads as base64 text rows; the record store is the
// only persistence there is.
type FileService struct {
	txRunner db.TxRunner
	files    FileStore
	users    UserStore
}

func NewFileService(txRunner db.TxRunner, files FileStore, users UserStore) *FileService {
	return &FileService{txRunner: txRunner, files: files, users: users}
}

type UploadRequest struct {
	Actor    string
	Filename string
	Mimetype string
	Data     string // base64
}

func (s *FileService) Upload(ctx context.Context, req UploadRequest) (models.File, error) {
	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return models.File{}, ErrBadUpload
	}
	if req.Filename == "" {
		return models.File{}, ErrBadUpload
	}
	file := models.File{
		ID:         newID("file"),
		Filename:   req.Filename,
		Mimetype:   req.Mimetype,
		Size:       int64(len(decoded)),
		Data:       req.Data,
		UploadedBy: req.Actor,
		UploadedAt: nowRFC3339(),
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.files.Create(ctx, tx, file)
	})
	if err != nil {
		return models.File{}, err
	}
	return file, nil
}

func (s *FileService) Get(ctx context.Context, id string) (models.File, error) {
	return s.files.Get(ctx, id)
}

func (s *FileService) List(ctx context.Context) ([]models.File, error) {
	return s.files.List(ctx)
}

// Delete is restricted to the uploader or an admin.
func (s *FileService) Delete(ctx context.Context, actor, id string) error {
	file, err := s.files.Get(ctx, id)
	if err != nil {
		return err
	}
	if file.UploadedBy != actor {
		role, err := s.users.Role(ctx, actor)
		if err != nil {
			return err
		}
		if role != models.RoleAdmin {
			return ErrForbidden
		}
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.files.Delete(ctx, tx, id)
	})
}
