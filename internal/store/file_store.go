package store

import (
	"context"

	"expensepro/internal/models"
)

// FileStore holds uploaded blobs (profile photos, attachments) as base64
// text.
type FileStore struct {
	db DB
}

func NewFileStore(db DB) *FileStore {
	return &FileStore{db: db}
}

const fileColumns = `id, filename, mimetype, size, data, uploaded_by, uploaded_at`

func (s *FileStore) Create(ctx context.Context, tx Execer, file models.File) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO files (id, filename, mimetype, size, data, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, file.ID, file.Filename, file.Mimetype, file.Size, file.Data, file.UploadedBy, file.UploadedAt)
	return mapWriteErr(err)
}

func (s *FileStore) Get(ctx context.Context, id string) (models.File, error) {
	if s.db == nil {
		return models.File{}, ErrNotReady
	}
	var file models.File
	err := s.db.GetContext(ctx, &file, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id)
	return file, mapReadErr(err)
}

func (s *FileStore) List(ctx context.Context) ([]models.File, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	var files []models.File
	err := s.db.SelectContext(ctx, &files, `SELECT `+fileColumns+` FROM files ORDER BY uploaded_at DESC, id`)
	return files, err
}

func (s *FileStore) Delete(ctx context.Context, tx Execer, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	return err
}

func (s *FileStore) Clear(ctx context.Context, tx Execer) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM files`)
	return err
}
