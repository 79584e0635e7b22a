package store

import (
	"context"

	"expensepro/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `username, password_hash, role, full_name, email, department, profile_photo, created_at, last_login`

func (s *UserStore) Create(ctx context.Context, tx Execer, user models.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, full_name, email, department, profile_photo, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.FullName, user.Email,
		user.Department, user.ProfilePhoto, user.CreatedAt, user.LastLogin,
	)
	return mapWriteErr(err)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if s.db == nil {
		return models.User{}, ErrNotReady
	}
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return user, mapReadErr(err)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.db == nil {
		return models.User{}, ErrNotReady
	}
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return user, mapReadErr(err)
}

// Role reports the role for username; used by the admin gate.
func (s *UserStore) Role(ctx context.Context, username string) (string, error) {
	if s.db == nil {
		return "", ErrNotReady
	}
	var role string
	err := s.db.GetContext(ctx, &role, `SELECT role FROM users WHERE username = $1`, username)
	return role, mapReadErr(err)
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY username`)
	return users, err
}

func (s *UserStore) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	if s.db == nil {
		return nil, ErrNotReady
	}
	var users []models.User
	err := s.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY username`, role)
	return users, err
}

// Update upserts by username; callers read-modify-write.
func (s *UserStore) Update(ctx context.Context, tx Execer, user models.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, full_name, email, department, profile_photo, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (username) DO UPDATE SET
			password_hash = excluded.password_hash,
			role = excluded.role,
			full_name = excluded.full_name,
			email = excluded.email,
			department = excluded.department,
			profile_photo = excluded.profile_photo,
			last_login = excluded.last_login
	`
	_, err := tx.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.Role, user.FullName, user.Email,
		user.Department, user.ProfilePhoto, user.CreatedAt, user.LastLogin,
	)
	return mapWriteErr(err)
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, tx Execer, username, timestamp string) error {
	_, err := tx.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE username = $2`, timestamp, username)
	return err
}

// Delete is idempotent; a missing username is not an error.
func (s *UserStore) Delete(ctx context.Context, tx Execer, username string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	return err
}

func (s *UserStore) Clear(ctx context.Context, tx Execer) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM users`)
	return err
}
