package db

import (
	"context"
	"fmt"
	"time"

	"expensepro/internal/auth"

	"github.com/jmoiron/sqlx"
)

type seedUser struct {
	username   string
	password   string
	role       string
	fullName   string
	email      string
	department string
}

// Hashes cannot live in the SQL seeds; bcrypt output is not reproducible.
var defaultUsers = []seedUser{
	{"admin", "admin123", "Admin", "System Administrator", "admin@expensepro.com", "Administration"},
	{"user", "user123", "User", "Regular User", "user@expensepro.com", "Operations"},
}

// SeedDefaultUsers inserts the bootstrap accounts if the users table is
// empty. Safe to call on every start.
func SeedDefaultUsers(ctx context.Context, db *sqlx.DB) error {
	if db == nil {
		return ErrNotReady
	}
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		for _, user := range defaultUsers {
			hash, err := auth.HashPassword(user.password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", user.username, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO users (username, password_hash, role, full_name, email, department, profile_photo, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, '', $7)`,
				user.username, hash, user.role, user.fullName, user.email, user.department, now)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", user.username, err)
			}
		}
		return nil
	})
}
