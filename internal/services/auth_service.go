package services

import (
	"context"
	"errors"
	"time"

	"expensepro/internal/auth"
	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/store"
	"expensepro/internal/validator"

	"github.com/jmoiron/sqlx"
)

type AuthService struct {
	txRunner  db.TxRunner
	users     UserStore
	logStore  LogStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(txRunner db.TxRunner, users UserStore, logStore LogStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		txRunner:  txRunner,
		users:     users,
		logStore:  logStore,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login verifies the credentials, stamps last_login, records the login in
// the activity log, and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", models.User{}, ErrInvalidCredentials
	}
	now := nowRFC3339()
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.users.UpdateLastLogin(ctx, tx, username, now); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, username, models.ActionLogin, "User logged in", now)
	})
	if err != nil {
		return "", models.User{}, err
	}
	user.LastLogin = &now
	token, err := auth.GenerateToken(s.jwtSecret, username, s.tokenTTL)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Logout only records the event; tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.logStore.Append(ctx, tx, username, models.ActionLogout, "User logged out", nowRFC3339())
	})
}

func (s *AuthService) Me(ctx context.Context, username string) (models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *AuthService) ChangePassword(ctx context.Context, username, current, updated string) error {
	if err := validator.ValidatePassword(updated); err != nil {
		return err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return ErrWrongPassword
	}
	hash, err := auth.HashPassword(updated)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.users.Update(ctx, tx, user); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, username, models.ActionPasswordChange, "Password changed", nowRFC3339())
	})
}
