package services

import (
	"context"
	"fmt"

	"expensepro/internal/auth"
	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/validator"

	"github.com/jmoiron/sqlx"
)

// UserService is the admin account-management surface. Authorization is
// enforced by the admin route gate; the service assumes an admin actor.
type UserService struct {
	txRunner db.TxRunner
	users    UserStore
	txStore  TransactionStore
	logStore LogStore
}

func NewUserService(txRunner db.TxRunner, users UserStore, txStore TransactionStore, logStore LogStore) *UserService {
	return &UserService{
		txRunner: txRunner,
		users:    users,
		txStore:  txStore,
		logStore: logStore,
	}
}

type CreateUserRequest struct {
	Actor      string
	Username   string
	Password   string
	Role       string
	FullName   string
	Email      string
	Department string
}

func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (models.User, error) {
	if err := validator.ValidateUsername(req.Username); err != nil {
		return models.User{}, err
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		return models.User{}, err
	}
	if !models.ValidRole(req.Role) {
		return models.User{}, ErrInvalidRole
	}
	if req.Email != "" {
		if err := validator.ValidateEmail(req.Email); err != nil {
			return models.User{}, err
		}
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		FullName:     req.FullName,
		Email:        req.Email,
		Department:   req.Department,
		CreatedAt:    nowRFC3339(),
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.users.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionUserCreate,
			"Created user "+user.Username, user.CreatedAt)
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

type UpdateUserRequest struct {
	Actor        string
	Username     string
	Password     string // optional; empty keeps the current hash
	Role         string
	FullName     string
	Email        string
	Department   string
	ProfilePhoto string
}

func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) (models.User, error) {
	if !models.ValidRole(req.Role) {
		return models.User{}, ErrInvalidRole
	}
	if req.Email != "" {
		if err := validator.ValidateEmail(req.Email); err != nil {
			return models.User{}, err
		}
	}
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return models.User{}, err
	}
	if req.Password != "" {
		if err := validator.ValidatePassword(req.Password); err != nil {
			return models.User{}, err
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = hash
	}
	user.Role = req.Role
	user.FullName = req.FullName
	user.Email = req.Email
	user.Department = req.Department
	user.ProfilePhoto = req.ProfilePhoto
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.users.Update(ctx, tx, user); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionUserUpdate,
			"Updated user "+user.Username, nowRFC3339())
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

type UpdateProfileRequest struct {
	Actor        string
	FullName     string
	Email        string
	Department   string
	ProfilePhoto string
}

// UpdateProfile edits the actor's own display fields. Role and password
// stay out of reach; the record is looked up by the actor, so no one can
// touch another account through this path.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (models.User, error) {
	if req.Email != "" {
		if err := validator.ValidateEmail(req.Email); err != nil {
			return models.User{}, err
		}
	}
	user, err := s.users.GetByUsername(ctx, req.Actor)
	if err != nil {
		return models.User{}, err
	}
	user.FullName = req.FullName
	user.Email = req.Email
	user.Department = req.Department
	user.ProfilePhoto = req.ProfilePhoto
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.users.Update(ctx, tx, user); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionUserUpdate,
			"Updated profile for "+user.Username, nowRFC3339())
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete removes the account and every transaction it owns, in one
// transaction. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor, username string) error {
	if actor == username {
		return ErrSelfDelete
	}
	if _, err := s.users.GetByUsername(ctx, username); err != nil {
		return err
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		removed, err := s.txStore.DeleteByUser(ctx, tx, username)
		if err != nil {
			return err
		}
		if err := s.users.Delete(ctx, tx, username); err != nil {
			return err
		}
		details := fmt.Sprintf("Deleted user %s and %d transactions", username, removed)
		return s.logStore.Append(ctx, tx, actor, models.ActionUserDelete, details, nowRFC3339())
	})
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (models.User, error) {
	return s.users.GetByUsername(ctx, username)
}
