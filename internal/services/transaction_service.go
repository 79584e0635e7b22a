package services

import (
	"context"
	"encoding/json"
	"strings"

	"expensepro/internal/db"
	"expensepro/internal/models"
	"expensepro/internal/store"
	"expensepro/internal/validator"
	"expensepro/internal/websocket"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

type TransactionService struct {
	txRunner db.TxRunner
	users    UserStore
	txStore  TransactionStore
	logStore LogStore
	hub      TransactionHub
}

func NewTransactionService(txRunner db.TxRunner, users UserStore, txStore TransactionStore, logStore LogStore, hub TransactionHub) *TransactionService {
	return &TransactionService{
		txRunner: txRunner,
		users:    users,
		txStore:  txStore,
		logStore: logStore,
		hub:      hub,
	}
}

type CreateTransactionRequest struct {
	Actor       string
	UserID      string
	Type        string
	Amount      int64
	Date        string
	Description string
	Category    string
	CostCenter  string
	Ledger      string
	Approver    string
	Attachments []models.Attachment
}

func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (models.Transaction, error) {
	if req.Amount <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if !models.ValidType(req.Type) {
		return models.Transaction{}, ErrInvalidType
	}
	if err := validator.ValidateDate(req.Date); err != nil {
		return models.Transaction{}, ErrInvalidDate
	}
	owner := req.UserID
	if owner == "" {
		owner = req.Actor
	}
	if owner != req.Actor {
		admin, err := s.isAdmin(ctx, req.Actor)
		if err != nil {
			return models.Transaction{}, err
		}
		if !admin {
			return models.Transaction{}, ErrForbidden
		}
	}
	attachments, err := marshalAttachments(req.Attachments)
	if err != nil {
		return models.Transaction{}, err
	}
	now := nowRFC3339()
	txn := models.Transaction{
		ID:           newID("txn"),
		UserID:       owner,
		Type:         req.Type,
		Amount:       req.Amount,
		Date:         req.Date,
		Description:  req.Description,
		Category:     req.Category,
		CostCenter:   req.CostCenter,
		Ledger:       req.Ledger,
		Approver:     req.Approver,
		Status:       models.StatusPending,
		Attachments:  attachments,
		Comments:     "[]",
		CreatedBy:    req.Actor,
		CreatedAt:    now,
		LastModified: now,
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.txStore.Create(ctx, tx, txn); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionTransactionCreate,
			"Created transaction "+txn.ID, now)
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.hub.BroadcastTransaction(owner, websocket.TransactionUpdate{
		ID: txn.ID, Status: txn.Status, Event: "created", By: req.Actor,
	})
	return txn, nil
}

type UpdateTransactionRequest struct {
	Actor       string
	ID          string
	Type        string
	Amount      int64
	Date        string
	Description string
	Category    string
	CostCenter  string
	Ledger      string
	Approver    string
	Attachments []models.Attachment
}

// Update replaces the editable fields of a Pending transaction. Admins may
// edit any pending record; other users only their own.
func (s *TransactionService) Update(ctx context.Context, req UpdateTransactionRequest) (models.Transaction, error) {
	if req.Amount <= 0 {
		return models.Transaction{}, ErrInvalidAmount
	}
	if !models.ValidType(req.Type) {
		return models.Transaction{}, ErrInvalidType
	}
	if err := validator.ValidateDate(req.Date); err != nil {
		return models.Transaction{}, ErrInvalidDate
	}
	txn, err := s.authorizeMutation(ctx, req.Actor, req.ID)
	if err != nil {
		return models.Transaction{}, err
	}
	attachments, err := marshalAttachments(req.Attachments)
	if err != nil {
		return models.Transaction{}, err
	}
	txn.Type = req.Type
	txn.Amount = req.Amount
	txn.Date = req.Date
	txn.Description = req.Description
	txn.Category = req.Category
	txn.CostCenter = req.CostCenter
	txn.Ledger = req.Ledger
	txn.Approver = req.Approver
	txn.Attachments = attachments
	txn.LastModified = nowRFC3339()
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.txStore.Update(ctx, tx, txn); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, req.Actor, models.ActionTransactionUpdate,
			"Updated transaction "+txn.ID, txn.LastModified)
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.hub.BroadcastTransaction(txn.UserID, websocket.TransactionUpdate{
		ID: txn.ID, Status: txn.Status, Event: "updated", By: req.Actor,
	})
	return txn, nil
}

func (s *TransactionService) Delete(ctx context.Context, actor, id string) error {
	txn, err := s.authorizeMutation(ctx, actor, id)
	if err != nil {
		return err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.txStore.Delete(ctx, tx, id); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, actor, models.ActionTransactionDelete,
			"Deleted transaction "+id, nowRFC3339())
	})
	if err != nil {
		return err
	}
	s.hub.BroadcastTransaction(txn.UserID, websocket.TransactionUpdate{
		ID: id, Status: txn.Status, Event: "deleted", By: actor,
	})
	return nil
}

// SetStatus moves a Pending transaction to Approved or Rejected and
// appends comment to its comment trail. Admin only.
func (s *TransactionService) SetStatus(ctx context.Context, actor, id, status, comment string) (models.Transaction, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return models.Transaction{}, ErrInvalidTransition
	}
	admin, err := s.isAdmin(ctx, actor)
	if err != nil {
		return models.Transaction{}, err
	}
	if !admin {
		return models.Transaction{}, ErrForbidden
	}
	txn, err := s.txStore.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if txn.Status != models.StatusPending {
		return models.Transaction{}, ErrInvalidTransition
	}
	now := nowRFC3339()
	comments, err := appendComment(txn.Comments, models.Comment{
		Text:      comment,
		By:        actor,
		Timestamp: now,
	})
	if err != nil {
		return models.Transaction{}, err
	}
	txn.Status = status
	txn.Comments = comments
	txn.LastModified = now
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.txStore.Update(ctx, tx, txn); err != nil {
			return err
		}
		return s.logStore.Append(ctx, tx, actor, models.ActionTransactionStatus,
			"Set transaction "+id+" to "+status, now)
	})
	if err != nil {
		return models.Transaction{}, err
	}
	s.hub.BroadcastTransaction(txn.UserID, websocket.TransactionUpdate{
		ID: id, Status: status, Event: "status", By: actor,
	})
	return txn, nil
}

func (s *TransactionService) Get(ctx context.Context, actor, id string) (models.Transaction, error) {
	txn, err := s.txStore.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if txn.UserID != actor {
		admin, err := s.isAdmin(ctx, actor)
		if err != nil {
			return models.Transaction{}, err
		}
		if !admin {
			return models.Transaction{}, ErrForbidden
		}
	}
	return txn, nil
}

// List applies filter, restricted to the actor's own records unless the
// actor is an admin.
func (s *TransactionService) List(ctx context.Context, actor string, filter store.TransactionFilter) ([]models.Transaction, error) {
	admin, err := s.isAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !admin {
		filter.UserID = actor
	}
	return s.txStore.List(ctx, filter)
}

// BulkResult is one id's outcome of a bulk operation. Failures do not
// stop the rest of the batch.
type BulkResult struct {
	ID  string
	Err error
}

// bulkLimit caps concurrent bulk items. The single-writer pool serializes
// the writes anyway; the limit just bounds goroutine fan-out.
const bulkLimit = 4

// BulkSetStatus applies status to each id independently. One failed item
// does not stop or roll back the others.
func (s *TransactionService) BulkSetStatus(ctx context.Context, actor string, ids []string, status string) []BulkResult {
	comment := "Bulk " + strings.ToLower(status)
	results := make([]BulkResult, len(ids))
	group := errgroup.Group{}
	group.SetLimit(bulkLimit)
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			_, err := s.SetStatus(ctx, actor, id, status, comment)
			results[i] = BulkResult{ID: id, Err: err}
			return nil
		})
	}
	_ = group.Wait()
	return results
}

func (s *TransactionService) BulkDelete(ctx context.Context, actor string, ids []string) []BulkResult {
	results := make([]BulkResult, len(ids))
	group := errgroup.Group{}
	group.SetLimit(bulkLimit)
	for i, id := range ids {
		i, id := i, id
		group.Go(func() error {
			results[i] = BulkResult{ID: id, Err: s.Delete(ctx, actor, id)}
			return nil
		})
	}
	_ = group.Wait()
	return results
}

// authorizeMutation fetches id and enforces the edit/delete rules: the
// record must still be Pending, and non-admins must own it.
func (s *TransactionService) authorizeMutation(ctx context.Context, actor, id string) (models.Transaction, error) {
	txn, err := s.txStore.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if txn.UserID != actor {
		admin, err := s.isAdmin(ctx, actor)
		if err != nil {
			return models.Transaction{}, err
		}
		if !admin {
			return models.Transaction{}, ErrForbidden
		}
	}
	if txn.Status != models.StatusPending {
		return models.Transaction{}, ErrNotPending
	}
	return txn, nil
}

func (s *TransactionService) isAdmin(ctx context.Context, username string) (bool, error) {
	role, err := s.users.Role(ctx, username)
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

func marshalAttachments(attachments []models.Attachment) (string, error) {
	if len(attachments) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(attachments)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func appendComment(existing string, comment models.Comment) (string, error) {
	var comments []models.Comment
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &comments); err != nil {
			return "", err
		}
	}
	comments = append(comments, comment)
	data, err := json.Marshal(comments)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
