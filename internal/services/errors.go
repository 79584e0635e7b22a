package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidType        = errors.New("unknown transaction type")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidStatus      = errors.New("unknown status")
	ErrInvalidRole        = errors.New("unknown role")
	// ErrNotPending guards edits and deletes: only Pending records may
	// change.
	ErrNotPending = errors.New("transaction is no longer pending")
	// ErrInvalidTransition rejects status changes other than
	// Pending -> Approved and Pending -> Rejected.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("operation not permitted")
	ErrSelfDelete        = errors.New("cannot delete own account")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidSetting    = errors.New("setting value is not valid JSON")
	ErrBadSnapshot       = errors.New("unrecognized backup format")
	ErrUnknownClearScope = errors.New("unknown clear scope")
	ErrBadUpload         = errors.New("invalid file upload")
)
