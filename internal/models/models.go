package models

// Role values for User.Role.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// Transaction types.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Category types. Unlike transaction types these are lowercase.
const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

// Transaction statuses. The only transitions are Pending -> Approved
// and Pending -> Rejected.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Activity log action codes.
const (
	ActionLogin             = "login"
	ActionLogout            = "logout"
	ActionTransactionCreate = "transaction_create"
	ActionTransactionUpdate = "transaction_update"
	ActionTransactionDelete = "transaction_delete"
	ActionTransactionStatus = "transaction_status"
	ActionUserCreate        = "user_create"
	ActionUserUpdate        = "user_update"
	ActionUserDelete        = "user_delete"
	ActionPasswordChange    = "password_change"
	ActionDataImport        = "data_import"
	ActionDataExport        = "data_export"
	ActionDataClear         = "data_clear"
	ActionSettingsUpdate    = "settings_update"
)

// Timestamps are stored as RFC 3339 strings; dates as "2006-01-02".
// SQLite keeps both as TEXT, and ISO ordering is lexical.

type User struct {
	Username     string  `db:"username" json:"username"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Role         string  `db:"role" json:"role"`
	FullName     string  `db:"full_name" json:"full_name"`
	Email        string  `db:"email" json:"email"`
	Department   string  `db:"department" json:"department"`
	ProfilePhoto string  `db:"profile_photo" json:"profile_photo"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	LastLogin    *string `db:"last_login" json:"last_login,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Transaction struct {
	ID           string `db:"id" json:"id"`
	UserID       string `db:"user_id" json:"user_id"`
	Type         string `db:"type" json:"type"`
	Amount       int64  `db:"amount" json:"amount"`
	Date         string `db:"date" json:"date"`
	Description  string `db:"description" json:"description"`
	Category     string `db:"category" json:"category"`
	CostCenter   string `db:"cost_center" json:"cost_center"`
	Ledger       string `db:"ledger" json:"ledger"`
	Approver     string `db:"approver" json:"approver"`
	Status       string `db:"status" json:"status"`
	Attachments  string `db:"attachments" json:"attachments"`
	Comments     string `db:"comments" json:"comments"`
	CreatedBy    string `db:"created_by" json:"created_by"`
	CreatedAt    string `db:"created_at" json:"created_at"`
	LastModified string `db:"last_modified" json:"last_modified"`
}

// Attachment is one element of Transaction.Attachments (stored as a JSON
// array column). The payload itself lives in the files collection.
type Attachment struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// Comment is one element of Transaction.Comments. A comment is appended
// on every status change.
type Comment struct {
	Text      string `json:"text"`
	By        string `json:"by"`
	Timestamp string `json:"timestamp"`
}

// Setting is a key to arbitrary JSON value mapping. Value holds the raw
// JSON text.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

type Category struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Type      string `db:"type" json:"type"`
	ParentID  *int64 `db:"parent_id" json:"parent_id,omitempty"`
	Color     string `db:"color" json:"color"`
	Icon      string `db:"icon" json:"icon"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type LogEntry struct {
	ID        int64  `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"user_id"`
	Action    string `db:"action" json:"action"`
	Details   string `db:"details" json:"details"`
	Timestamp string `db:"timestamp" json:"timestamp"`
}

// File holds an uploaded blob as base64 text, keyed by generated id.
type File struct {
	ID         string `db:"id" json:"id"`
	Filename   string `db:"filename" json:"filename"`
	Mimetype   string `db:"mimetype" json:"mimetype"`
	Size       int64  `db:"size" json:"size"`
	Data       string `db:"data" json:"data"`
	UploadedBy string `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt string `db:"uploaded_at" json:"uploaded_at"`
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

func ValidType(txType string) bool {
	return txType == TypeIncome || txType == TypeExpense
}

func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}

func ValidCategoryType(categoryType string) bool {
	return categoryType == CategoryIncome || categoryType == CategoryExpense
}
