package models

// Audit action tags. The vocabulary is fixed; free-form detail goes into
// the Details field, never into Action.
const (
	AuditLogin       = "LOGIN"
	AuditLoginFailed = "LOGIN_FAILED"
	AuditLogout      = "LOGOUT"
	AuditRegister    = "REGISTER"
	AuditAddRecord   = "ADD_RECORD"
)

// AuditLog is an append-only event record of a security-relevant action.
// Rows are never mutated or deleted.
type AuditLog struct {
	// ID is the internal unique identifier of the entry.
	ID int64 `json:"id"`

	// UserID is the acting user, nil when no actor could be resolved
	// (admin-family accounts without a profile).
	UserID *int64 `json:"user_id"`

	// Action is one of the Audit* tags.
	Action string `json:"action"`

	// Details is a free-text description of the event.
	Details string `json:"details"`

	// IPAddress is the originating network address of the request.
	IPAddress string `json:"ip_address"`

	// Timestamp is when the event occurred.
	Timestamp DateTime `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the AuditLog model.
func (l AuditLog) TableName() string {
	return "audit_logs"
}
