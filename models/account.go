package models

import "time"

// Roles form a fixed closed set. Role checks throughout the application
// compare against these constants only.
const (
	// RoleUser is a regular account linked to exactly one User profile.
	// It may only see and create its own records.
	RoleUser = "User"

	// RoleAdmin may list all users and all records.
	RoleAdmin = "Admin"

	// RoleSysadmin has Admin visibility plus access to the audit trail.
	RoleSysadmin = "Sysadmin"

	// RoleFrontdesk may manage records for any user but has no
	// administrative listings.
	RoleFrontdesk = "Frontdesk"
)

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSysadmin, RoleFrontdesk:
		return true
	default:
		return false
	}
}

// Account is the authentication identity with its lockout state.
// Sensitive fields must never be exposed outside trusted boundaries.
//
// Invariants:
//   - Role == RoleUser implies UserID is non-nil; admin-family roles may
//     have no linked User.
//   - IsLocked == true implies LockUntil was set to a future time at the
//     moment of locking. The lock expires lazily: once the current time
//     reaches LockUntil, the next login attempt is evaluated as unlocked.
type Account struct {
	// ID is the internal unique identifier of the account.
	ID int64 `json:"-"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the account password.
	// This value MUST be a salted irreversible hash, never plaintext.
	PasswordHash string `json:"-"`

	// Role is one of the Role* constants.
	Role string `json:"role"`

	// UserID references the linked User profile. Nil for admin-family
	// accounts that have no profile of their own.
	UserID *int64 `json:"userId"`

	// LastLogin is the time of the last successful login, nil before the
	// first one.
	LastLogin *time.Time `json:"-"`

	// FailedLoginAttempts counts consecutive failed logins. Reset to zero
	// on success; at LockThreshold the account transitions to Locked.
	FailedLoginAttempts int `json:"-"`

	// IsLocked flags the Locked state.
	IsLocked bool `json:"-"`

	// LockUntil is the lock expiry time, nil while unlocked.
	LockUntil *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// Locked reports whether the account is locked relative to now.
// A set lock flag with an expired LockUntil counts as unlocked.
func (a Account) Locked(now time.Time) bool {
	return a.IsLocked && a.LockUntil != nil && now.Before(*a.LockUntil)
}
