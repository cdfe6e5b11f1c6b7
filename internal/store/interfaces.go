package store

import (
	"context"
	"time"

	"github.com/avelichko/immun-registry/models"
)

// AccountRepository provides access to authentication identities and their
// lockout state.
type AccountRepository interface {
	// FindByUsername returns the account with the given username or
	// ErrNoAccountWasFound.
	FindByUsername(ctx context.Context, username string) (models.Account, error)

	// MarkLoginSuccess resets the failed-attempt counter, clears the lock,
	// and records lastLogin in a single statement.
	MarkLoginSuccess(ctx context.Context, accountID int64, lastLogin time.Time) error

	// MarkLoginFailure persists the incremented failed-attempt counter and,
	// when the lockout threshold was reached, the lock flag and expiry.
	MarkLoginFailure(ctx context.Context, accountID int64, failedAttempts int, locked bool, lockUntil *time.Time) error
}

// UserRepository provides access to user profiles.
type UserRepository interface {
	// CreateWithAccount atomically persists a new user profile and its
	// linked account: both rows are committed or neither is. Returns
	// ErrUsernameAlreadyExists when the account username is taken.
	CreateWithAccount(ctx context.Context, user models.User, account models.Account) (models.User, models.Account, error)

	// ListWithUsernames returns all user profiles with the username of the
	// linked account denormalized in (nil when no account exists).
	ListWithUsernames(ctx context.Context) ([]models.UserListItem, error)

	// Count returns the total number of user profiles.
	Count(ctx context.Context) (int64, error)
}

// RecordRepository provides access to immunization records. Records are
// immutable: there are no update or delete methods.
type RecordRepository interface {
	// Create persists a new record and returns it with the server-assigned ID.
	Create(ctx context.Context, record models.Record) (models.Record, error)

	// List returns records ordered by ID. When ownerID is non-nil only
	// records belonging to that user are returned.
	List(ctx context.Context, ownerID *int64) ([]models.Record, error)
}

// AuditLogRepository provides append and read access to the audit trail.
// Entries are never mutated or deleted.
type AuditLogRepository interface {
	// Append persists a new audit entry and returns it with the
	// server-assigned ID.
	Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error)

	// ListRecent returns at most limit entries ordered by timestamp
	// descending.
	ListRecent(ctx context.Context, limit uint64) ([]models.AuditLog, error)
}
