package service

import (
	"context"

	"github.com/avelichko/immun-registry/models"
)

// AuthService owns the authentication lifecycle: registration, the
// login/lockout state machine, session issuance and validation, and logout
// revocation. Every security-relevant action it performs is recorded in the
// audit trail.
type AuthService interface {
	// Login runs the lockout state machine for one credential attempt and,
	// on success, returns the account in its post-login state.
	Login(ctx context.Context, req models.LoginRequest, sourceAddr string) (models.Account, error)

	// Register creates a user profile and its linked account atomically.
	Register(ctx context.Context, req models.RegisterRequest, sourceAddr string) (models.User, models.Account, error)

	// Logout records the logout and revokes the session token.
	Logout(ctx context.Context, session models.Session, sourceAddr string) error

	// CreateSession issues a signed session token bound to the account.
	CreateSession(ctx context.Context, account models.Account) (models.Session, error)

	// ParseSession validates a raw token string, including the revocation
	// check, and returns the decoded session.
	ParseSession(ctx context.Context, tokenString string) (models.Session, error)
}

// RegistryService owns the read and write operations over user profiles,
// immunization records, and the audit trail.
type RegistryService interface {
	// ListUsers returns all user profiles with denormalized usernames.
	ListUsers(ctx context.Context) ([]models.UserListItem, error)

	// ListRecords returns records scoped by the caller's role: regular
	// users see only their own, every other role sees the full set.
	ListRecords(ctx context.Context, principal models.Principal) ([]models.Record, error)

	// AddRecord persists a new record after the ownership check and audits
	// the addition, attributed to the caller rather than the record owner.
	AddRecord(ctx context.Context, principal models.Principal, req models.AddRecordRequest, sourceAddr string) (models.Record, error)

	// ListAuditLogs returns the most recent audit entries, newest first.
	ListAuditLogs(ctx context.Context) ([]models.AuditLog, error)
}
