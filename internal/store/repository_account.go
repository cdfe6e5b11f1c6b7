package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/models"
)

// accountRepository is the SQL-backed implementation of [AccountRepository].
// It handles credential lookup and lockout-state persistence against the
// "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// FindByUsername retrieves the account whose username matches exactly.
//
// Error handling:
//   - No matching row → [ErrNoAccountWasFound].
//   - Any other driver-level error → wrapped as [ErrScanningRow].
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	log := logger.FromContext(ctx)

	var account models.Account
	var userID sql.NullInt64
	var lastLogin, lockUntil sql.NullTime

	row := r.db.QueryRowContext(ctx, findAccountByUsername, username)
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&userID,
		&lastLogin,
		&account.FailedLoginAttempts,
		&account.IsLocked,
		&lockUntil,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNoAccountWasFound
		}
		log.Err(err).Str("func", "*accountRepository.FindByUsername").Msg("error: scanning error")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if userID.Valid {
		account.UserID = &userID.Int64
	}
	if lastLogin.Valid {
		account.LastLogin = &lastLogin.Time
	}
	if lockUntil.Valid {
		account.LockUntil = &lockUntil.Time
	}

	return account, nil
}

// MarkLoginSuccess transitions the account to the unlocked state: the
// failed-attempt counter is zeroed, lock flag and expiry cleared, and the
// last successful login time recorded.
func (r *accountRepository) MarkLoginSuccess(ctx context.Context, accountID int64, lastLogin time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateAccountLoginSuccess, accountID, lastLogin); err != nil {
		log.Err(err).Str("func", "*accountRepository.MarkLoginSuccess").Msg("error: update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// MarkLoginFailure persists the caller-computed failure state. The counter,
// lock flag, and lock expiry are written together so that a lockout is
// never observable without its expiry time.
func (r *accountRepository) MarkLoginFailure(ctx context.Context, accountID int64, failedAttempts int, locked bool, lockUntil *time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateAccountLoginFailure, accountID, failedAttempts, locked, lockUntil); err != nil {
		log.Err(err).Str("func", "*accountRepository.MarkLoginFailure").Msg("error: update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
