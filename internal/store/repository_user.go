package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user profile creation and listing against the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateWithAccount persists a new user profile and its linked account
// inside one transaction, so a failure on either insert leaves the store
// untouched.
//
// Error handling:
//   - unique-constraint violation on the username → [ErrUsernameAlreadyExists].
//   - transaction begin/commit failures → [ErrBeginningTransaction] /
//     [ErrCommitingTransaction].
//   - any other driver-level error → wrapped as [ErrExecutingStatement].
func (r *userRepository) CreateWithAccount(ctx context.Context, user models.User, account models.Account) (models.User, models.Account, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateWithAccount").Msg("error: begin transaction")
		return models.User{}, models.Account{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, insertUser, user.Name, user.DOB, user.Identifier).Scan(&user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateWithAccount").Msg("error: inserting user")
		return models.User{}, models.Account{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	account.UserID = &user.ID
	err = tx.QueryRowContext(ctx, insertAccount, account.Username, account.PasswordHash, account.Role, account.UserID).Scan(&account.ID)
	if err != nil {
		if uniqueViolation(err) {
			return models.User{}, models.Account{}, ErrUsernameAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateWithAccount").Msg("error: inserting account")
		return models.User{}, models.Account{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateWithAccount").Msg("error: commit failed")
		return models.User{}, models.Account{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, account, nil
}

// ListWithUsernames returns every user profile joined with the username of
// its linked account. Users without an account (none exist today, but the
// schema allows it) carry a nil username.
func (r *userRepository) ListWithUsernames(ctx context.Context) ([]models.UserListItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listUsersWithUsernames)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListWithUsernames").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.UserListItem, 0)
	for rows.Next() {
		var item models.UserListItem
		var username sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.DOB, &item.Identifier, &username); err != nil {
			log.Err(err).Str("func", "*userRepository.ListWithUsernames").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if username.Valid {
			item.Username = &username.String
		}
		users = append(users, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// Count returns the total number of user profiles.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countUsers).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}
