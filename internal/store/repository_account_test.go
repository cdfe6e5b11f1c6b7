package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &accountRepository{
		db:     &DB{DB: db, dialect: "pgx", logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var accountColumns = []string{
	"id", "username", "password_hash", "role",
	"user_id", "last_login", "failed_login_attempts", "is_locked", "lock_until",
}

func TestFindByUsername_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	lastLogin := time.Now().UTC()
	rows := sqlmock.NewRows(accountColumns).
		AddRow(42, "user1", "hash", "User", 7, lastLogin, 0, false, nil)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("user1").
		WillReturnRows(rows)

	account, err := repo.FindByUsername(context.Background(), "user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != 42 {
		t.Errorf("expected ID=42, got %d", account.ID)
	}
	if account.UserID == nil || *account.UserID != 7 {
		t.Errorf("expected UserID=7, got %v", account.UserID)
	}
	if account.LastLogin == nil || !account.LastLogin.Equal(lastLogin) {
		t.Errorf("expected LastLogin=%v, got %v", lastLogin, account.LastLogin)
	}
	if account.LockUntil != nil {
		t.Errorf("expected nil LockUntil, got %v", account.LockUntil)
	}
}

func TestFindByUsername_AdminWithoutProfile(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(accountColumns).
		AddRow(1, "admin", "hash", "Admin", nil, nil, 0, false, nil)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("admin").
		WillReturnRows(rows)

	account, err := repo.FindByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.UserID != nil {
		t.Errorf("expected nil UserID for admin account, got %v", account.UserID)
	}
}

func TestFindByUsername_LockedAccount(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	until := time.Now().UTC().Add(10 * time.Minute)
	rows := sqlmock.NewRows(accountColumns).
		AddRow(42, "user1", "hash", "User", 7, nil, 5, true, until)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("user1").
		WillReturnRows(rows)

	account, err := repo.FindByUsername(context.Background(), "user1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.IsLocked {
		t.Error("expected IsLocked=true")
	}
	if account.FailedLoginAttempts != 5 {
		t.Errorf("expected 5 failed attempts, got %d", account.FailedLoginAttempts)
	}
	if account.LockUntil == nil || !account.LockUntil.Equal(until) {
		t.Errorf("expected LockUntil=%v, got %v", until, account.LockUntil)
	}
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoAccountWasFound) {
		t.Fatalf("expected ErrNoAccountWasFound, got %v", err)
	}
}

func TestFindByUsername_ScanError(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(1) // intentionally wrong shape

	mock.ExpectQuery("SELECT id, username").
		WithArgs("user1").
		WillReturnRows(rows)

	_, err := repo.FindByUsername(context.Background(), "user1")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestMarkLoginSuccess(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(42), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkLoginSuccess(context.Background(), 42, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkLoginFailure_BelowThreshold(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(42), 3, false, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkLoginFailure(context.Background(), 42, 3, false, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkLoginFailure_Locking(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	until := time.Now().UTC().Add(15 * time.Minute)
	mock.ExpectExec("UPDATE accounts").
		WithArgs(int64(42), 5, true, &until).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkLoginFailure(context.Background(), 42, 5, true, &until); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMarkLoginFailure_DBError(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").
		WillReturnError(pgError(pgerrcode.ConnectionException))

	err := repo.MarkLoginFailure(context.Background(), 42, 1, false, nil)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
