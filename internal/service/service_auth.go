package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avelichko/immun-registry/internal/config"
	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/internal/store"
	"github.com/avelichko/immun-registry/internal/utils"
	"github.com/avelichko/immun-registry/models"
	"golang.org/x/crypto/bcrypt"
)

// Lockout policy: five consecutive failures lock the account for fifteen
// minutes. The lock expires lazily, there is no background timer.
const (
	lockThreshold = 5
	lockDuration  = 15 * time.Minute
)

// authService is the concrete implementation of AuthService.
// It runs the login/lockout state machine over an AccountRepository, issues
// and validates HMAC-SHA256 session tokens, and appends an audit entry for
// every security-relevant transition.
//
// Logout revocation is held in memory: revoked token IDs are kept until the
// token would have expired anyway. The registry runs as a single process
// against a single store, so no shared revocation backend is needed.
type authService struct {
	accountRepository store.AccountRepository
	userRepository    store.UserRepository
	auditRepository   store.AuditLogRepository

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued session token.
	tokenIssuer string

	// tokenDuration is the absolute session lifetime.
	tokenDuration time.Duration

	// revokedMu guards revoked, the jti -> expiry map of logged-out tokens.
	revokedMu sync.Mutex
	revoked   map[string]time.Time

	// now is the clock source, replaceable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories
// and populated with session parameters from cfg.
//
// The returned service is safe for concurrent use.
func NewAuthService(storages *store.Storages, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		accountRepository: storages.AccountRepository,
		userRepository:    storages.UserRepository,
		auditRepository:   storages.AuditLogRepository,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		revoked:           make(map[string]time.Time),
		now:               time.Now,
		logger:            logger,
	}
}

// Login evaluates one credential attempt against the lockout state machine:
//
//  1. Unknown username → ErrInvalidCredentials. No audit entry is written
//     because there is no account to attribute it to.
//  2. Locked account with an unexpired lock → ErrAccountLocked; counters
//     are left untouched.
//  3. Correct password → the failed-attempt counter is reset, the lock
//     cleared, last login recorded, and an audit LOGIN entry written.
//  4. Wrong password → the counter is incremented and persisted; reaching
//     the threshold sets the lock with its expiry; an audit LOGIN_FAILED
//     entry is written; ErrInvalidCredentials.
//
// A lock whose expiry has passed is treated as if it never existed (lazy
// unlock); the state is rewritten on the next successful login.
func (a *authService) Login(ctx context.Context, req models.LoginRequest, sourceAddr string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid login data provided")
		return models.Account{}, ErrInvalidDataProvided
	}

	account, err := a.accountRepository.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoAccountWasFound) {
			log.Warn().Str("username", req.Username).Msg("login attempt for unknown username")
			return models.Account{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", req.Username).Msg("account lookup failed")
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}

	now := a.now().UTC()
	if account.Locked(now) {
		log.Warn().Str("username", req.Username).Time("lock_until", *account.LockUntil).Msg("login attempt on locked account")
		return models.Account{}, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return models.Account{}, a.registerFailure(ctx, account, sourceAddr, now)
	}

	if err := a.accountRepository.MarkLoginSuccess(ctx, account.ID, now); err != nil {
		log.Err(err).Str("username", req.Username).Msg("persisting login success failed")
		return models.Account{}, fmt.Errorf("persisting login success failed: %w", err)
	}

	account.FailedLoginAttempts = 0
	account.IsLocked = false
	account.LockUntil = nil
	account.LastLogin = &now

	if err := a.audit(ctx, account.UserID, models.AuditLogin, "Successful login", sourceAddr); err != nil {
		return models.Account{}, err
	}

	log.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("user successfully logged in")
	return account, nil
}

// registerFailure persists one failed attempt and, at the threshold, the
// transition to the locked state. The counter and lock fields are written
// together regardless of whether the threshold was reached.
func (a *authService) registerFailure(ctx context.Context, account models.Account, sourceAddr string, now time.Time) error {
	log := logger.FromContext(ctx)

	attempts := account.FailedLoginAttempts + 1
	locked := false
	var lockUntil *time.Time
	if attempts >= lockThreshold {
		locked = true
		until := now.Add(lockDuration)
		lockUntil = &until
	}

	if err := a.accountRepository.MarkLoginFailure(ctx, account.ID, attempts, locked, lockUntil); err != nil {
		log.Err(err).Str("username", account.Username).Msg("persisting login failure failed")
		return fmt.Errorf("persisting login failure failed: %w", err)
	}

	if err := a.audit(ctx, account.UserID, models.AuditLoginFailed, "Failed login attempt", sourceAddr); err != nil {
		return err
	}

	log.Warn().
		Str("username", account.Username).
		Int("failed_attempts", attempts).
		Bool("locked", locked).
		Msg("failed login attempt")

	return ErrInvalidCredentials
}

// Register creates a new user profile with a linked regular account. The
// password is hashed with bcrypt before it reaches the store; the plaintext
// is never persisted or logged.
//
// Returns ErrInvalidDataProvided when a required field is missing, or
// store.ErrUsernameAlreadyExists (unwrapped for errors.Is) when the
// username is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, sourceAddr string) (models.User, models.Account, error) {
	log := logger.FromContext(ctx)

	if req.Name == "" || req.Username == "" || req.Password == "" || req.DOB.IsZero() {
		log.Error().Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, models.Account{}, ErrInvalidDataProvided
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.Account{}, fmt.Errorf("hashing password failed: %w", err)
	}

	user := models.User{
		Name:       req.Name,
		DOB:        req.DOB,
		Identifier: req.Identifier,
	}
	account := models.Account{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}

	user, account, err = a.userRepository.CreateWithAccount(ctx, user, account)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user registration failed")
		return models.User{}, models.Account{}, fmt.Errorf("user registration failed: %w", err)
	}

	if err := a.audit(ctx, &user.ID, models.AuditRegister, "New user registration", sourceAddr); err != nil {
		return models.User{}, models.Account{}, err
	}

	log.Info().Int64("user_id", user.ID).Str("username", account.Username).Msg("new user registered")
	return user, account, nil
}

// Logout records the logout in the audit trail and revokes the session
// token so it cannot be replayed for the remainder of its lifetime.
func (a *authService) Logout(ctx context.Context, session models.Session, sourceAddr string) error {
	if err := a.audit(ctx, session.UserID, models.AuditLogout, "User logged out", sourceAddr); err != nil {
		return err
	}

	expiresAt := a.now().Add(a.tokenDuration)
	if session.ExpiresAt != nil {
		expiresAt = session.ExpiresAt.Time
	}
	a.revoke(session.ID, expiresAt)

	return nil
}

// CreateSession issues a signed session token bound to the account's
// identity (account ID, linked user ID, role, username).
func (a *authService) CreateSession(ctx context.Context, account models.Account) (models.Session, error) {
	session, err := utils.GenerateSessionToken(a.tokenIssuer, account, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	return session, nil
}

// ParseSession validates and parses a raw session token string.
//
// It delegates to utils.ValidateAndParseSessionToken, verifying signature,
// issuer, and expiry, then checks the in-memory revocation set. Any
// validation failure is normalised to ErrSessionExpiredOrInvalid so that
// callers do not need to inspect low-level JWT errors.
func (a *authService) ParseSession(ctx context.Context, tokenString string) (models.Session, error) {
	session, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Session{}, ErrSessionExpiredOrInvalid
	}

	if a.isRevoked(session.ID) {
		return models.Session{}, ErrSessionRevoked
	}

	return session, nil
}

// audit appends one entry to the trail. A failed append fails the calling
// operation: the invariant is one audit row per security-relevant action.
func (a *authService) audit(ctx context.Context, userID *int64, action, details, sourceAddr string) error {
	_, err := a.auditRepository.Append(ctx, models.AuditLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: sourceAddr,
		Timestamp: models.Now(),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("action", action).Msg("writing audit log entry failed")
		return fmt.Errorf("writing audit log entry failed: %w", err)
	}

	return nil
}

func (a *authService) revoke(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}

	a.revokedMu.Lock()
	defer a.revokedMu.Unlock()

	// Drop entries for tokens that have expired on their own.
	now := a.now()
	for id, exp := range a.revoked {
		if now.After(exp) {
			delete(a.revoked, id)
		}
	}

	a.revoked[tokenID] = expiresAt
}

func (a *authService) isRevoked(tokenID string) bool {
	a.revokedMu.Lock()
	defer a.revokedMu.Unlock()

	exp, ok := a.revoked[tokenID]
	if !ok {
		return false
	}
	if a.now().After(exp) {
		delete(a.revoked, tokenID)
		return false
	}

	return true
}
