package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the JWT claim set carried by every session token.
//
// The registered "sub" claim holds the account ID; the private claims carry
// the linked user ID (absent for admin-family accounts), the role, and the
// username snapshot. The "jti" claim identifies the token for revocation
// on logout. Tokens have an absolute lifetime: expiry is set at issue time
// and is not extended by activity.
type SessionClaims struct {
	jwt.RegisteredClaims

	// UserID is the linked profile user ID, omitted for accounts with
	// no profile.
	UserID *int64 `json:"uid,omitempty"`

	// Role is the account role at issue time.
	Role string `json:"role"`

	// Username is the account username at issue time.
	Username string `json:"username"`
}

// Session wraps an authenticated session token together with the identity
// it is bound to.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Session struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string
	// form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SessionClaims is the decoded claim set of the token.
	SessionClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// AccountID extracts the account identifier from the session's "sub" claim.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (s *Session) AccountID() (int64, error) {
	sub, err := s.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting account ID from session: %w", err)
	}

	accountID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting account ID from session to int64: %w", err)
	}

	return accountID, nil
}

// Principal returns the caller identity the session is bound to.
func (s *Session) Principal() Principal {
	accountID, _ := s.AccountID()
	return Principal{
		AccountID: accountID,
		UserID:    s.UserID,
		Role:      s.Role,
		Username:  s.Username,
	}
}

// String returns the compact JWS serialization of the token.
// It implements the fmt.Stringer interface.
func (s *Session) String() string {
	return s.SignedString
}

// Principal is the authenticated caller identity stored in the request
// context by the auth middleware and consumed by handlers and services.
type Principal struct {
	// AccountID is the authenticated account.
	AccountID int64

	// UserID is the linked profile user, nil for admin-family accounts.
	UserID *int64

	// Role is the caller's role as read from the session, not re-queried
	// from the store.
	Role string

	// Username is the caller's username snapshot.
	Username string
}

// Owns reports whether the principal may act on records belonging to
// userID. Regular users own only their own records; every other role is
// unrestricted.
func (p Principal) Owns(userID int64) bool {
	if p.Role != RoleUser {
		return true
	}
	return p.UserID != nil && *p.UserID == userID
}
