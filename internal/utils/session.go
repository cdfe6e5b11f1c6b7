package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avelichko/immun-registry/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateSessionToken creates a signed HMAC-SHA256 session token bound to
// the given account.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account ID encoded as a string
//   - ID        (jti): a fresh UUID identifying the token for revocation
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration — the session
//     lifetime is absolute, not extended by activity
//   - uid, role, username: the identity the session is bound to
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	account       - the authenticated account the session belongs to
//	tokenDuration - how long the session remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns the session (signed string plus decoded claims) or an error if
// any parameter is empty or signing fails.
func GenerateSessionToken(issuer string, account models.Account, tokenDuration time.Duration, signKey string) (models.Session, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Session{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(account.ID, 10),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   account.UserID,
		Role:     account.Role,
		Username: account.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Session{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Session{Token: token, SessionClaims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseSessionToken validates the given session token string and
// extracts its claims.
//
// Validation includes:
//   - signature verification using the provided sign key
//   - issuer (iss) claim check against the provided tokenIssuer
//   - expiration (exp) claim check
//   - subject (sub) claim presence and conversion to an account ID
//
// Returns the decoded session or an error if validation fails, claims are
// missing, or the subject cannot be parsed.
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Session, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Session{}, fmt.Errorf("error occurred validating and parsing session token: %w", err)
	}

	session := models.Session{Token: token, SessionClaims: *claims, SignedString: tokenString}
	if _, err := session.AccountID(); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// ParseBearerToken extracts the token part from an
// "Authorization: Bearer <token>" header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
