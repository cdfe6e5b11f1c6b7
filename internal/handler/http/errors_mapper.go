package http

import (
	"errors"
	"net/http"

	"github.com/avelichko/immun-registry/internal/service"
	"github.com/avelichko/immun-registry/internal/store"
)

// errorStatusMap is the single source of truth for translating sentinel
// errors from the service and store layers into HTTP status codes.
// Anything not listed maps to 500, with detail kept server-side only.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrAccountLocked:           http.StatusUnauthorized,
	service.ErrSessionExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrSessionRevoked:          http.StatusUnauthorized,
	service.ErrForbiddenRecordAccess:   http.StatusForbidden,

	store.ErrUsernameAlreadyExists: http.StatusBadRequest,
	store.ErrNoAccountWasFound:     http.StatusUnauthorized,
	store.ErrRecordNotSaved:        http.StatusInternalServerError,
	store.ErrAuditLogNotSaved:      http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
