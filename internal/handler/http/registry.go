package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/internal/service"
	"github.com/avelichko/immun-registry/internal/utils"
	"github.com/avelichko/immun-registry/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	users, err := h.services.RegistryService.ListUsers(r.Context())
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during user listing")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	records, err := h.services.RegistryService.ListRecords(ctx, principal)
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during record listing")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) addRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	principal, ok := utils.GetPrincipalFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.AddRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if _, err := h.services.RegistryService.AddRecord(ctx, principal, req, sourceAddr(r)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid record data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrForbiddenRecordAccess):
			log.Err(err).Msg("ownership violation on record creation")
			http.Error(w, "Permission denied", http.StatusForbidden)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during record creation")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.StatusResponse{Success: true, Message: "Record added successfully"}, http.StatusOK)
}

func (h *Handler) listAuditLogs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	entries, err := h.services.RegistryService.ListAuditLogs(r.Context())
	if err != nil {
		log.Err(err).Msg("unexpected error occurred during audit log listing")
		status := statusFromError(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}
