package service

import (
	"context"
	"fmt"

	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/internal/store"
	"github.com/avelichko/immun-registry/models"
)

// auditLogLimit caps the audit trail listing at the most recent entries.
const auditLogLimit = 100

// registryService is the concrete implementation of RegistryService. It
// maps the CRUD operations onto the repositories and enforces the
// record-level ownership rule.
type registryService struct {
	userRepository   store.UserRepository
	recordRepository store.RecordRepository
	auditRepository  store.AuditLogRepository

	logger *logger.Logger
}

// NewRegistryService constructs a RegistryService wired to the given
// repositories.
func NewRegistryService(storages *store.Storages, logger *logger.Logger) RegistryService {
	return &registryService{
		userRepository:   storages.UserRepository,
		recordRepository: storages.RecordRepository,
		auditRepository:  storages.AuditLogRepository,
		logger:           logger,
	}
}

// ListUsers returns every user profile with its denormalized username.
// Role gating happens at the transport boundary; the service itself does
// not re-check.
func (s *registryService) ListUsers(ctx context.Context) ([]models.UserListItem, error) {
	users, err := s.userRepository.ListWithUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// ListRecords returns records visible to the principal: regular users get
// only records they own, every other role gets the full set.
func (s *registryService) ListRecords(ctx context.Context, principal models.Principal) ([]models.Record, error) {
	var ownerID *int64
	if principal.Role == models.RoleUser {
		ownerID = principal.UserID
	}

	records, err := s.recordRepository.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing records failed: %w", err)
	}

	return records, nil
}

// AddRecord validates the request, enforces the ownership rule, persists
// the record with the caller's username snapshotted as uploader, and audits
// the addition attributed to the caller (not to the record's owning user).
//
// Returns ErrInvalidDataProvided on missing fields and
// ErrForbiddenRecordAccess when a regular user targets another user's
// records; in both cases the store is left untouched.
func (s *registryService) AddRecord(ctx context.Context, principal models.Principal, req models.AddRecordRequest, sourceAddr string) (models.Record, error) {
	log := logger.FromContext(ctx)

	if req.UserID == 0 || req.Vaccine == "" || req.Filename == "" || req.Date.IsZero() {
		log.Error().Int64("user_id", req.UserID).Msg("invalid record data provided")
		return models.Record{}, ErrInvalidDataProvided
	}

	if !principal.Owns(req.UserID) {
		log.Warn().
			Int64("target_user_id", req.UserID).
			Str("role", principal.Role).
			Str("username", principal.Username).
			Msg("ownership violation on record creation")
		return models.Record{}, ErrForbiddenRecordAccess
	}

	record := models.Record{
		UserID:    req.UserID,
		Vaccine:   req.Vaccine,
		Date:      req.Date,
		Dose:      req.Dose,
		Filename:  req.Filename,
		Uploader:  principal.Username,
		Timestamp: models.Now(),
	}

	record, err := s.recordRepository.Create(ctx, record)
	if err != nil {
		return models.Record{}, fmt.Errorf("creating record failed: %w", err)
	}

	entry := models.AuditLog{
		UserID:    principal.UserID,
		Action:    models.AuditAddRecord,
		Details:   fmt.Sprintf("Added record for user %d", req.UserID),
		IPAddress: sourceAddr,
		Timestamp: models.Now(),
	}
	if _, err := s.auditRepository.Append(ctx, entry); err != nil {
		log.Err(err).Msg("writing audit log entry failed")
		return models.Record{}, fmt.Errorf("writing audit log entry failed: %w", err)
	}

	log.Info().Int64("record_id", record.ID).Int64("user_id", record.UserID).Msg("record added")
	return record, nil
}

// ListAuditLogs returns the most recent audit entries, newest first,
// limited to auditLogLimit rows.
func (s *registryService) ListAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	entries, err := s.auditRepository.ListRecent(ctx, auditLogLimit)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs failed: %w", err)
	}

	return entries, nil
}
