package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/models"
)

// auditLogRepository is the SQL-backed implementation of
// [AuditLogRepository]. The table is append-only: the repository exposes no
// update or delete operations, mirroring the immutability of the trail.
type auditLogRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

// NewAuditLogRepository constructs an [AuditLogRepository] backed by the
// provided database connection and logger.
func NewAuditLogRepository(db *DB, logger *logger.Logger) AuditLogRepository {
	logger.Debug().Msg("creating audit log repository")
	return &auditLogRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Append persists a new audit entry.
func (r *auditLogRepository) Append(ctx context.Context, entry models.AuditLog) (models.AuditLog, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, insertAuditLog,
		entry.UserID,
		entry.Action,
		entry.Details,
		entry.IPAddress,
		entry.Timestamp,
	).Scan(&entry.ID)
	if err != nil {
		log.Err(err).Str("func", "*auditLogRepository.Append").Msg("error: inserting audit log entry")
		return models.AuditLog{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

// ListRecent returns at most limit entries, newest first. Ties on the
// second-resolution timestamp are broken by ID so the order stays stable.
func (r *auditLogRepository) ListRecent(ctx context.Context, limit uint64) ([]models.AuditLog, error) {
	log := logger.FromContext(ctx)

	sqlString, args, err := r.builder.
		Select("id", "user_id", "action", "details", "ip_address", "timestamp").
		From("audit_logs").
		OrderBy("timestamp DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, sqlString, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditLogRepository.ListRecent").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AuditLog, 0, limit)
	for rows.Next() {
		var entry models.AuditLog
		var userID sql.NullInt64
		if err := rows.Scan(&entry.ID, &userID, &entry.Action, &entry.Details, &entry.IPAddress, &entry.Timestamp); err != nil {
			log.Err(err).Str("func", "*auditLogRepository.ListRecent").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if userID.Valid {
			entry.UserID = &userID.Int64
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
