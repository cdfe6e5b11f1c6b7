package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/models"
)

// recordRepository is the SQL-backed implementation of [RecordRepository].
// The role-scoped listing is built dynamically with squirrel; the insert
// uses a static query from sql_queries.go.
type recordRepository struct {
	logger  *logger.Logger
	db      *DB
	builder sq.StatementBuilderType
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create persists a new immunization record. The creation timestamp and the
// uploader snapshot are expected to be set by the caller; the repository
// only assigns the ID.
func (r *recordRepository) Create(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, insertRecord,
		record.UserID,
		record.Vaccine,
		record.Date,
		record.Dose,
		record.Filename,
		record.Uploader,
		record.Timestamp,
	).Scan(&record.ID)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Create").Msg("error: inserting record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// List returns records ordered by ID, optionally filtered to a single
// owner. The owner filter implements the role scoping rule: regular users
// pass their own ID, all other roles pass nil and receive the full set.
func (r *recordRepository) List(ctx context.Context, ownerID *int64) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query := r.builder.
		Select("id", "user_id", "vaccine", "date", "dose", "filename", "uploader", "timestamp").
		From("records").
		OrderBy("id")
	if ownerID != nil {
		query = query.Where(sq.Eq{"user_id": *ownerID})
	}

	sqlString, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, sqlString, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Msg("error: query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		var record models.Record
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Vaccine,
			&record.Date,
			&record.Dose,
			&record.Filename,
			&record.Uploader,
			&record.Timestamp,
		)
		if err != nil {
			log.Err(err).Str("func", "*recordRepository.List").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
