package store

import (
	"github.com/avelichko/immun-registry/internal/logger"
)

// Storages bundles all repositories behind their interfaces so the service
// layer depends on one constructor-injected value instead of ambient
// globals.
type Storages struct {
	AccountRepository  AccountRepository
	UserRepository     UserRepository
	RecordRepository   RecordRepository
	AuditLogRepository AuditLogRepository
}

// NewStorages wires every repository to the shared database connection.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		AccountRepository:  NewAccountRepository(db, logger),
		UserRepository:     NewUserRepository(db, logger),
		RecordRepository:   NewRecordRepository(db, logger),
		AuditLogRepository: NewAuditLogRepository(db, logger),
	}
}
