package service

import (
	"github.com/avelichko/immun-registry/internal/config"
	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/avelichko/immun-registry/internal/store"
)

// Services bundles the application services for constructor injection into
// the transport layer.
type Services struct {
	AuthService     AuthService
	RegistryService RegistryService
}

// NewServices wires every service to the shared storages and configuration.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages, cfg.App, logger),
		RegistryService: NewRegistryService(storages, logger),
	}
}
