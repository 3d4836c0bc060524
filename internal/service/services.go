package service

import (
	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/matcher"
	"github.com/MKhiriev/go-face-login/internal/recognizer"
	"github.com/MKhiriev/go-face-login/internal/store"
	"github.com/MKhiriev/go-face-login/internal/workers"
)

type Services struct {
	AuthService    AuthService
	SessionService SessionService
}

func NewServices(
	storages *store.Storages,
	extractor recognizer.DescriptorExtractor,
	faceMatcher matcher.Matcher,
	pool *workers.Pool,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.CredentialRepository, extractor, faceMatcher, pool, cfg.Auth, cfg.Matcher, logger),
		SessionService: NewSessionService(cfg.Auth, logger),
	}
}
