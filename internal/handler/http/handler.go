package http

import (
	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/service"
)

type Handler struct {
	services *service.Services

	// loginLimiter throttles unauthenticated registration and login
	// attempts per client address. Nil disables rate limiting.
	loginLimiter *keyLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:     services,
		loginLimiter: newKeyLimiter(cfg.LoginRPS, cfg.LoginBurst, 0),
		logger:       logger,
	}
}
