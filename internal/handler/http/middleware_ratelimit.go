package http

import (
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/utils"
)

// withLoginRateLimit throttles unauthenticated credential-guessing surfaces
// (registration and both login endpoints) per client address. Requests over
// the limit are rejected with HTTP 429 before the body is even read.
func (h *Handler) withLoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.loginLimiter.Allow(clientAddr(r), time.Now()) {
			logger.FromRequest(r).Warn().Str("addr", r.RemoteAddr).Msg("login rate limit exceeded")
			utils.WriteJSONError(w, "too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddr derives the limiter key from the request: the X-Real-IP header
// when a reverse proxy sets it, otherwise the remote address without the port.
func clientAddr(r *http.Request) string {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
