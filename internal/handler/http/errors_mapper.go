package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-face-login/internal/service"
	"github.com/MKhiriev/go-face-login/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrNoFaceDetected:          http.StatusBadRequest,
	service.ErrUsernameAlreadyTaken:    http.StatusConflict,
	service.ErrUnauthorized:            http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrIdentifyTimeout:         http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error body for err.
//
// Every 401 carries the same "authentication failed" message no matter which
// check produced it, and every unmapped error collapses into a generic 500,
// so response bodies never reveal which factor or internal step failed.
func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	message := err.Error()
	switch status {
	case http.StatusUnauthorized:
		message = service.ErrUnauthorized.Error()
	case http.StatusInternalServerError:
		message = http.StatusText(http.StatusInternalServerError)
	}

	utils.WriteJSONError(w, message, status)
}
