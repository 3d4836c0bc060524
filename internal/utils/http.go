package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-face-login/models"
)

// WriteJSON serializes data and writes it with the given status code and an
// "application/json" Content-Type.
//
// The body is marshaled before any header is written, so a marshaling
// failure never produces a half-written response: the client receives the
// same JSON error envelope every failing endpoint uses, and the wrapped
// marshal error is returned to the caller.
//
// Example usage:
//
//	WriteJSON(w, models.SessionResponse{Username: username}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		envelope, _ := json.Marshal(models.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
		n, _ := writeJSONBody(w, envelope, http.StatusInternalServerError)
		return n, fmt.Errorf("error marshaling response body: %w", err)
	}

	return writeJSONBody(w, body, statusCode)
}

// WriteJSONError writes the uniform error envelope with the given message.
// Every failing endpoint responds through this helper so error bodies stay
// structurally identical regardless of which check produced them.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, models.ErrorResponse{Error: message}, statusCode)
}

func writeJSONBody(w http.ResponseWriter, body []byte, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}
