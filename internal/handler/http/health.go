package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-face-login/internal/utils"
	"github.com/MKhiriev/go-face-login/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.HealthResponse{
		Status:    "ok",
		Message:   "face login server is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}
