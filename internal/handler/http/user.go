package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/service"
	"github.com/MKhiriev/go-face-login/internal/utils"
	"github.com/MKhiriev/go-face-login/models"
)

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in context of authenticated request")
		respondError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var request models.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AuthService.UpdatePassword(ctx, username, request.OldPassword, request.NewPassword); err != nil {
		log.Err(err).Msg("password update failed")
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) updateFace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in context of authenticated request")
		respondError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var request models.UpdateFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	image, err := imageFromPayload(request.Image)
	if err != nil {
		log.Err(err).Msg("invalid image payload")
		respondError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AuthService.UpdateFace(ctx, username, image); err != nil {
		log.Err(err).Msg("face update failed")
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in context of authenticated request")
		respondError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	if err := h.services.AuthService.DeleteAccount(ctx, username); err != nil {
		log.Err(err).Msg("account deletion failed")
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// session echoes the identity asserted by the presented token. The auth
// middleware has already validated it by the time this handler runs.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, ok := utils.GetUsernameFromContext(ctx)
	if !ok {
		log.Error().Msg("no username in context of authenticated request")
		respondError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	utils.WriteJSON(w, models.SessionResponse{Username: username}, http.StatusOK)
}
