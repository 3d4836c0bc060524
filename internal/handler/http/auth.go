package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-face-login/internal/logger"
	"github.com/MKhiriev/go-face-login/internal/recognizer"
	"github.com/MKhiriev/go-face-login/internal/service"
	"github.com/MKhiriev/go-face-login/internal/utils"
	"github.com/MKhiriev/go-face-login/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
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

	credential, err := h.services.AuthService.Register(ctx, request.Username, request.Password, image)
	if err != nil {
		log.Err(err).Msg("registration failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.RegisterResponse{
		Username:    credential.Username,
		HasPassword: credential.HasPassword(),
		HasFace:     credential.HasFace(),
	}, http.StatusOK)
}

func (h *Handler) faceLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.FaceLoginRequest
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

	credential, _, err := h.services.AuthService.LoginByFace(ctx, image)
	if err != nil {
		log.Err(err).Msg("face login failed")
		respondError(w, err)
		return
	}

	token, err := h.services.SessionService.CreateToken(ctx, credential.Username)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondError(w, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Username: credential.Username,
		Token:    token.SignedString,
	}, http.StatusOK)
}

func (h *Handler) verifyLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.VerifyLoginRequest
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

	credential, distance, err := h.services.AuthService.LoginByPasswordAndFace(ctx, request.Username, request.Password, image)
	if err != nil {
		log.Err(err).Msg("two-factor login failed")
		respondError(w, err)
		return
	}

	token, err := h.services.SessionService.CreateToken(ctx, credential.Username)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondError(w, err)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{
		Username: credential.Username,
		Token:    token.SignedString,
		Distance: distance,
	}, http.StatusOK)
}

// imageFromPayload decodes the optional base64 image field of a request body.
// An absent image yields nil bytes; the services decide whether the factor is
// required.
func imageFromPayload(payload string) ([]byte, error) {
	if payload == "" {
		return nil, nil
	}
	return recognizer.DecodeBase64Image(payload)
}
