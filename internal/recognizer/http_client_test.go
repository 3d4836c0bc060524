package recognizer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(t *testing.T, handler http.HandlerFunc) DescriptorExtractor {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPExtractor(config.Recognizer{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestExtractDescriptor_Success(t *testing.T) {
	want := models.Descriptor{0.1, -0.2, 0.3}

	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/descriptor", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(extractResponse{Descriptor: want})
	})

	got, err := extractor.ExtractDescriptor(context.Background(), []byte("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExtractDescriptor_NoFace(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(extractError{Error: "no face found"})
	})

	_, err := extractor.ExtractDescriptor(context.Background(), []byte("jpeg bytes"))
	assert.ErrorIs(t, err, ErrNoFaceDetected)
}

func TestExtractDescriptor_EmptyDescriptorIsNoFace(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(extractResponse{})
	})

	_, err := extractor.ExtractDescriptor(context.Background(), []byte("jpeg bytes"))
	assert.ErrorIs(t, err, ErrNoFaceDetected)
}

func TestExtractDescriptor_BadImage(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(extractError{Error: "not an image"})
	})

	_, err := extractor.ExtractDescriptor(context.Background(), []byte("not an image"))
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestExtractDescriptor_ServiceError(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := extractor.ExtractDescriptor(context.Background(), []byte("jpeg bytes"))
	assert.ErrorIs(t, err, ErrExtractorUnavailable)
}

func TestExtractDescriptor_EmptyPayload(t *testing.T) {
	extractor := newTestExtractor(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty payload")
	})

	_, err := extractor.ExtractDescriptor(context.Background(), nil)
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestDecodeBase64Image(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	plain := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		want    []byte
		wantErr bool
	}{
		{"plain base64", plain, raw, false},
		{"data url prefix", "data:image/jpeg;base64," + plain, raw, false},
		{"empty payload", "", nil, true},
		{"not base64", "$$$not-base64$$$", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBase64Image(tt.payload)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrImageDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
