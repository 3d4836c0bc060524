package recognizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MKhiriev/go-face-login/internal/config"
	"github.com/MKhiriev/go-face-login/models"
	"github.com/go-resty/resty/v2"
)

// extractResponse is the wire format of a successful extraction call.
type extractResponse struct {
	Descriptor models.Descriptor `json:"descriptor"`
}

// extractError is the wire format of an extraction failure.
type extractError struct {
	Error string `json:"error"`
}

// httpExtractor is the HTTP implementation of [DescriptorExtractor],
// talking to the extraction service over REST.
type httpExtractor struct {
	client *resty.Client
}

// NewHTTPExtractor constructs a [DescriptorExtractor] that POSTs raw image
// bytes to the extraction service configured in cfg.
func NewHTTPExtractor(cfg config.Recognizer) DescriptorExtractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout)

	return &httpExtractor{client: cli}
}

// ExtractDescriptor implements [DescriptorExtractor].
//
// Status mapping:
//   - 200 with a descriptor payload → success.
//   - 422 → [ErrNoFaceDetected] (the service saw a valid image, zero faces).
//   - 400 → [ErrImageDecode].
//   - anything else (and transport failures) → [ErrExtractorUnavailable].
func (h *httpExtractor) ExtractDescriptor(ctx context.Context, image []byte) (models.Descriptor, error) {
	if len(image) == 0 {
		return nil, ErrImageDecode
	}

	var ok extractResponse
	var fail extractError

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(image).
		SetResult(&ok).
		SetError(&fail).
		Post("/api/v1/descriptor")
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrExtractorUnavailable, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		if len(ok.Descriptor) == 0 {
			return nil, ErrNoFaceDetected
		}
		return ok.Descriptor, nil
	case http.StatusUnprocessableEntity:
		return nil, ErrNoFaceDetected
	case http.StatusBadRequest:
		return nil, ErrImageDecode
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrExtractorUnavailable, resp.StatusCode(), fail.Error)
	}
}
