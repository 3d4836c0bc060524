// Package recognizer provides the client-side view of the external face
// recognition pipeline (detection, landmark localization, and the embedding
// network that projects a face image into a fixed-length descriptor).
//
// The core holds no model state: every call is an independent request to the
// extraction service. Error values defined in errors.go are mapped from
// transport responses so that callers can use [errors.Is] for
// transport-agnostic error handling.
package recognizer

import (
	"context"

	"github.com/MKhiriev/go-face-login/models"
)

// DescriptorExtractor turns a face image into a fixed-length descriptor.
//
// Implementations must return [ErrNoFaceDetected] when the image decodes but
// contains no detectable face, and [ErrImageDecode] when the payload is not a
// decodable image.
type DescriptorExtractor interface {
	// ExtractDescriptor sends the raw image bytes to the recognition
	// pipeline and returns the face descriptor of the first detected face.
	ExtractDescriptor(ctx context.Context, image []byte) (models.Descriptor, error)
}
