package recognizer

import "errors"

// Sentinel errors returned by [DescriptorExtractor] implementations.
var (
	// ErrNoFaceDetected is returned when the image decodes correctly but the
	// detector finds zero faces in it.
	ErrNoFaceDetected = errors.New("no face detected in image")

	// ErrImageDecode is returned when the payload is not a decodable image
	// (or not valid base64 when a base64 source is used).
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrExtractorUnavailable is returned when the extraction service cannot
	// be reached or fails internally. Callers may retry.
	ErrExtractorUnavailable = errors.New("descriptor extraction service unavailable")
)
