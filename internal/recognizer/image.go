package recognizer

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64Image decodes a base64 image payload as submitted by browser
// clients. A "data:image/...;base64," data-URL prefix is stripped when
// present. Returns [ErrImageDecode] for empty or undecodable input.
func DecodeBase64Image(payload string) ([]byte, error) {
	if idx := strings.IndexByte(payload, ','); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrImageDecode
	}

	image, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrImageDecode
	}

	return image, nil
}
