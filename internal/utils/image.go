package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrMalformedImage = errors.New("malformed base64 image payload")

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeBase64Image accepts either a bare base64 string or a
// "data:image/png;base64,..." data URI and returns the raw bytes together
// with the declared content type and file extension.
func DecodeBase64Image(payload string) ([]byte, string, string, error) {
	contentType := "image/png"

	if strings.HasPrefix(payload, "data:") {
		sep := strings.Index(payload, ";base64,")
		if sep < 0 {
			return nil, "", "", ErrMalformedImage
		}
		contentType = payload[len("data:"):sep]
		payload = payload[sep+len(";base64,"):]
	}

	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, "", "", ErrMalformedImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", "", ErrMalformedImage
	}
	if len(data) == 0 {
		return nil, "", "", ErrMalformedImage
	}

	return data, contentType, ext, nil
}
