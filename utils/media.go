package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Media kinds stored alongside post attachments.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// ErrUnsupportedMedia is returned when an upload is neither image nor video.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// DetectMediaType sniffs the content bytes and classifies them. The client
// supplied Content-Type header is never trusted.
func DetectMediaType(data []byte) (kind, extension string, err error) {
	mt := mimetype.Detect(data)
	switch {
	case strings.HasPrefix(mt.String(), "image/"):
		return MediaImage, mt.Extension(), nil
	case strings.HasPrefix(mt.String(), "video/"):
		return MediaVideo, mt.Extension(), nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, mt.String())
	}
}

// MediaFilename builds a collision free stored name for an upload.
func MediaFilename(extension string) string {
	return fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.New().String(), extension)
}
