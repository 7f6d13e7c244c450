// Package imagedata turns uploaded images into data URLs, the form avatars
// and chat attachments are stored in.
package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// MaxBytes bounds an uploaded image.
const MaxBytes = 5 << 20

// Upload errors
var (
	ErrEmpty        = errors.New("image is empty")
	ErrTooLarge     = errors.New("image exceeds 5 MB")
	ErrNotImage     = errors.New("file is not a supported image")
	ErrTypeMismatch = errors.New("declared type does not match the file contents")
)

var allowed = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Encode reads an image and returns it as a base64 data URL.
// PRE: declaredType is the client's Content-Type, or ""
// POST: the returned URL's media type is the sniffed one
func Encode(r io.Reader, declaredType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > MaxBytes {
		return "", ErrTooLarge
	}

	sniffed := http.DetectContentType(data)
	if !allowed[sniffed] {
		return "", fmt.Errorf("%w: %s", ErrNotImage, sniffed)
	}
	if declaredType != "" {
		declared, _, err := mime.ParseMediaType(declaredType)
		if err == nil && declared != sniffed && declared != "application/octet-stream" {
			return "", fmt.Errorf("%w: declared %s, got %s", ErrTypeMismatch, declared, sniffed)
		}
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(sniffed) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(sniffed)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}
