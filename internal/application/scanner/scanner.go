// Package scanner runs a QR scan session against a camera frame source and
// an opaque decoder.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/rs/zerolog/log"
)

// Scan errors
var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrNoCode            = errors.New("no code in frame")
	ErrSourceClosed      = errors.New("frame source closed")
)

// FrameSource is a camera stream.
type FrameSource interface {
	// Start acquires the camera.
	Start(ctx context.Context) error
	// Next blocks until the next frame. io.EOF means the stream ended.
	Next(ctx context.Context) (image.Image, error)
	// Stop releases the camera. It is safe to call more than once.
	Stop() error
}

// Decoder extracts a code payload from a frame.
type Decoder interface {
	// Decode returns ErrNoCode when the frame holds no readable code.
	Decode(img image.Image) (string, error)
}

// Scan reads frames until one decodes.
// PRE: src has not been started
// POST: src.Stop has been called on every return path. Returns the payload,
// ErrCameraUnavailable when the camera cannot be acquired, ErrSourceClosed
// when the stream ends, or ctx's error on cancellation
func Scan(ctx context.Context, src FrameSource, dec Decoder) (string, error) {
	defer func() {
		if err := src.Stop(); err != nil {
			log.Warn().Err(err).Msg("camera_stop_failed")
		}
	}()

	if err := src.Start(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}

	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		img, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return "", ErrSourceClosed
		}
		if err != nil {
			return "", err
		}
		frames++

		text, err := dec.Decode(img)
		if errors.Is(err, ErrNoCode) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("decode frame %d: %w", frames, err)
		}
		log.Debug().Int("frames", frames).Msg("qr_decoded")
		return text, nil
	}
}
