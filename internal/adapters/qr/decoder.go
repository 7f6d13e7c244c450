// Package qr adapts camera frames streamed over a websocket and the gozxing
// QR reader to the scanner capabilities.
package qr

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"spinstudio/internal/application/scanner"
)

// Decoder reads QR codes with gozxing.
type Decoder struct {
	// TryHarder trades speed for accuracy on blurry frames.
	TryHarder bool
}

// Decode implements scanner.Decoder.
// POST: frames without a readable code return scanner.ErrNoCode
func (d Decoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize frame: %w", err)
	}

	var hints map[gozxing.DecodeHintType]interface{}
	if d.TryHarder {
		hints = map[gozxing.DecodeHintType]interface{}{gozxing.DecodeHintType_TRY_HARDER: true}
	}

	res, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	var re gozxing.ReaderException
	if errors.As(err, &re) {
		return "", scanner.ErrNoCode
	}
	if err != nil {
		return "", err
	}
	return res.GetText(), nil
}
