package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"spinstudio/internal/adapters/qr"
	"spinstudio/internal/application/scanner"
	"spinstudio/internal/application/studio"
	"spinstudio/internal/domain/navigation"
)

// handleScanner handles GET /ws/scanner.
// The browser streams camera frames as binary messages; the first decoded
// QR payload is dispatched to the instance and echoed back as a result
// control. One upgrade runs one scan.
// PRE: the QR scanner screen is showing
// POST: the scanner screen holds the result, or the camera error
func (s *server) handleScanner(w http.ResponseWriter, r *http.Request) {
	app, ok := appFor(w, r)
	if !ok {
		return
	}
	if app.Screen().Name() != navigation.NameQRScanner {
		s.respondError(w, r, app, studio.ErrWrongScreen)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		log.Warn().Err(err).Str("studio", app.ID()).Msg("scanner_upgrade_failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	src := qr.NewWebsocketSource(conn)
	if err := app.Dispatch(ctx, studio.ScanStarted{}); err != nil {
		closeScanner(conn, err)
		return
	}

	text, err := scanner.Scan(ctx, src, qr.Decoder{TryHarder: true})
	switch {
	case err == nil:
		if err := app.Dispatch(ctx, studio.ScanResult{Text: text}); err != nil {
			closeScanner(conn, err)
			return
		}
		if err := src.Send(qr.Control{Type: qr.MsgResult, Text: text}); err != nil {
			log.Debug().Err(err).Msg("scanner_result_send_failed")
		}
	case errors.Is(err, scanner.ErrCameraUnavailable):
		if derr := app.Dispatch(ctx, studio.ScanFailed{Err: err}); derr != nil {
			log.Debug().Err(derr).Msg("scan_failure_not_recorded")
		}
		src.Send(qr.Control{Type: qr.MsgError, Message: studio.MsgCameraUnavailable})
	case errors.Is(err, scanner.ErrSourceClosed), errors.Is(err, context.Canceled):
		// The browser stopped streaming; back to idle so it can scan again.
		if derr := app.Dispatch(context.WithoutCancel(ctx), studio.ScanAgain{}); derr != nil {
			log.Debug().Err(derr).Msg("scan_reset_skipped")
		}
	default:
		log.Warn().Err(err).Str("studio", app.ID()).Msg("scan_failed")
	}
	closeScanner(conn, nil)
}

// closeScanner sends a close frame describing why the scan ended.
func closeScanner(conn *websocket.Conn, err error) {
	code, text := websocket.CloseNormalClosure, ""
	if err != nil {
		code, text = websocket.ClosePolicyViolation, err.Error()
		log.Debug().Err(err).Msg("scanner_closed")
	}
	msg := websocket.FormatCloseMessage(code, text)
	if werr := conn.WriteMessage(websocket.CloseMessage, msg); werr != nil && !errors.Is(werr, websocket.ErrCloseSent) {
		log.Trace().Err(werr).Msg("scanner_close_frame_failed")
	}
}
