package qr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // browser canvases export JPEG
	_ "image/png"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"spinstudio/internal/application/scanner"
)

// MaxFrameBytes bounds a single camera frame.
const MaxFrameBytes = 4 << 20

// Control messages exchanged with the browser as JSON text frames.
const (
	MsgStart  = "start"  // server -> browser: open the camera and stream frames
	MsgStop   = "stop"   // server -> browser: release the camera
	MsgError  = "error"  // browser -> server: the camera could not be opened
	MsgResult = "result" // server -> browser: decoded payload
)

// Control is a JSON text frame.
type Control struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// WebsocketSource is a scanner.FrameSource fed by binary image frames the
// browser sends over conn. The caller owns conn and closes it.
type WebsocketSource struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	stop    sync.Once
}

// NewWebsocketSource wraps an upgraded connection.
func NewWebsocketSource(conn *websocket.Conn) *WebsocketSource {
	conn.SetReadLimit(MaxFrameBytes)
	return &WebsocketSource{conn: conn}
}

// Start asks the browser to open the camera.
func (s *WebsocketSource) Start(_ context.Context) error {
	return s.Send(Control{Type: MsgStart})
}

// Next returns the next decodable frame. Undecodable frames are skipped.
// POST: an error control from the browser yields scanner.ErrCameraUnavailable;
// a closed connection yields io.EOF
func (s *WebsocketSource) Next(ctx context.Context) (image.Image, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.SetReadDeadline(time.Now())
		case <-done:
		}
	}()

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("read frame: %w", err)
		}

		switch kind {
		case websocket.BinaryMessage:
			img, format, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				log.Debug().Err(err).Int("bytes", len(data)).Msg("frame_skipped")
				continue
			}
			log.Trace().Str("format", format).Msg("frame_received")
			return img, nil
		case websocket.TextMessage:
			var c Control
			if err := json.Unmarshal(data, &c); err != nil {
				continue
			}
			if c.Type == MsgError {
				return nil, fmt.Errorf("%w: %s", scanner.ErrCameraUnavailable, c.Message)
			}
			if c.Type == MsgStop {
				return nil, io.EOF
			}
		}
	}
}

// Stop asks the browser to release the camera.
func (s *WebsocketSource) Stop() error {
	var err error
	s.stop.Do(func() {
		err = s.Send(Control{Type: MsgStop})
		if errors.Is(err, websocket.ErrCloseSent) {
			err = nil
		}
	})
	return err
}

// Send writes a control message.
func (s *WebsocketSource) Send(c Control) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return s.conn.WriteJSON(c)
}
