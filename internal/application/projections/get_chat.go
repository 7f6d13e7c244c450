package projections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spinstudio/internal/domain/chat"
)

// AttachmentView is a file sent with a message.
type AttachmentView struct {
	Type     string `json:"type"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// MessageView is one chat bubble.
type MessageView struct {
	ID         string          `json:"id"`
	Sender     string          `json:"sender"`
	Text       string          `json:"text"`
	Timestamp  time.Time       `json:"timestamp"`
	Clock      string          `json:"clock"` // "15:04", local
	Attachment *AttachmentView `json:"attachment,omitempty"`
}

// ChatView is the support thread as seen by either side.
type ChatView struct {
	UserID   string        `json:"userId"`
	UserName string        `json:"userName"`
	Unread   bool          `json:"unread"`
	Preview  string        `json:"preview"`
	Messages []MessageView `json:"messages"`
}

// QueryGetChat renders the support thread.
// POST: an unseeded store yields an empty thread rather than an error
func QueryGetChat(ctx context.Context, store ChatReader) (ChatView, error) {
	th, err := store.GetThread(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ChatView{Messages: []MessageView{}}, nil
	}
	if err != nil {
		return ChatView{}, fmt.Errorf("load thread: %w", err)
	}

	view := ChatView{
		UserID:   th.UserID,
		UserName: th.UserName,
		Unread:   th.Unread,
		Messages: make([]MessageView, 0, len(th.Messages)),
	}
	if last, ok := th.LastMessage(); ok {
		view.Preview = preview(last)
	}
	for _, m := range th.Messages {
		mv := MessageView{
			ID:        m.ID,
			Sender:    m.Sender,
			Text:      m.Text,
			Timestamp: m.Timestamp,
			Clock:     m.Timestamp.Local().Format("15:04"),
		}
		if m.Attachment != nil {
			mv.Attachment = &AttachmentView{Type: m.Attachment.Type, URL: m.Attachment.URL, FileName: m.Attachment.FileName}
		}
		view.Messages = append(view.Messages, mv)
	}
	return view, nil
}

func preview(m chat.Message) string {
	if m.Text != "" {
		return m.Text
	}
	if m.Attachment != nil && m.Attachment.Type == chat.AttachmentPaymentProof {
		return "Comprobante de pago"
	}
	return "Imagen"
}
