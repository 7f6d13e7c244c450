package chat

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyID            = errors.New("message ID is required")
	ErrInvalidSender      = errors.New("sender must be user or admin")
	ErrEmptyMessage       = errors.New("message needs text or an attachment")
	ErrInvalidAttachment  = errors.New("attachment type must be image or payment-proof")
	ErrEmptyAttachmentURL = errors.New("attachment URL is required")
	ErrMissingTimestamp   = errors.New("message timestamp must be set")
)

// Senders
const (
	SenderUser  = "user"
	SenderAdmin = "admin"
)

// Attachment types
const (
	AttachmentImage        = "image"
	AttachmentPaymentProof = "payment-proof"
)

// Attachment is a file sent alongside a chat message, held as a data URL.
type Attachment struct {
	Type     string
	URL      string
	FileName string
}

// Message is one entry in the support thread.
type Message struct {
	ID         string
	Sender     string
	Text       string
	Timestamp  time.Time
	Attachment *Attachment
}

// Validate checks if the Message has valid data.
// PRE: Message struct is populated
// POST: Returns nil if valid, error otherwise
func (m *Message) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.Sender != SenderUser && m.Sender != SenderAdmin {
		return ErrInvalidSender
	}
	if strings.TrimSpace(m.Text) == "" && m.Attachment == nil {
		return ErrEmptyMessage
	}
	if m.Attachment != nil {
		if m.Attachment.Type != AttachmentImage && m.Attachment.Type != AttachmentPaymentProof {
			return ErrInvalidAttachment
		}
		if m.Attachment.URL == "" {
			return ErrEmptyAttachmentURL
		}
	}
	if m.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}

// Thread is the support conversation between a rider and the studio.
type Thread struct {
	UserID   string
	UserName string
	Unread   bool
	Messages []Message
}

// Append adds a message and clears the unread flag.
// PRE: m passes Validate
// POST: Messages grows by one; Unread is false
func (t *Thread) Append(m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	t.Messages = append(t.Messages, m)
	t.MarkRead()
	return nil
}

// MarkRead clears the unread flag.
// POST: Unread is false
func (t *Thread) MarkRead() {
	t.Unread = false
}

// LastMessage returns the most recent message, if any.
// INVARIANT: Thread is not mutated
func (t *Thread) LastMessage() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}
