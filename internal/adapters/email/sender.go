// Package email delivers transactional mail: the password-reset link is the
// only message the studio sends.
package email

import (
	"context"
	"time"
)

// SendRequest is one outgoing message.
type SendRequest struct {
	To      []string
	From    string // empty uses the sender's default
	Subject string
	HTML    string
	Text    string // plain-text alternative, optional
	Tags    map[string]string
}

// SendResult identifies a delivered message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers a SendRequest through a provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
