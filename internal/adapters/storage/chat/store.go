package chat

import (
	"context"

	domain "spinstudio/internal/domain/chat"
)

// Store persists the support thread and its messages.
type Store interface {
	GetThread(ctx context.Context) (domain.Thread, error)
	SaveThread(ctx context.Context, value domain.Thread) error
	AppendMessage(ctx context.Context, userID string, m domain.Message) error
	SetUnread(ctx context.Context, userID string, unread bool) error
}
