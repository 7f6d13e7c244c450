package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/domain/chat"
)

// ChatStoreForOrchestrator defines the store interface needed by chat orchestrators.
type ChatStoreForOrchestrator interface {
	GetThread(ctx context.Context) (chat.Thread, error)
	AppendMessage(ctx context.Context, userID string, m chat.Message) error
	SetUnread(ctx context.Context, userID string, unread bool) error
}

// SendMessageInput carries input for the send message orchestrator.
type SendMessageInput struct {
	Sender     string // chat.SenderUser or chat.SenderAdmin
	Text       string
	Attachment *chat.Attachment
}

// SendMessageDeps holds dependencies for SendMessage.
type SendMessageDeps struct {
	ChatStore  ChatStoreForOrchestrator
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSendMessage appends a message to the support thread.
// PRE: none
// POST: Returns chat.ErrEmptyMessage for blank text without attachment;
// otherwise the message is appended and the thread is marked read
func ExecuteSendMessage(ctx context.Context, input SendMessageInput, deps SendMessageDeps) (chat.Thread, error) {
	th, err := deps.ChatStore.GetThread(ctx)
	if err != nil {
		return chat.Thread{}, fmt.Errorf("load thread: %w", err)
	}

	m := chat.Message{
		ID:         "m-" + deps.GenerateID(),
		Sender:     input.Sender,
		Text:       input.Text,
		Timestamp:  deps.Now(),
		Attachment: input.Attachment,
	}
	if err := th.Append(m); err != nil {
		return chat.Thread{}, err
	}

	if err := deps.ChatStore.AppendMessage(ctx, th.UserID, m); err != nil {
		return chat.Thread{}, fmt.Errorf("append message: %w", err)
	}

	log.Debug().
		Str("event", "message_sent").
		Str("message_id", m.ID).
		Str("sender", m.Sender).
		Bool("attachment", m.Attachment != nil).
		Msg("chat_event")
	return th, nil
}

// ExecuteMarkThreadRead clears the unread flag when the thread is opened.
// POST: Thread.Unread is false; no write happens if it already was
func ExecuteMarkThreadRead(ctx context.Context, store ChatStoreForOrchestrator) error {
	th, err := store.GetThread(ctx)
	if err != nil {
		return fmt.Errorf("load thread: %w", err)
	}
	if !th.Unread {
		return nil
	}
	th.MarkRead()
	if err := store.SetUnread(ctx, th.UserID, th.Unread); err != nil {
		return fmt.Errorf("mark thread read: %w", err)
	}
	return nil
}
