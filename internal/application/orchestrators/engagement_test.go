package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"spinstudio/internal/domain/chat"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/user"
)

// --- ExecuteSubmitReview tests ---

// TestExecuteSubmitReview_RecomputesRating tests the rounded mean after a new review.
func TestExecuteSubmitReview_RecomputesRating(t *testing.T) {
	store := newMockInstructorStore(instructor.Instructor{
		ID: "javier_m", Name: "Javier Moreno", Rating: 4.8,
		Reviews: []instructor.Review{{UserName: "Sofia L.", Rating: 4}},
	})
	got, err := ExecuteSubmitReview(context.Background(), SubmitReviewInput{
		InstructorID: "javier_m", UserName: "Alex Morgan", Rating: 5, Comment: "¡Genial!",
	}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Rating != 4.5 || len(got.Reviews) != 2 {
		t.Errorf("rating/reviews = %v/%d, want 4.5/2", got.Rating, len(got.Reviews))
	}
	if store.instructors["javier_m"].Rating != 4.5 {
		t.Error("expected the new rating to be persisted")
	}
}

// TestExecuteSubmitReview_Errors tests the rejection paths.
func TestExecuteSubmitReview_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   SubmitReviewInput
		wantErr error
	}{
		{"unknown instructor", SubmitReviewInput{InstructorID: "x", UserName: "A", Rating: 5}, ErrInstructorNotFound},
		{"rating too low", SubmitReviewInput{InstructorID: "isabella_r", UserName: "A", Rating: 0}, instructor.ErrInvalidRating},
		{"rating too high", SubmitReviewInput{InstructorID: "isabella_r", UserName: "A", Rating: 6}, instructor.ErrInvalidRating},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockInstructorStore(isabella)
			_, err := ExecuteSubmitReview(context.Background(), tt.input, store)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(store.instructors["isabella_r"].Reviews) != 2 {
				t.Error("rejected review was stored")
			}
		})
	}
}

// --- Chat tests ---

// mockChatStore implements ChatStoreForOrchestrator for testing.
type mockChatStore struct {
	thread chat.Thread
}

func (m *mockChatStore) GetThread(_ context.Context) (chat.Thread, error) {
	th := m.thread
	th.Messages = append([]chat.Message(nil), m.thread.Messages...)
	return th, nil
}

func (m *mockChatStore) AppendMessage(_ context.Context, _ string, msg chat.Message) error {
	m.thread.Messages = append(m.thread.Messages, msg)
	m.thread.Unread = false
	return nil
}

func (m *mockChatStore) SetUnread(_ context.Context, _ string, unread bool) error {
	m.thread.Unread = unread
	return nil
}

func newMockChatStore() *mockChatStore {
	return &mockChatStore{thread: chat.Thread{
		UserID: "user_alex_morgan", UserName: "Alex Morgan", Unread: true,
		Messages: []chat.Message{{ID: "m1", Sender: chat.SenderUser, Text: "Hola", Timestamp: fixedTime.Add(-5 * time.Minute)}},
	}}
}

// TestExecuteSendMessage tests text, attachment and blank messages.
func TestExecuteSendMessage(t *testing.T) {
	proof := &chat.Attachment{Type: chat.AttachmentPaymentProof, URL: "data:image/png;base64,AAAA", FileName: "recibo.png"}
	tests := []struct {
		name    string
		input   SendMessageInput
		wantErr error
	}{
		{"text", SendMessageInput{Sender: chat.SenderUser, Text: "¿Hay clase mañana?"}, nil},
		{"attachment only", SendMessageInput{Sender: chat.SenderUser, Attachment: proof}, nil},
		{"admin reply", SendMessageInput{Sender: chat.SenderAdmin, Text: "Sí"}, nil},
		{"blank", SendMessageInput{Sender: chat.SenderUser, Text: "   "}, chat.ErrEmptyMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockChatStore()
			th, err := ExecuteSendMessage(context.Background(), tt.input, SendMessageDeps{
				ChatStore: store, GenerateID: fixedID, Now: fixedNow,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(store.thread.Messages) != 1 {
					t.Error("blank message was stored")
				}
				return
			}
			last, _ := th.LastMessage()
			if last.ID != "m-test-id-001" || !last.Timestamp.Equal(fixedTime) {
				t.Errorf("last = %+v", last)
			}
			if th.Unread || store.thread.Unread {
				t.Error("expected thread to be marked read")
			}
			if len(store.thread.Messages) != 2 {
				t.Errorf("stored messages = %d, want 2", len(store.thread.Messages))
			}
		})
	}
}

// TestExecuteMarkThreadRead tests the unread flag is cleared.
func TestExecuteMarkThreadRead(t *testing.T) {
	store := newMockChatStore()
	if err := ExecuteMarkThreadRead(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.thread.Unread {
		t.Error("expected thread to be read")
	}
}

// --- ExecuteUpdateProfile tests ---

// mockUserStore implements the user store interfaces for testing.
type mockUserStore struct {
	users map[string]user.User
	saves int
}

func newMockUserStore(us ...user.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]user.User)}
	for _, u := range us {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockUserStore) Save(_ context.Context, u user.User) error {
	m.users[u.ID] = u
	m.saves++
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

var alex = user.User{ID: "user_alex_morgan", Name: "Alex Morgan", Email: "alex.morgan@example.com", Level: user.LevelIntermediate, ClassesCompleted: 23}

// TestExecuteUpdateProfile tests that edits reach both the current user and the roster.
func TestExecuteUpdateProfile(t *testing.T) {
	store := newMockUserStore(alex)
	got, err := ExecuteUpdateProfile(context.Background(), alex, UpdateProfileInput{
		Name: "Alex M.", Level: user.LevelAdvanced,
	}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alex M." || got.Level != user.LevelAdvanced || got.ClassesCompleted != 23 {
		t.Errorf("updated = %+v", got)
	}
	if store.users[alex.ID].Name != "Alex M." {
		t.Error("roster entry not replaced")
	}
}

// TestExecuteUpdateProfile_RemovedFromRoster tests that a deleted user is not re-added.
func TestExecuteUpdateProfile_RemovedFromRoster(t *testing.T) {
	store := newMockUserStore()
	got, err := ExecuteUpdateProfile(context.Background(), alex, UpdateProfileInput{Name: "Alex M."}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Alex M." {
		t.Errorf("name = %s", got.Name)
	}
	if store.saves != 0 || len(store.users) != 0 {
		t.Error("removed user was re-added to the roster")
	}
}
