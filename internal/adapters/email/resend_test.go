package email

import (
	"context"
	"errors"
	"testing"
)

func TestResendSender_Params(t *testing.T) {
	s := NewResendSender("re_test", "Studio <hola@example.com>")

	tests := []struct {
		name     string
		req      SendRequest
		wantFrom string
		wantTags []string
	}{
		{
			name:     "default from",
			req:      SendRequest{To: []string{"a@example.com"}, Subject: "s"},
			wantFrom: "Studio <hola@example.com>",
		},
		{
			name:     "override from, tags sorted",
			req:      SendRequest{To: []string{"a@example.com"}, From: "b@example.com", Tags: map[string]string{"z": "1", "a": "2"}},
			wantFrom: "b@example.com",
			wantTags: []string{"a", "z"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := s.params(tt.req)
			if p.From != tt.wantFrom {
				t.Errorf("From = %q, want %q", p.From, tt.wantFrom)
			}
			if len(p.Tags) != len(tt.wantTags) {
				t.Fatalf("Tags = %+v", p.Tags)
			}
			for i, name := range tt.wantTags {
				if p.Tags[i].Name != name {
					t.Errorf("Tags[%d] = %q, want %q", i, p.Tags[i].Name, name)
				}
			}
		})
	}
}

func TestResendSender_NoRecipients(t *testing.T) {
	s := NewResendSender("re_test", "hola@example.com")
	if _, err := s.Send(context.Background(), SendRequest{Subject: "s"}); !errors.Is(err, ErrNoRecipients) {
		t.Errorf("err = %v, want ErrNoRecipients", err)
	}
}
