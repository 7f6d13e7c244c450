package admin_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"spinstudio/internal/domain/admin"
)

func init() {
	admin.HashCost = bcrypt.MinCost
}

// TestCredentials_Check verifies the default password round-trips.
func TestCredentials_Check(t *testing.T) {
	c, err := admin.NewCredentials(admin.DefaultPassword)
	if err != nil {
		t.Fatalf("NewCredentials: %v", err)
	}
	if err := c.Check("admin123"); err != nil {
		t.Errorf("Check(admin123) = %v", err)
	}
	if err := c.Check("Admin123"); err != admin.ErrWrongPassword {
		t.Errorf("Check(Admin123) = %v, want ErrWrongPassword", err)
	}
	var empty admin.Credentials
	if err := empty.Check(""); err != admin.ErrWrongPassword {
		t.Errorf("empty credentials Check = %v, want ErrWrongPassword", err)
	}
}

// TestCredentials_Change covers the ordered validation rules.
func TestCredentials_Change(t *testing.T) {
	tests := []struct {
		name                   string
		current, next, confirm string
		want                   error
	}{
		{"wrong current", "nope", "secret1", "secret1", admin.ErrWrongPassword},
		{"mismatch", "admin123", "secret1", "secret2", admin.ErrPasswordMismatch},
		{"too short", "admin123", "abc", "abc", admin.ErrPasswordTooShort},
		{"mismatch checked before length", "admin123", "abc", "abd", admin.ErrPasswordMismatch},
		{"ok", "admin123", "pedal6", "pedal6", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := admin.NewCredentials(admin.DefaultPassword)
			if err != nil {
				t.Fatalf("NewCredentials: %v", err)
			}
			before := c.PasswordHash
			err = c.Change(tt.current, tt.next, tt.confirm)
			if err != tt.want {
				t.Fatalf("Change error = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				if c.PasswordHash != before {
					t.Error("failed change must keep the old hash")
				}
				return
			}
			if err := c.Check(tt.next); err != nil {
				t.Errorf("new password rejected: %v", err)
			}
			if err := c.Check(admin.DefaultPassword); err == nil {
				t.Error("old password still accepted")
			}
		})
	}
}
