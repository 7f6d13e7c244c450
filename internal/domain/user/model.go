package user

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyID    = errors.New("user ID is required")
	ErrEmptyName  = errors.New("user name cannot be empty")
	ErrEmptyEmail = errors.New("user email cannot be empty")
	ErrNegative   = errors.New("classes completed cannot be negative")
)

// Levels offered on the profile editor.
const (
	LevelBeginner     = "Principiante"
	LevelIntermediate = "Intermedio"
	LevelAdvanced     = "Avanzado"
)

// Levels lists the selectable rider levels in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// User is a rider registered with the studio.
type User struct {
	ID               string
	Name             string
	Email            string
	Level            string
	ClassesCompleted int
	AvatarURL        string
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if u.ClassesCompleted < 0 {
		return ErrNegative
	}
	return nil
}
