package class

import "errors"

// Domain errors
var (
	ErrInvalidID       = errors.New("class ID must be positive")
	ErrEmptyName       = errors.New("class name cannot be empty")
	ErrInvalidDuration = errors.New("class duration must be positive")
	ErrNegativeSpots   = errors.New("spots left cannot be negative")
)

// Defaults applied to classes created from the admin dashboard.
const (
	DefaultName      = "Nueva Clase"
	DefaultTime      = "08:00 AM"
	DefaultDuration  = 45
	DefaultSpotsLeft = 20
)

// Class is a scheduled indoor-cycling session.
// InstructorID may reference an instructor that no longer exists.
type Class struct {
	ID           int64
	Name         string
	InstructorID string
	Time         string // display string, e.g. "07:00 AM"
	Duration     int    // minutes
	SpotsLeft    int
}

// Validate checks if the Class has valid data.
// PRE: Class struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Class) Validate() error {
	if c.ID <= 0 {
		return ErrInvalidID
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Duration <= 0 {
		return ErrInvalidDuration
	}
	if c.SpotsLeft < 0 {
		return ErrNegativeSpots
	}
	return nil
}

// New returns a class populated with the admin dashboard defaults.
// instructorID is the first known instructor, or empty when there are none.
func New(id int64, instructorID string) Class {
	return Class{
		ID:           id,
		Name:         DefaultName,
		InstructorID: instructorID,
		Time:         DefaultTime,
		Duration:     DefaultDuration,
		SpotsLeft:    DefaultSpotsLeft,
	}
}
