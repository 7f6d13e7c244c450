package reward

import (
	"errors"
	"sort"
)

// Domain errors
var (
	ErrInvalidID        = errors.New("reward ID must be positive")
	ErrEmptyTitle       = errors.New("reward title cannot be empty")
	ErrInvalidThreshold = errors.New("required classes must be positive")
)

// Defaults applied to rewards created from the admin dashboard.
const (
	DefaultTitle           = "Nueva Recompensa"
	DefaultDescription     = "Descripción"
	DefaultRequiredClasses = 100
)

// Reward is a loyalty milestone unlocked by completing classes.
type Reward struct {
	ID              int64
	Title           string
	Description     string // markdown
	RequiredClasses int
}

// Validate checks if the Reward has valid data.
// PRE: Reward struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Reward) Validate() error {
	if r.ID <= 0 {
		return ErrInvalidID
	}
	if r.Title == "" {
		return ErrEmptyTitle
	}
	if r.RequiredClasses <= 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// Unlocked reports whether a rider with classesCompleted has earned this reward.
func (r *Reward) Unlocked(classesCompleted int) bool {
	return classesCompleted >= r.RequiredClasses
}

// Next returns the lowest-threshold reward not yet unlocked.
// PRE: none
// POST: ok is false when every reward is unlocked or rewards is empty
func Next(rewards []Reward, classesCompleted int) (next Reward, ok bool) {
	sorted := make([]Reward, len(rewards))
	copy(sorted, rewards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RequiredClasses < sorted[j].RequiredClasses
	})
	for _, r := range sorted {
		if !r.Unlocked(classesCompleted) {
			return r, true
		}
	}
	return Reward{}, false
}

// Progress returns completion towards r as a whole percentage in 0..100.
func Progress(r Reward, classesCompleted int) int {
	if r.RequiredClasses <= 0 || classesCompleted >= r.RequiredClasses {
		return 100
	}
	if classesCompleted <= 0 {
		return 0
	}
	return classesCompleted * 100 / r.RequiredClasses
}

// New returns a reward populated with the admin dashboard defaults.
func New(id int64) Reward {
	return Reward{
		ID:              id,
		Title:           DefaultTitle,
		Description:     DefaultDescription,
		RequiredClasses: DefaultRequiredClasses,
	}
}
