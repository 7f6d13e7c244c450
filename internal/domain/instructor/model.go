package instructor

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrEmptyID       = errors.New("instructor ID is required")
	ErrEmptyName     = errors.New("instructor name cannot be empty")
	ErrInvalidRating = errors.New("review rating must be between 1 and 5")
	ErrEmptyReviewer = errors.New("reviewer name is required")
)

// Review bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Defaults applied to instructors created from the admin dashboard.
const (
	DefaultName      = "Nuevo Instructor"
	DefaultBio       = "Nueva biografía."
	DefaultAvatarURL = "https://picsum.photos/seed/new-instructor/200"
)

// Review is a rider's rating of an instructor.
type Review struct {
	UserName string
	Rating   int
	Comment  string
}

// Validate checks the review before it is appended.
// PRE: Review struct is populated
// POST: Returns nil if rating is 1..5 and reviewer is named
func (r *Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}
	if r.UserName == "" {
		return ErrEmptyReviewer
	}
	return nil
}

// Instructor teaches classes and accumulates reviews.
type Instructor struct {
	ID        string
	Name      string
	AvatarURL string
	Bio       string // markdown
	Rating    float64
	Reviews   []Review
}

// Validate checks if the Instructor has valid data.
// PRE: Instructor struct is populated
// POST: Returns nil if valid, error otherwise
func (i *Instructor) Validate() error {
	if i.ID == "" {
		return ErrEmptyID
	}
	if i.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// AddReview appends a review and recomputes the rating.
// PRE: r passes Validate
// POST: Reviews grows by one; Rating = MeanRating(Reviews)
// INVARIANT: Rating always reflects the reviews after any append
func (i *Instructor) AddReview(r Review) error {
	if err := r.Validate(); err != nil {
		return err
	}
	i.Reviews = append(i.Reviews, r)
	i.Rating = MeanRating(i.Reviews)
	return nil
}

// MeanRating returns the arithmetic mean of review ratings rounded to one
// decimal place, half away from zero. Returns 0 for no reviews.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(reviews))))
	return mean.Round(1).InexactFloat64()
}

// New returns an instructor populated with the admin dashboard defaults.
func New(id string) Instructor {
	return Instructor{
		ID:        id,
		Name:      DefaultName,
		AvatarURL: DefaultAvatarURL,
		Bio:       DefaultBio,
	}
}
