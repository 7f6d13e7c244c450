package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/domain/instructor"
)

// InstructorStoreForReview defines the store interface needed by SubmitReview.
type InstructorStoreForReview interface {
	GetByID(ctx context.Context, id string) (instructor.Instructor, error)
	Save(ctx context.Context, value instructor.Instructor) error
}

// SubmitReviewInput carries input for the review orchestrator.
type SubmitReviewInput struct {
	InstructorID string
	UserName     string
	Rating       int
	Comment      string
}

// ExecuteSubmitReview appends a review and recomputes the instructor's rating.
// PRE: none
// POST: On success the stored rating is the rounded mean of every review
func ExecuteSubmitReview(ctx context.Context, input SubmitReviewInput, store InstructorStoreForReview) (instructor.Instructor, error) {
	inst, err := store.GetByID(ctx, input.InstructorID)
	if errors.Is(err, sql.ErrNoRows) {
		return instructor.Instructor{}, ErrInstructorNotFound
	}
	if err != nil {
		return instructor.Instructor{}, fmt.Errorf("load instructor %q: %w", input.InstructorID, err)
	}

	if err := inst.AddReview(instructor.Review{
		UserName: input.UserName,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}); err != nil {
		return instructor.Instructor{}, err
	}

	if err := store.Save(ctx, inst); err != nil {
		return instructor.Instructor{}, fmt.Errorf("save instructor: %w", err)
	}

	log.Info().
		Str("event", "review_submitted").
		Str("instructor_id", inst.ID).
		Int("rating", input.Rating).
		Float64("new_rating", inst.Rating).
		Msg("review_event")
	return inst, nil
}
