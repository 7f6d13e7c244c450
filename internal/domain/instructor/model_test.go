package instructor_test

import (
	"testing"

	"spinstudio/internal/domain/instructor"
)

// TestMeanRating covers rounding to one decimal place.
func TestMeanRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{4}, 4},
		{"half", []int{5, 4}, 4.5},
		{"thirds round up", []int{5, 5, 4}, 4.7},
		{"thirds round down", []int{4, 4, 5}, 4.3},
		{"low", []int{1, 2}, 1.5},
		{"quarter", []int{5, 5, 5, 4}, 4.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews []instructor.Review
			for _, r := range tt.ratings {
				reviews = append(reviews, instructor.Review{UserName: "Carlos G.", Rating: r})
			}
			if got := instructor.MeanRating(reviews); got != tt.want {
				t.Errorf("MeanRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

// TestInstructor_AddReview verifies the rating is recomputed after every append.
func TestInstructor_AddReview(t *testing.T) {
	in := instructor.Instructor{
		ID:     "javier_m",
		Name:   "Javier Moreno",
		Rating: 4.8,
		Reviews: []instructor.Review{
			{UserName: "Sofia L.", Rating: 4, Comment: "Muy exigente"},
		},
	}

	if err := in.AddReview(instructor.Review{UserName: "Alex Morgan", Rating: 5}); err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if len(in.Reviews) != 2 {
		t.Fatalf("reviews = %d, want 2", len(in.Reviews))
	}
	if in.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", in.Rating)
	}

	for i := 0; i < 3; i++ {
		if err := in.AddReview(instructor.Review{UserName: "Alex Morgan", Rating: 1}); err != nil {
			t.Fatalf("AddReview: %v", err)
		}
		if in.Rating != instructor.MeanRating(in.Reviews) {
			t.Errorf("after %d appends Rating = %v, want %v", i+1, in.Rating, instructor.MeanRating(in.Reviews))
		}
	}
}

// TestInstructor_AddReviewRejectsInvalid verifies an invalid review leaves the instructor unchanged.
func TestInstructor_AddReviewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		review instructor.Review
		want   error
	}{
		{"zero rating", instructor.Review{UserName: "Alex", Rating: 0}, instructor.ErrInvalidRating},
		{"six stars", instructor.Review{UserName: "Alex", Rating: 6}, instructor.ErrInvalidRating},
		{"anonymous", instructor.Review{Rating: 3}, instructor.ErrEmptyReviewer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := instructor.New("instr-1")
			if err := in.AddReview(tt.review); err != tt.want {
				t.Errorf("AddReview error = %v, want %v", err, tt.want)
			}
			if len(in.Reviews) != 0 || in.Rating != 0 {
				t.Errorf("instructor mutated: %+v", in)
			}
		})
	}
}

// TestNew verifies admin defaults.
func TestNew(t *testing.T) {
	in := instructor.New("instr-42")
	if in.Name != instructor.DefaultName || in.Bio != instructor.DefaultBio {
		t.Errorf("unexpected defaults: %+v", in)
	}
	if in.Rating != 0 || len(in.Reviews) != 0 {
		t.Errorf("new instructor should start unrated, got %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
