package projections

import (
	"html/template"

	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/navigation"
)

// ReviewView is one rider review.
type ReviewView struct {
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

// InstructorView is the instructor profile screen.
type InstructorView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	AvatarURL string        `json:"avatarUrl"`
	Bio       string        `json:"bio"`
	BioHTML   template.HTML `json:"bioHtml"`
	Rating    float64       `json:"rating"`
	Reviews   []ReviewView  `json:"reviews"`
}

// QueryGetInstructor renders the instructor carried by the screen.
// Reviews are listed newest first.
func QueryGetInstructor(screen navigation.InstructorProfile) InstructorView {
	return instructorView(screen.Instructor)
}

func instructorView(i instructor.Instructor) InstructorView {
	reviews := make([]ReviewView, 0, len(i.Reviews))
	for n := len(i.Reviews) - 1; n >= 0; n-- {
		r := i.Reviews[n]
		reviews = append(reviews, ReviewView{UserName: r.UserName, Rating: r.Rating, Comment: r.Comment})
	}
	return InstructorView{
		ID:        i.ID,
		Name:      i.Name,
		AvatarURL: i.AvatarURL,
		Bio:       i.Bio,
		BioHTML:   RenderMarkdown(i.Bio),
		Rating:    i.Rating,
		Reviews:   reviews,
	}
}
