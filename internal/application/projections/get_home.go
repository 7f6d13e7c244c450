package projections

import (
	"context"
	"fmt"

	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
)

// ClassCard is one entry of the home schedule.
type ClassCard struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Time             string `json:"time"`
	Duration         int    `json:"duration"`
	SpotsLeft        int    `json:"spotsLeft"`
	InstructorID     string `json:"instructorId"`
	InstructorName   string `json:"instructorName"`
	InstructorAvatar string `json:"instructorAvatar"`
	// Bookable is false when the instructor reference dangles.
	Bookable bool `json:"bookable"`
}

// AdvertCard is one promotional banner.
type AdvertCard struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	MediaURL     string `json:"mediaUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// InstructorCard is a compact instructor entry.
type InstructorCard struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatarUrl"`
	Rating    float64 `json:"rating"`
}

// HomeView is the home screen.
type HomeView struct {
	UserName    string           `json:"userName"`
	Classes     []ClassCard      `json:"classes"`
	Instructors []InstructorCard `json:"instructors"`
	Adverts     []AdvertCard     `json:"adverts"`
}

// GetHomeDeps holds dependencies for GetHome.
type GetHomeDeps struct {
	ClassStore      ClassLister
	InstructorStore InstructorLister
	AdvertStore     AdvertLister
}

// QueryGetHome assembles the schedule, instructors and ads.
// PRE: none
// POST: Classes keep store order; each carries its instructor's name when resolvable
func QueryGetHome(ctx context.Context, userName string, deps GetHomeDeps) (HomeView, error) {
	classes, err := deps.ClassStore.List(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("list classes: %w", err)
	}
	instructors, err := deps.InstructorStore.List(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("list instructors: %w", err)
	}
	ads, err := deps.AdvertStore.List(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("list adverts: %w", err)
	}

	view := HomeView{
		UserName:    userName,
		Classes:     classCards(classes, instructors),
		Instructors: make([]InstructorCard, 0, len(instructors)),
		Adverts:     make([]AdvertCard, 0, len(ads)),
	}
	for _, i := range instructors {
		view.Instructors = append(view.Instructors, InstructorCard{ID: i.ID, Name: i.Name, AvatarURL: i.AvatarURL, Rating: i.Rating})
	}
	for _, a := range ads {
		view.Adverts = append(view.Adverts, AdvertCard{
			ID:           a.ID,
			Type:         a.Type,
			Title:        a.Title,
			MediaURL:     a.MediaURL,
			ThumbnailURL: a.ThumbnailURL,
		})
	}
	return view, nil
}

// classCards resolves each class's instructor; dangling references stay unbookable.
func classCards(classes []class.Class, instructors []instructor.Instructor) []ClassCard {
	byID := make(map[string]instructor.Instructor, len(instructors))
	for _, i := range instructors {
		byID[i.ID] = i
	}
	cards := make([]ClassCard, 0, len(classes))
	for _, c := range classes {
		card := ClassCard{
			ID:           c.ID,
			Name:         c.Name,
			Time:         c.Time,
			Duration:     c.Duration,
			SpotsLeft:    c.SpotsLeft,
			InstructorID: c.InstructorID,
		}
		if i, ok := byID[c.InstructorID]; ok {
			card.InstructorName = i.Name
			card.InstructorAvatar = i.AvatarURL
			card.Bookable = true
		}
		cards = append(cards, card)
	}
	return cards
}
