package projections

import (
	"context"
	"fmt"
	"html/template"

	"spinstudio/internal/domain/reward"
	"spinstudio/internal/domain/user"
)

// UserView is a rider as shown on the profile and the admin roster.
type UserView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Level            string `json:"level"`
	ClassesCompleted int    `json:"classesCompleted"`
	AvatarURL        string `json:"avatarUrl"`
}

func userView(u user.User) UserView {
	return UserView{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Level:            u.Level,
		ClassesCompleted: u.ClassesCompleted,
		AvatarURL:        u.AvatarURL,
	}
}

// RewardView is one loyalty milestone.
type RewardView struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	DescriptionHTML template.HTML `json:"descriptionHtml"`
	RequiredClasses int           `json:"requiredClasses"`
	Unlocked        bool          `json:"unlocked"`
}

// NextRewardView tracks progress towards the next locked reward.
type NextRewardView struct {
	Reward    RewardView `json:"reward"`
	Progress  int        `json:"progress"` // percent, 0..100
	Remaining int        `json:"remaining"`
}

// ProfileView is the rider's profile screen.
type ProfileView struct {
	User       UserView        `json:"user"`
	Levels     []string        `json:"levels"`
	Rewards    []RewardView    `json:"rewards"`
	NextReward *NextRewardView `json:"nextReward,omitempty"`
}

// QueryGetProfile shows the current user with their reward progress.
// PRE: current is the session's user
// POST: NextReward is nil when every reward is unlocked
// INVARIANT: Rewards keep store order
func QueryGetProfile(ctx context.Context, current user.User, rewards RewardLister) (ProfileView, error) {
	all, err := rewards.List(ctx)
	if err != nil {
		return ProfileView{}, fmt.Errorf("list rewards: %w", err)
	}

	view := ProfileView{
		User:    userView(current),
		Levels:  user.Levels,
		Rewards: make([]RewardView, 0, len(all)),
	}
	for _, r := range all {
		view.Rewards = append(view.Rewards, rewardView(r, current.ClassesCompleted))
	}
	if next, ok := reward.Next(all, current.ClassesCompleted); ok {
		view.NextReward = &NextRewardView{
			Reward:    rewardView(next, current.ClassesCompleted),
			Progress:  reward.Progress(next, current.ClassesCompleted),
			Remaining: next.RequiredClasses - current.ClassesCompleted,
		}
	}
	return view, nil
}

func rewardView(r reward.Reward, classesCompleted int) RewardView {
	return RewardView{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		DescriptionHTML: RenderMarkdown(r.Description),
		RequiredClasses: r.RequiredClasses,
		Unlocked:        r.Unlocked(classesCompleted),
	}
}
