package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/domain/user"
)

// UserStoreForProfile defines the store interface needed by UpdateProfile.
type UserStoreForProfile interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, value user.User) error
}

// UpdateProfileInput carries the editable profile fields.
// Empty fields keep their current value.
type UpdateProfileInput struct {
	Name      string
	Level     string
	AvatarURL string
}

// ExecuteUpdateProfile applies profile edits to the current user and the roster.
// PRE: current is the signed-in user
// POST: Returns the updated user; the roster entry with the same id is replaced.
// A current user already removed from the roster is not re-added.
func ExecuteUpdateProfile(ctx context.Context, current user.User, input UpdateProfileInput, store UserStoreForProfile) (user.User, error) {
	updated := current
	if input.Name != "" {
		updated.Name = input.Name
	}
	if input.Level != "" {
		updated.Level = input.Level
	}
	if input.AvatarURL != "" {
		updated.AvatarURL = input.AvatarURL
	}

	if err := updated.Validate(); err != nil {
		return user.User{}, err
	}
	_, err := store.GetByID(ctx, updated.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Warn().Str("user_id", updated.ID).Msg("profile_user_not_in_roster")
	case err != nil:
		return user.User{}, fmt.Errorf("load user: %w", err)
	default:
		if err := store.Save(ctx, updated); err != nil {
			return user.User{}, fmt.Errorf("save user: %w", err)
		}
	}

	log.Info().Str("event", "profile_updated").Str("user_id", updated.ID).Msg("profile_event")
	return updated, nil
}
