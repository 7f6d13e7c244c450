package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	emailAdapter "spinstudio/internal/adapters/email"
	"spinstudio/internal/domain/navigation"
)

// Account errors
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmptyEmail         = errors.New("email is required")
	ErrMissingFields      = errors.New("name, email, password and confirmation are required")
)

// Login screen notices
const (
	NoticeAccountCreated = "¡Cuenta creada! Ya puedes iniciar sesión."
	NoticeResetRequested = "Si tu correo existe, recibirás un enlace de recuperación."
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// ExecuteLogin accepts any non-empty email and password pair.
// PRE: none
// POST: Returns ErrMissingCredentials when either field is blank
func ExecuteLogin(_ context.Context, input LoginInput) error {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		log.Info().Str("event", "login_failed").Str("reason", "missing_credentials").Msg("auth_event")
		return ErrMissingCredentials
	}
	log.Info().Str("event", "login_success").Str("email", input.Email).Msg("auth_event")
	return nil
}

// CreateAccountInput carries input for the sign-up form.
type CreateAccountInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ExecuteCreateAccount validates the sign-up form and returns the login
// screen with a success notice. No account is stored.
// PRE: none
// POST: Returns ErrMissingFields when any field is blank,
// ErrPasswordMismatch when the passwords differ
func ExecuteCreateAccount(_ context.Context, input CreateAccountInput) (navigation.Login, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" ||
		input.Password == "" || input.ConfirmPassword == "" {
		return navigation.Login{}, ErrMissingFields
	}
	if input.Password != input.ConfirmPassword {
		return navigation.Login{}, ErrPasswordMismatch
	}
	log.Info().Str("event", "account_created").Str("email", input.Email).Msg("auth_event")
	return navigation.Login{Notice: &navigation.Notice{Kind: navigation.NoticeSuccess, Text: NoticeAccountCreated}}, nil
}

// ForgotPasswordDeps holds dependencies for ForgotPassword.
type ForgotPasswordDeps struct {
	Sender   emailAdapter.Sender
	From     string
	ResetURL string // base link included in the message
}

// ExecuteForgotPassword sends a reset-link email and returns the login screen
// with an informational notice. The notice does not reveal whether the
// address is known, and a delivery failure is logged rather than surfaced.
// PRE: none
// POST: Returns ErrEmptyEmail when email is blank
func ExecuteForgotPassword(ctx context.Context, email string, deps ForgotPasswordDeps) (navigation.Login, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return navigation.Login{}, ErrEmptyEmail
	}

	if deps.Sender != nil {
		if err := sendReset(ctx, email, deps); err != nil {
			log.Error().Err(err).Str("email", email).Msg("email_error")
		}
	}

	log.Info().Str("event", "password_reset_requested").Str("email", email).Msg("auth_event")
	return navigation.Login{Notice: &navigation.Notice{Kind: navigation.NoticeInfo, Text: NoticeResetRequested}}, nil
}

func sendReset(ctx context.Context, email string, deps ForgotPasswordDeps) error {
	req, err := emailAdapter.PasswordReset(email, deps.From, deps.ResetURL)
	if err != nil {
		return err
	}
	if _, err := deps.Sender.Send(ctx, req); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
