package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/application/orchestrators"
	"spinstudio/internal/domain/chat"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/user"
)

// Inline messages
const (
	MsgMissingCredentials = "Introduce tu correo y contraseña."
	MsgPasswordMismatch   = "Las contraseñas no coinciden."
	MsgEmptyEmail         = "Introduce tu correo electrónico."
	MsgClassNotFound      = "Clase no encontrada."
	MsgInstructorNotFound = "Instructor no encontrado."
	MsgInvalidRating      = "Selecciona una calificación de 1 a 5."
	MsgEmptyMessage       = "Escribe un mensaje o adjunta una imagen."
	MsgInvalidLevel       = "Selecciona un nivel válido."
	MsgMissingFields      = "Completa todos los campos."
	MsgEmptyName          = "Introduce tu nombre."
)

func (a *App) dispatch(ctx context.Context, in Intent) error {
	switch in := in.(type) {
	case Back:
		return a.back()
	case SelectTab:
		return a.selectTab(ctx, in.Tab)
	case Activity:
		return a.on(navigation.NameAdminDashboard)

	case Login:
		if err := a.on(navigation.NameLogin); err != nil {
			return err
		}
		if err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{Email: in.Email, Password: in.Password}); err != nil {
			return inline(err, MsgMissingCredentials)
		}
		return a.machine.Go(navigation.Home{})
	case ShowCreateAccount:
		if err := a.on(navigation.NameLogin); err != nil {
			return err
		}
		return a.machine.Go(navigation.CreateAccount{})
	case ShowForgotPassword:
		if err := a.on(navigation.NameLogin); err != nil {
			return err
		}
		return a.machine.Go(navigation.ForgotPassword{})
	case CreateAccount:
		if err := a.on(navigation.NameCreateAccount); err != nil {
			return err
		}
		login, err := orchestrators.ExecuteCreateAccount(ctx, orchestrators.CreateAccountInput{
			Name: in.Name, Email: in.Email, Password: in.Password, ConfirmPassword: in.ConfirmPassword,
		})
		switch {
		case errors.Is(err, orchestrators.ErrMissingFields):
			return inline(err, MsgMissingFields)
		case errors.Is(err, orchestrators.ErrPasswordMismatch):
			return inline(err, MsgPasswordMismatch)
		case err != nil:
			return err
		}
		return a.machine.Go(login)
	case ForgotPassword:
		if err := a.on(navigation.NameForgotPassword); err != nil {
			return err
		}
		login, err := orchestrators.ExecuteForgotPassword(ctx, in.Email, orchestrators.ForgotPasswordDeps{
			Sender:   a.cfg.Email,
			From:     a.cfg.EmailFrom,
			ResetURL: a.cfg.ResetURL,
		})
		if err != nil {
			return inline(err, MsgEmptyEmail)
		}
		return a.machine.Go(login)
	case Logout:
		if err := a.on(navigation.NameProfile); err != nil {
			return err
		}
		return a.machine.Go(navigation.Login{})

	case SelectClass:
		return a.selectClass(ctx, in.ClassID)
	case SelectInstructor:
		if err := a.on(navigation.NameHome, navigation.NameBooking); err != nil {
			return err
		}
		screen, err := orchestrators.ExecuteSelectInstructor(ctx, in.InstructorID, a.stores.instructors)
		if errors.Is(err, orchestrators.ErrInstructorNotFound) {
			return inline(err, MsgInstructorNotFound)
		}
		if err != nil {
			return err
		}
		return a.machine.Go(screen)
	case ToggleBike:
		if err := a.on(navigation.NameBooking); err != nil {
			return err
		}
		_, err := orchestrators.ExecuteToggleBike(ctx, in.BikeID, a.stores.bikes)
		return err
	case ConfirmBooking:
		return a.confirmBooking(ctx)
	case FinalizePayment:
		return a.finalizePayment(ctx, in.Method)
	case SubmitReview:
		return a.submitReview(ctx, in)

	case SendMessage:
		if err := a.on(navigation.NameChat); err != nil {
			return err
		}
		return a.sendMessage(ctx, chat.SenderUser, in.Text, in.Attachment)
	case UpdateProfile:
		return a.updateProfile(ctx, in)
	case OpenAdmin:
		if err := a.on(navigation.NameProfile); err != nil {
			return err
		}
		return a.machine.Go(navigation.AdminLogin{})
	}
	return a.dispatchAdmin(ctx, in)
}

// back follows each screen's back button.
func (a *App) back() error {
	switch s := a.machine.Screen().(type) {
	case navigation.CreateAccount, navigation.ForgotPassword:
		return a.machine.Go(navigation.Login{})
	case navigation.Booking, navigation.InstructorProfile:
		return a.machine.Go(navigation.Home{})
	case navigation.Payment:
		return a.machine.Go(s.Booking)
	case navigation.AdminLogin, navigation.AdminDashboard:
		return a.machine.Go(navigation.Profile{})
	case navigation.QRScanner:
		a.scan = ScanState{}
		return a.machine.Go(navigation.DefaultDashboard)
	}
	return fmt.Errorf("%w: %s has no back action", ErrWrongScreen, a.machine.Screen().Name())
}

func (a *App) selectTab(ctx context.Context, t navigation.Tab) error {
	if !t.Valid() {
		return fmt.Errorf("%w: tab %q", ErrInvalidInput, t)
	}
	if !navigation.ShowsTabBar(a.machine.Screen()) {
		return fmt.Errorf("%w: %s has no tab bar", ErrWrongScreen, a.machine.Screen().Name())
	}
	if t == navigation.TabChat {
		if err := orchestrators.ExecuteMarkThreadRead(ctx, a.stores.chat); err != nil {
			return err
		}
	}
	return a.machine.SelectTab(t)
}

// selectClass opens a fresh floor plan; any stale selection is cleared first.
func (a *App) selectClass(ctx context.Context, classID int64) error {
	if err := a.on(navigation.NameHome); err != nil {
		return err
	}
	screen, err := orchestrators.ExecuteSelectClass(ctx, classID, orchestrators.SelectClassDeps{
		ClassStore:      a.stores.classes,
		InstructorStore: a.stores.instructors,
	})
	switch {
	case errors.Is(err, orchestrators.ErrClassNotFound):
		return inline(err, MsgClassNotFound)
	case errors.Is(err, orchestrators.ErrInstructorNotFound):
		return inline(err, MsgInstructorNotFound)
	case err != nil:
		return err
	}
	if err := orchestrators.ExecuteClearSelection(ctx, a.stores.bikes); err != nil {
		return err
	}
	return a.machine.Go(screen)
}

// confirmBooking is a no-op while no bike is selected.
func (a *App) confirmBooking(ctx context.Context) error {
	b, ok := a.machine.Screen().(navigation.Booking)
	if !ok {
		return a.on(navigation.NameBooking)
	}
	screen, err := orchestrators.ExecuteConfirmBooking(ctx, b, a.stores.bikes)
	if errors.Is(err, orchestrators.ErrEmptySelection) {
		log.Debug().Str("studio", a.id).Msg("confirm_without_selection")
		return nil
	}
	if err != nil {
		return err
	}
	return a.machine.Go(screen)
}

func (a *App) finalizePayment(ctx context.Context, method string) error {
	p, ok := a.machine.Screen().(navigation.Payment)
	if !ok {
		return a.on(navigation.NamePayment)
	}
	res, err := orchestrators.ExecuteFinalizePayment(ctx, orchestrators.FinalizePaymentInput{
		Payment:  p,
		Method:   method,
		UserName: a.current.Name,
	}, orchestrators.FinalizePaymentDeps{
		BikeStore:    a.stores.bikes,
		PricingStore: a.stores.pricing,
		PaymentStore: a.stores.payments,
		GenerateID:   a.cfg.GenerateID,
		Now:          a.cfg.Clock.Now,
	})
	if errors.Is(err, orchestrators.ErrInvalidMethod) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		return err
	}
	return a.machine.Go(res.Final)
}

func (a *App) submitReview(ctx context.Context, in SubmitReview) error {
	s, ok := a.machine.Screen().(navigation.InstructorProfile)
	if !ok {
		return a.on(navigation.NameInstructorProfile)
	}
	updated, err := orchestrators.ExecuteSubmitReview(ctx, orchestrators.SubmitReviewInput{
		InstructorID: s.Instructor.ID,
		UserName:     a.current.Name,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}, a.stores.instructors)
	switch {
	case errors.Is(err, instructor.ErrInvalidRating):
		return inline(err, MsgInvalidRating)
	case errors.Is(err, orchestrators.ErrInstructorNotFound):
		return inline(err, MsgInstructorNotFound)
	case err != nil:
		return err
	}
	return a.machine.Go(navigation.InstructorProfile{Instructor: updated})
}

func (a *App) sendMessage(ctx context.Context, sender, text string, att *chat.Attachment) error {
	_, err := orchestrators.ExecuteSendMessage(ctx, orchestrators.SendMessageInput{
		Sender:     sender,
		Text:       text,
		Attachment: att,
	}, orchestrators.SendMessageDeps{
		ChatStore:  a.stores.chat,
		GenerateID: a.cfg.GenerateID,
		Now:        a.cfg.Clock.Now,
	})
	if errors.Is(err, chat.ErrEmptyMessage) {
		return inline(err, MsgEmptyMessage)
	}
	if errors.Is(err, chat.ErrInvalidAttachment) || errors.Is(err, chat.ErrEmptyAttachmentURL) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

func (a *App) updateProfile(ctx context.Context, in UpdateProfile) error {
	if err := a.on(navigation.NameProfile); err != nil {
		return err
	}
	if in.Level != "" && !validLevel(in.Level) {
		return inline(ErrInvalidInput, MsgInvalidLevel)
	}
	updated, err := orchestrators.ExecuteUpdateProfile(ctx, a.current, orchestrators.UpdateProfileInput{
		Name:      in.Name,
		Level:     in.Level,
		AvatarURL: in.AvatarURL,
	}, a.stores.users)
	switch {
	case errors.Is(err, user.ErrEmptyName):
		return inline(err, MsgEmptyName)
	case errors.Is(err, user.ErrEmptyID), errors.Is(err, user.ErrEmptyEmail), errors.Is(err, user.ErrNegative):
		return inline(err, MsgInvalidRecord)
	case err != nil:
		return err
	}
	a.current = updated
	return nil
}

func validLevel(level string) bool {
	for _, l := range user.Levels {
		if l == level {
			return true
		}
	}
	return false
}
