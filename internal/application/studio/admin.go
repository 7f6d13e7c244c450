package studio

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/application/orchestrators"
	"spinstudio/internal/domain/admin"
	"spinstudio/internal/domain/advert"
	"spinstudio/internal/domain/bankaccount"
	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/chat"
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/pricing"
	"spinstudio/internal/domain/reward"
)

// Admin inline messages
const (
	MsgWrongAdminPassword   = "Contraseña incorrecta. Inténtalo de nuevo."
	MsgWrongCurrentPassword = "La contraseña actual es incorrecta."
	MsgNewPasswordMismatch  = "Las nuevas contraseñas no coinciden."
	MsgNewPasswordTooShort  = "La nueva contraseña debe tener al menos 6 caracteres."
	MsgPasswordChanged      = "¡Contraseña actualizada correctamente!"
	MsgNegativePrice        = "Los precios no pueden ser negativos."
	MsgNegativeBikeCount    = "El número de bicicletas no puede ser negativo."
	MsgTooManyBikes         = "El estudio admite como máximo 200 bicicletas."
	MsgRecordNotFound       = "El registro ya no existe."
	MsgInvalidRecord        = "Revisa los datos del formulario."
	MsgCameraUnavailable    = "No se pudo acceder a la cámara. Revisa los permisos."
)

func (a *App) dispatchAdmin(ctx context.Context, in Intent) error {
	switch in := in.(type) {
	case AdminLogin:
		if err := a.on(navigation.NameAdminLogin); err != nil {
			return err
		}
		err := orchestrators.ExecuteAdminLogin(ctx, in.Password, a.stores.credentials)
		if errors.Is(err, admin.ErrWrongPassword) {
			return inline(err, MsgWrongAdminPassword)
		}
		if err != nil {
			return err
		}
		return a.machine.Go(navigation.DefaultDashboard)
	case ScanStarted, ScanResult, ScanFailed, ScanAgain:
		return a.dispatchScan(in)
	}

	d, ok := a.machine.Screen().(navigation.AdminDashboard)
	if !ok {
		if _, known := in.(adminIntent); !known {
			return fmt.Errorf("%w: %s", ErrUnknownIntent, in.IntentName())
		}
		return a.on(navigation.NameAdminDashboard)
	}

	switch in := in.(type) {
	case ShowSection:
		if !in.Section.Valid() {
			return fmt.Errorf("%w: section %q", ErrInvalidInput, in.Section)
		}
		if in.Section == navigation.SectionChat {
			if err := orchestrators.ExecuteMarkThreadRead(ctx, a.stores.chat); err != nil {
				return err
			}
		}
		return a.machine.Go(navigation.AdminDashboard{Section: in.Section, Panel: navigation.PanelDashboard})
	case ShowPanel:
		if !in.Panel.Valid() {
			return fmt.Errorf("%w: panel %q", ErrInvalidInput, in.Panel)
		}
		return a.machine.Go(navigation.AdminDashboard{Section: d.Section, Panel: in.Panel})
	case AdminReply:
		return a.sendMessage(ctx, chat.SenderAdmin, in.Text, in.Attachment)
	case OpenScanner:
		a.scan = ScanState{}
		return a.machine.Go(navigation.QRScanner{})
	case ChangeAdminPassword:
		return a.changeAdminPassword(ctx, in)
	}
	return catalogError(a.dispatchCatalog(ctx, in))
}

// adminIntent marks intents that only the dashboard accepts.
type adminIntent interface {
	Intent
	dashboardOnly()
}

func (ShowSection) dashboardOnly()         {}
func (ShowPanel) dashboardOnly()           {}
func (AdminReply) dashboardOnly()          {}
func (AddInstructor) dashboardOnly()       {}
func (EditInstructor) dashboardOnly()      {}
func (DeleteInstructor) dashboardOnly()    {}
func (AddClass) dashboardOnly()            {}
func (EditClass) dashboardOnly()           {}
func (DeleteClass) dashboardOnly()         {}
func (AddAdvert) dashboardOnly()           {}
func (EditAdvert) dashboardOnly()          {}
func (DeleteAdvert) dashboardOnly()        {}
func (AddReward) dashboardOnly()           {}
func (EditReward) dashboardOnly()          {}
func (DeleteReward) dashboardOnly()        {}
func (AddBankAccount) dashboardOnly()      {}
func (EditBankAccount) dashboardOnly()     {}
func (DeleteBankAccount) dashboardOnly()   {}
func (DeleteUser) dashboardOnly()          {}
func (SavePricing) dashboardOnly()         {}
func (SetBikeCount) dashboardOnly()        {}
func (ToggleMaintenance) dashboardOnly()   {}
func (AcceptPayment) dashboardOnly()       {}
func (ChangeAdminPassword) dashboardOnly() {}
func (OpenScanner) dashboardOnly()         {}

func (a *App) dispatchCatalog(ctx context.Context, in Intent) error {
	s := a.stores
	switch in := in.(type) {
	case AddInstructor:
		_, err := orchestrators.ExecuteAddInstructor(ctx, s.instructors, a.cfg.GenerateID)
		return err
	case EditInstructor:
		_, err := orchestrators.ExecuteEditInstructor(ctx, orchestrators.EditInstructorInput{
			ID: in.ID, Name: in.Name, AvatarURL: in.AvatarURL, Bio: in.Bio,
		}, s.instructors)
		return err
	case DeleteInstructor:
		return orchestrators.ExecuteDeleteInstructor(ctx, in.ID, s.instructors)

	case AddClass:
		_, err := orchestrators.ExecuteAddClass(ctx, s.classes, s.instructors)
		return err
	case EditClass:
		return orchestrators.ExecuteEditClass(ctx, in.Class, s.classes)
	case DeleteClass:
		return orchestrators.ExecuteDeleteClass(ctx, in.ID, s.classes)

	case AddAdvert:
		_, err := orchestrators.ExecuteAddAdvert(ctx, s.adverts)
		return err
	case EditAdvert:
		return orchestrators.ExecuteEditAdvert(ctx, in.Advert, s.adverts)
	case DeleteAdvert:
		return orchestrators.ExecuteDeleteAdvert(ctx, in.ID, s.adverts)

	case AddReward:
		_, err := orchestrators.ExecuteAddReward(ctx, s.rewards)
		return err
	case EditReward:
		return orchestrators.ExecuteEditReward(ctx, in.Reward, s.rewards)
	case DeleteReward:
		return orchestrators.ExecuteDeleteReward(ctx, in.ID, s.rewards)

	case AddBankAccount:
		_, err := orchestrators.ExecuteAddBankAccount(ctx, s.bankAccounts)
		return err
	case EditBankAccount:
		return orchestrators.ExecuteEditBankAccount(ctx, in.Account, s.bankAccounts)
	case DeleteBankAccount:
		return orchestrators.ExecuteDeleteBankAccount(ctx, in.ID, s.bankAccounts)

	case DeleteUser:
		return orchestrators.ExecuteDeleteUser(ctx, in.ID, s.users)
	case SavePricing:
		return orchestrators.ExecuteSavePricing(ctx, in.Pricing, s.pricing)
	case SetBikeCount:
		_, err := orchestrators.ExecuteSetBikeCount(ctx, in.Count, s.bikes)
		return err
	case ToggleMaintenance:
		return orchestrators.ExecuteToggleMaintenance(ctx, in.BikeID, s.bikes)
	case AcceptPayment:
		_, err := orchestrators.ExecuteAcceptPayment(ctx, in.ID, s.payments)
		return err
	}
	return fmt.Errorf("%w: %s", ErrUnknownIntent, in.IntentName())
}

// catalogError turns dashboard form failures into inline messages.
// Store failures pass through unchanged.
func catalogError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orchestrators.ErrRecordNotFound), errors.Is(err, bike.ErrUnknownBike):
		return inline(err, MsgRecordNotFound)
	case errors.Is(err, pricing.ErrNegativePrice):
		return inline(err, MsgNegativePrice)
	case errors.Is(err, bike.ErrNegativeCount):
		return inline(err, MsgNegativeBikeCount)
	case errors.Is(err, bike.ErrTooManyBikes):
		return inline(err, MsgTooManyBikes)
	case isValidation(err):
		return inline(err, MsgInvalidRecord)
	}
	return err
}

var formErrors = []error{
	instructor.ErrEmptyName,
	class.ErrInvalidID, class.ErrEmptyName, class.ErrInvalidDuration, class.ErrNegativeSpots,
	advert.ErrInvalidID, advert.ErrInvalidType, advert.ErrEmptyTitle,
	reward.ErrInvalidID, reward.ErrEmptyTitle, reward.ErrInvalidThreshold,
	bankaccount.ErrInvalidID, bankaccount.ErrEmptyBankName, bankaccount.ErrInvalidIDType, bankaccount.ErrInvalidAccountTyp,
}

func isValidation(err error) bool {
	for _, target := range formErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (a *App) changeAdminPassword(ctx context.Context, in ChangeAdminPassword) error {
	err := orchestrators.ExecuteChangeAdminPassword(ctx, orchestrators.ChangeAdminPasswordInput{
		CurrentPassword: in.CurrentPassword,
		NewPassword:     in.NewPassword,
		ConfirmPassword: in.ConfirmPassword,
	}, a.stores.credentials)
	switch {
	case errors.Is(err, admin.ErrWrongPassword):
		return inline(err, MsgWrongCurrentPassword)
	case errors.Is(err, admin.ErrPasswordMismatch):
		return inline(err, MsgNewPasswordMismatch)
	case errors.Is(err, admin.ErrPasswordTooShort):
		return inline(err, MsgNewPasswordTooShort)
	case err != nil:
		return err
	}
	a.message = &Flash{Kind: FlashSuccess, Text: MsgPasswordChanged}
	return nil
}

// dispatchScan updates the scanner screen. Decoding happens outside the
// instance; only its outcome arrives here.
func (a *App) dispatchScan(in Intent) error {
	if err := a.on(navigation.NameQRScanner); err != nil {
		return err
	}
	switch in := in.(type) {
	case ScanStarted:
		a.scan = ScanState{Active: true}
	case ScanResult:
		a.scan = ScanState{Result: in.Text}
		log.Info().Str("studio", a.id).Int("length", len(in.Text)).Msg("qr_scanned")
	case ScanFailed:
		a.scan = ScanState{Error: MsgCameraUnavailable}
		log.Warn().Err(in.Err).Str("studio", a.id).Msg("camera_unavailable")
	case ScanAgain:
		a.scan = ScanState{}
	}
	return nil
}
