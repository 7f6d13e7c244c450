package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"spinstudio/internal/application/studio"
)

// intentDecoders maps the {name} route segment to a decoder for that intent.
// Scanner lifecycle intents other than scanAgain arrive over /ws/scanner only.
var intentDecoders = map[string]func(*http.Request) (studio.Intent, error){}

func register[T studio.Intent]() {
	var zero T
	intentDecoders[zero.IntentName()] = decodeAs[T]
}

func init() {
	// Navigation and account
	register[studio.Back]()
	register[studio.SelectTab]()
	register[studio.Activity]()
	register[studio.Login]()
	register[studio.ShowCreateAccount]()
	register[studio.ShowForgotPassword]()
	register[studio.CreateAccount]()
	register[studio.ForgotPassword]()
	register[studio.Logout]()

	// Booking, reviews, chat and profile
	register[studio.SelectClass]()
	register[studio.SelectInstructor]()
	register[studio.ToggleBike]()
	register[studio.ConfirmBooking]()
	register[studio.FinalizePayment]()
	register[studio.SubmitReview]()
	register[studio.SendMessage]()
	register[studio.UpdateProfile]()
	register[studio.OpenAdmin]()

	// Admin
	register[studio.AdminLogin]()
	register[studio.ShowSection]()
	register[studio.ShowPanel]()
	register[studio.AdminReply]()
	register[studio.AddInstructor]()
	register[studio.EditInstructor]()
	register[studio.DeleteInstructor]()
	register[studio.AddClass]()
	register[studio.EditClass]()
	register[studio.DeleteClass]()
	register[studio.AddAdvert]()
	register[studio.EditAdvert]()
	register[studio.DeleteAdvert]()
	register[studio.AddReward]()
	register[studio.EditReward]()
	register[studio.DeleteReward]()
	register[studio.AddBankAccount]()
	register[studio.EditBankAccount]()
	register[studio.DeleteBankAccount]()
	register[studio.DeleteUser]()
	register[studio.SavePricing]()
	register[studio.SetBikeCount]()
	register[studio.ToggleMaintenance]()
	register[studio.AcceptPayment]()
	register[studio.ChangeAdminPassword]()
	register[studio.OpenScanner]()
	register[studio.ScanAgain]()
}

// decodeIntent builds the named intent from the request body.
// PRE: r.Body is bounded
// POST: ErrUnknownIntent for unregistered names; ErrInvalidInput for bad JSON
func decodeIntent(name string, r *http.Request) (studio.Intent, error) {
	decode, ok := intentDecoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", studio.ErrUnknownIntent, name)
	}
	return decode(r)
}

// decodeAs decodes the body into a T. An empty body yields the zero value.
func decodeAs[T studio.Intent](r *http.Request) (studio.Intent, error) {
	var v T
	if err := strictDecode(r, &v); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", studio.ErrInvalidInput, err)
	}
	return v, nil
}
