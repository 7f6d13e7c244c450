package studio

import (
	"spinstudio/internal/domain/advert"
	"spinstudio/internal/domain/bankaccount"
	"spinstudio/internal/domain/chat"
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/pricing"
	"spinstudio/internal/domain/reward"
)

// Intent is a user action delivered to App.Dispatch.
type Intent interface {
	IntentName() string
}

// --- Navigation ---

// Back leaves the current screen the way its back button does.
type Back struct{}

// SelectTab switches the bottom navigation.
type SelectTab struct{ Tab navigation.Tab }

// Activity is a pointer, key, scroll or touch event on the admin dashboard.
type Activity struct{}

// --- Account ---

// Login signs in with any non-empty email and password.
type Login struct{ Email, Password string }

// ShowCreateAccount opens the sign-up form.
type ShowCreateAccount struct{}

// ShowForgotPassword opens the reset form.
type ShowForgotPassword struct{}

// CreateAccount submits the sign-up form.
type CreateAccount struct{ Name, Email, Password, ConfirmPassword string }

// ForgotPassword requests a reset link.
type ForgotPassword struct{ Email string }

// Logout returns to the login screen.
type Logout struct{}

// --- Booking ---

// SelectClass opens the floor plan for a class.
type SelectClass struct{ ClassID int64 }

// SelectInstructor opens an instructor profile.
type SelectInstructor struct{ InstructorID string }

// ToggleBike picks or unpicks a bike.
type ToggleBike struct{ BikeID string }

// ConfirmBooking moves the selection to payment.
type ConfirmBooking struct{}

// FinalizePayment pays by card or transfer.
type FinalizePayment struct{ Method string }

// SubmitReview rates the instructor on screen.
type SubmitReview struct {
	Rating  int
	Comment string
}

// --- Chat and profile ---

// SendMessage posts to the support thread as the rider.
type SendMessage struct {
	Text       string
	Attachment *chat.Attachment
}

// UpdateProfile edits the current user. Empty fields are kept.
type UpdateProfile struct{ Name, Level, AvatarURL string }

// OpenAdmin goes to the admin login.
type OpenAdmin struct{}

// --- Admin ---

// AdminLogin unlocks the dashboard.
type AdminLogin struct{ Password string }

// ShowSection switches the dashboard tab.
type ShowSection struct{ Section navigation.Section }

// ShowPanel opens a statistics drill-down.
type ShowPanel struct{ Panel navigation.Panel }

// AdminReply posts to the support thread as the studio.
type AdminReply struct {
	Text       string
	Attachment *chat.Attachment
}

// AddInstructor appends a default instructor.
type AddInstructor struct{}

// EditInstructor replaces an instructor's profile fields.
type EditInstructor struct{ ID, Name, AvatarURL, Bio string }

// DeleteInstructor removes an instructor.
type DeleteInstructor struct{ ID string }

// AddClass appends a default class.
type AddClass struct{}

// EditClass replaces a class.
type EditClass struct{ Class class.Class }

// DeleteClass removes a class.
type DeleteClass struct{ ID int64 }

// AddAdvert appends an empty advertisement.
type AddAdvert struct{}

// EditAdvert replaces an advertisement.
type EditAdvert struct{ Advert advert.Advertisement }

// DeleteAdvert removes an advertisement.
type DeleteAdvert struct{ ID int64 }

// AddReward appends a default reward.
type AddReward struct{}

// EditReward replaces a reward.
type EditReward struct{ Reward reward.Reward }

// DeleteReward removes a reward.
type DeleteReward struct{ ID int64 }

// AddBankAccount appends a placeholder account.
type AddBankAccount struct{}

// EditBankAccount replaces a bank account.
type EditBankAccount struct{ Account bankaccount.BankAccount }

// DeleteBankAccount removes a bank account.
type DeleteBankAccount struct{ ID int64 }

// DeleteUser removes a rider from the roster.
type DeleteUser struct{ ID string }

// SavePricing replaces the pricing record.
type SavePricing struct{ Pricing pricing.Pricing }

// SetBikeCount regenerates the floor.
type SetBikeCount struct{ Count int }

// ToggleMaintenance flips a bike in or out of maintenance.
type ToggleMaintenance struct{ BikeID string }

// AcceptPayment confirms a pending transfer.
type AcceptPayment struct{ ID string }

// ChangeAdminPassword replaces the admin password.
type ChangeAdminPassword struct{ CurrentPassword, NewPassword, ConfirmPassword string }

// OpenScanner opens the QR scanner.
type OpenScanner struct{}

// --- QR scanner ---

// ScanStarted marks the camera as acquired.
type ScanStarted struct{}

// ScanResult delivers a decoded payload.
type ScanResult struct{ Text string }

// ScanFailed reports that the camera could not be used.
type ScanFailed struct{ Err error }

// ScanAgain clears the last result so scanning can restart.
type ScanAgain struct{}

func (Back) IntentName() string                { return "back" }
func (SelectTab) IntentName() string           { return "selectTab" }
func (Activity) IntentName() string            { return "activity" }
func (Login) IntentName() string               { return "login" }
func (ShowCreateAccount) IntentName() string   { return "showCreateAccount" }
func (ShowForgotPassword) IntentName() string  { return "showForgotPassword" }
func (CreateAccount) IntentName() string       { return "createAccount" }
func (ForgotPassword) IntentName() string      { return "forgotPassword" }
func (Logout) IntentName() string              { return "logout" }
func (SelectClass) IntentName() string         { return "selectClass" }
func (SelectInstructor) IntentName() string    { return "selectInstructor" }
func (ToggleBike) IntentName() string          { return "toggleBike" }
func (ConfirmBooking) IntentName() string      { return "confirmBooking" }
func (FinalizePayment) IntentName() string     { return "finalizePayment" }
func (SubmitReview) IntentName() string        { return "submitReview" }
func (SendMessage) IntentName() string         { return "sendMessage" }
func (UpdateProfile) IntentName() string       { return "updateProfile" }
func (OpenAdmin) IntentName() string           { return "openAdmin" }
func (AdminLogin) IntentName() string          { return "adminLogin" }
func (ShowSection) IntentName() string         { return "showSection" }
func (ShowPanel) IntentName() string           { return "showPanel" }
func (AdminReply) IntentName() string          { return "adminReply" }
func (AddInstructor) IntentName() string       { return "addInstructor" }
func (EditInstructor) IntentName() string      { return "editInstructor" }
func (DeleteInstructor) IntentName() string    { return "deleteInstructor" }
func (AddClass) IntentName() string            { return "addClass" }
func (EditClass) IntentName() string           { return "editClass" }
func (DeleteClass) IntentName() string         { return "deleteClass" }
func (AddAdvert) IntentName() string           { return "addAdvert" }
func (EditAdvert) IntentName() string          { return "editAdvert" }
func (DeleteAdvert) IntentName() string        { return "deleteAdvert" }
func (AddReward) IntentName() string           { return "addReward" }
func (EditReward) IntentName() string          { return "editReward" }
func (DeleteReward) IntentName() string        { return "deleteReward" }
func (AddBankAccount) IntentName() string      { return "addBankAccount" }
func (EditBankAccount) IntentName() string     { return "editBankAccount" }
func (DeleteBankAccount) IntentName() string   { return "deleteBankAccount" }
func (DeleteUser) IntentName() string          { return "deleteUser" }
func (SavePricing) IntentName() string         { return "savePricing" }
func (SetBikeCount) IntentName() string        { return "setBikeCount" }
func (ToggleMaintenance) IntentName() string   { return "toggleMaintenance" }
func (AcceptPayment) IntentName() string       { return "acceptPayment" }
func (ChangeAdminPassword) IntentName() string { return "changeAdminPassword" }
func (OpenScanner) IntentName() string         { return "openScanner" }
func (ScanStarted) IntentName() string         { return "scanStarted" }
func (ScanResult) IntentName() string          { return "scanResult" }
func (ScanFailed) IntentName() string          { return "scanFailed" }
func (ScanAgain) IntentName() string           { return "scanAgain" }
