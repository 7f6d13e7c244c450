package navigation

import (
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
)

// Name identifies a screen.
type Name string

// Screen names
const (
	NameSplash            Name = "splash"
	NameLogin             Name = "login"
	NameCreateAccount     Name = "createAccount"
	NameForgotPassword    Name = "forgotPassword"
	NameHome              Name = "home"
	NameBooking           Name = "booking"
	NamePayment           Name = "payment"
	NameProfile           Name = "profile"
	NameChat              Name = "chat"
	NameInstructorProfile Name = "instructor"
	NameAdminLogin        Name = "adminLogin"
	NameAdminDashboard    Name = "adminDashboard"
	NameQRScanner         Name = "qrScanner"
	NameFinal             Name = "final"
)

// Tab is a bottom-navigation destination.
type Tab string

// Tabs
const (
	TabHome    Tab = "home"
	TabChat    Tab = "chat"
	TabProfile Tab = "profile"
)

// Valid reports whether t is one of the three bottom tabs.
func (t Tab) Valid() bool {
	return t == TabHome || t == TabChat || t == TabProfile
}

// Screen is the tagged union of everything the app can display.
// Each variant carries exactly the data it needs to render.
type Screen interface {
	Name() Name
	isScreen()
}

// Notice kinds shown on the login screen.
const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
)

// Notice is a one-shot banner carried into the login screen.
type Notice struct {
	Kind string
	Text string
}

// Splash is the launch screen.
type Splash struct{}

// Login asks for email and password.
type Login struct {
	Notice *Notice
}

// CreateAccount is the sign-up form.
type CreateAccount struct{}

// ForgotPassword requests a reset link.
type ForgotPassword struct{}

// Home lists classes and advertisements.
type Home struct{}

// Booking shows the floor plan for a class whose instructor is known.
type Booking struct {
	Class      class.Class
	Instructor instructor.Instructor
}

// Payment charges for the bikes picked on a booking screen.
type Payment struct {
	Booking   Booking
	BikeIDs   []string
	PartySize int
}

// Profile shows the rider, their rewards and the admin entry point.
type Profile struct{}

// Chat is the rider's support thread.
type Chat struct{}

// InstructorProfile shows one instructor and their reviews.
type InstructorProfile struct {
	Instructor instructor.Instructor
}

// AdminLogin asks for the admin password.
type AdminLogin struct{}

// AdminDashboard is the back office, opened on a section and panel.
type AdminDashboard struct {
	Section Section
	Panel   Panel
}

// QRScanner reads a QR code from the camera.
type QRScanner struct{}

// Final confirms a finished booking before returning home.
type Final struct {
	Title   string
	Message string
}

func (Splash) Name() Name            { return NameSplash }
func (Login) Name() Name             { return NameLogin }
func (CreateAccount) Name() Name     { return NameCreateAccount }
func (ForgotPassword) Name() Name    { return NameForgotPassword }
func (Home) Name() Name              { return NameHome }
func (Booking) Name() Name           { return NameBooking }
func (Payment) Name() Name           { return NamePayment }
func (Profile) Name() Name           { return NameProfile }
func (Chat) Name() Name              { return NameChat }
func (InstructorProfile) Name() Name { return NameInstructorProfile }
func (AdminLogin) Name() Name        { return NameAdminLogin }
func (AdminDashboard) Name() Name    { return NameAdminDashboard }
func (QRScanner) Name() Name         { return NameQRScanner }
func (Final) Name() Name             { return NameFinal }

func (Splash) isScreen()            {}
func (Login) isScreen()             {}
func (CreateAccount) isScreen()     {}
func (ForgotPassword) isScreen()    {}
func (Home) isScreen()              {}
func (Booking) isScreen()           {}
func (Payment) isScreen()           {}
func (Profile) isScreen()           {}
func (Chat) isScreen()              {}
func (InstructorProfile) isScreen() {}
func (AdminLogin) isScreen()        {}
func (AdminDashboard) isScreen()    {}
func (QRScanner) isScreen()         {}
func (Final) isScreen()             {}

// TabFor returns the tab a screen belongs to, if it is a tab screen.
func TabFor(s Screen) (Tab, bool) {
	switch s.(type) {
	case Home:
		return TabHome, true
	case Chat:
		return TabChat, true
	case Profile:
		return TabProfile, true
	}
	return "", false
}

// ShowsTabBar reports whether the bottom navigation is visible on s.
func ShowsTabBar(s Screen) bool {
	_, ok := TabFor(s)
	return ok
}

// ScreenForTab returns the screen a tab leads to.
func ScreenForTab(t Tab) Screen {
	switch t {
	case TabChat:
		return Chat{}
	case TabProfile:
		return Profile{}
	default:
		return Home{}
	}
}
