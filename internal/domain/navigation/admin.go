package navigation

// Section is a tab of the admin dashboard.
type Section string

// Admin sections
const (
	SectionUsers       Section = "users"
	SectionInstructors Section = "instructors"
	SectionClasses     Section = "classes"
	SectionPayments    Section = "payments"
	SectionAds         Section = "ads"
	SectionRewards     Section = "rewards"
	SectionChat        Section = "chat"
	SectionConfig      Section = "config"
	SectionSecurity    Section = "security"
)

// Sections lists the admin sections in menu order.
var Sections = []Section{
	SectionUsers, SectionInstructors, SectionClasses, SectionPayments,
	SectionAds, SectionRewards, SectionChat, SectionConfig, SectionSecurity,
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// Panel is a drill-down view of the dashboard statistics.
type Panel string

// Admin panels
const (
	PanelDashboard           Panel = "dashboard"
	PanelTodaysIncome        Panel = "todaysIncome"
	PanelPendingReservations Panel = "pendingReservations"
	PanelOccupiedBikes       Panel = "occupiedBikes"
)

// Valid reports whether p is a known panel.
func (p Panel) Valid() bool {
	switch p {
	case PanelDashboard, PanelTodaysIncome, PanelPendingReservations, PanelOccupiedBikes:
		return true
	}
	return false
}

// DefaultDashboard is the admin landing state after login.
var DefaultDashboard = AdminDashboard{Section: SectionUsers, Panel: PanelDashboard}
