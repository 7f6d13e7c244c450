package bike

import (
	"errors"
	"strconv"
)

// Domain errors
var (
	ErrNegativeCount = errors.New("bike count cannot be negative")
	ErrTooManyBikes  = errors.New("bike count exceeds the studio maximum")
	ErrUnknownBike   = errors.New("bike not found")
)

// Statuses
const (
	StatusAvailable   = "available"
	StatusTaken       = "taken"
	StatusSelected    = "selected"
	StatusMaintenance = "maintenance"
)

// MaxSelection is the largest party a single booking can seat.
const MaxSelection = 3

// DefaultCount is the studio's bike count at startup.
const DefaultCount = 20

// MaxCount bounds a regenerated floor plan.
const MaxCount = 200

// RowPattern sizes the rows of the studio floor plan; it repeats for long layouts.
var RowPattern = []int{4, 3, 4, 3, 4}

// Bike is one seat in the studio.
type Bike struct {
	ID     string
	Status string
}

// Bookable reports whether a rider may pick this bike.
func (b Bike) Bookable() bool {
	return b.Status == StatusAvailable || b.Status == StatusSelected
}

// GenerateLayout returns n available bikes with ids "1".."n".
// PRE: 0 <= n <= MaxCount
// POST: len(result) == n; every status is available
func GenerateLayout(n int) ([]Bike, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n > MaxCount {
		return nil, ErrTooManyBikes
	}
	bikes := make([]Bike, n)
	for i := range bikes {
		bikes[i] = Bike{ID: strconv.Itoa(i + 1), Status: StatusAvailable}
	}
	return bikes, nil
}

// Rows splits bikes into display rows following RowPattern.
// INVARIANT: bikes is not mutated; concatenating the rows yields bikes
func Rows(bikes []Bike) [][]Bike {
	var rows [][]Bike
	for i, p := 0, 0; i < len(bikes); p++ {
		size := 4
		if len(RowPattern) > 0 && RowPattern[p%len(RowPattern)] > 0 {
			size = RowPattern[p%len(RowPattern)]
		}
		end := i + size
		if end > len(bikes) {
			end = len(bikes)
		}
		rows = append(rows, bikes[i:end])
		i = end
	}
	return rows
}

// SelectedIDs returns the ids of selected bikes in layout order.
func SelectedIDs(bikes []Bike) []string {
	var ids []string
	for _, b := range bikes {
		if b.Status == StatusSelected {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// CountByStatus returns how many bikes have the given status.
func CountByStatus(bikes []Bike, status string) int {
	n := 0
	for _, b := range bikes {
		if b.Status == status {
			n++
		}
	}
	return n
}

// Toggle adds or removes a bike from the current selection.
// Taken, maintenance and unknown bikes are ignored, as is a fourth selection.
// PRE: none
// POST: at most MaxSelection bikes are selected; changed reports whether anything moved
// INVARIANT: taken and maintenance statuses are preserved
func Toggle(bikes []Bike, id string) (next []Bike, changed bool) {
	idx := indexOf(bikes, id)
	if idx < 0 || !bikes[idx].Bookable() {
		return bikes, false
	}
	selected := make(map[string]bool)
	for _, sid := range SelectedIDs(bikes) {
		selected[sid] = true
	}
	if selected[id] {
		delete(selected, id)
	} else {
		if len(selected) >= MaxSelection {
			return bikes, false
		}
		selected[id] = true
	}
	return remap(bikes, selected), true
}

// remap rewrites every bookable bike to selected or available according to selected.
func remap(bikes []Bike, selected map[string]bool) []Bike {
	next := make([]Bike, len(bikes))
	for i, b := range bikes {
		next[i] = b
		if !b.Bookable() {
			continue
		}
		if selected[b.ID] {
			next[i].Status = StatusSelected
		} else {
			next[i].Status = StatusAvailable
		}
	}
	return next
}

// ClearSelection returns every selected bike to available.
func ClearSelection(bikes []Bike) []Bike {
	return remap(bikes, nil)
}

// MarkTaken sets the listed bikes to taken; all other bikes are unchanged.
func MarkTaken(bikes []Bike, ids []string) []Bike {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	next := make([]Bike, len(bikes))
	for i, b := range bikes {
		next[i] = b
		if want[b.ID] {
			next[i].Status = StatusTaken
		}
	}
	return next
}

// ResetForNewBooking returns every bike not under maintenance to available.
// INVARIANT: maintenance statuses are preserved
func ResetForNewBooking(bikes []Bike) []Bike {
	next := make([]Bike, len(bikes))
	for i, b := range bikes {
		next[i] = b
		if b.Status != StatusMaintenance {
			next[i].Status = StatusAvailable
		}
	}
	return next
}

// ToggleMaintenance flips a bike between available and maintenance.
// Taken and selected bikes are left alone.
// PRE: none
// POST: returns ErrUnknownBike when id is not in the layout
func ToggleMaintenance(bikes []Bike, id string) ([]Bike, error) {
	idx := indexOf(bikes, id)
	if idx < 0 {
		return bikes, ErrUnknownBike
	}
	next := make([]Bike, len(bikes))
	copy(next, bikes)
	switch next[idx].Status {
	case StatusAvailable:
		next[idx].Status = StatusMaintenance
	case StatusMaintenance:
		next[idx].Status = StatusAvailable
	}
	return next, nil
}

func indexOf(bikes []Bike, id string) int {
	for i, b := range bikes {
		if b.ID == id {
			return i
		}
	}
	return -1
}
