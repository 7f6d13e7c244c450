package projections

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/payment"
)

// TodaysRevenue sums completed payments dated on now's local calendar day.
// INVARIANT: pure; pending and rejected payments never count
func TodaysRevenue(payments []payment.Record, now time.Time) decimal.Decimal {
	today := now.Local().Format(payment.DateLayout)
	sum := decimal.Zero
	for _, p := range payments {
		if p.Status == payment.StatusCompleted && p.Date == today {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// PendingCount counts payments awaiting acceptance.
func PendingCount(payments []payment.Record) int {
	n := 0
	for _, p := range payments {
		if p.Status == payment.StatusPending {
			n++
		}
	}
	return n
}

// BikesInUse counts taken bikes.
func BikesInUse(bikes []bike.Bike) int {
	return bike.CountByStatus(bikes, bike.StatusTaken)
}

// AdminStats are the three dashboard tiles.
type AdminStats struct {
	TodaysRevenue string `json:"todaysRevenue"`
	PendingCount  int    `json:"pendingCount"`
	BikesInUse    int    `json:"bikesInUse"`
	BikeCount     int    `json:"bikeCount"`
}

// PaymentRow is a payment as listed in the back office.
type PaymentRow struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	ClassName string `json:"className"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	CanAccept bool   `json:"canAccept"`
}

func paymentRow(p payment.Record) PaymentRow {
	return PaymentRow{
		ID:        p.ID,
		UserName:  p.UserName,
		ClassName: p.ClassName,
		Amount:    money(p.Amount),
		Method:    p.Method,
		Status:    p.Status,
		Date:      p.Date,
		CanAccept: p.Status == payment.StatusPending,
	}
}

// AdminPanelView is the drill-down behind a dashboard tile.
type AdminPanelView struct {
	Panel    navigation.Panel `json:"panel"`
	Stats    AdminStats       `json:"stats"`
	Payments []PaymentRow     `json:"payments,omitempty"`
	Bikes    []BikeView       `json:"bikes,omitempty"`
}

// GetAdminPanelDeps holds dependencies for GetAdminPanel.
type GetAdminPanelDeps struct {
	PaymentStore PaymentLister
	BikeStore    BikeLister
	Now          func() time.Time
}

// QueryGetAdminPanel computes the dashboard tiles and the requested drill-down.
// PRE: panel.Valid()
// POST: todaysIncome lists the payments summed into TodaysRevenue;
// pendingReservations lists pending payments; occupiedBikes lists taken bikes
func QueryGetAdminPanel(ctx context.Context, panel navigation.Panel, deps GetAdminPanelDeps) (AdminPanelView, error) {
	payments, err := deps.PaymentStore.List(ctx)
	if err != nil {
		return AdminPanelView{}, fmt.Errorf("list payments: %w", err)
	}
	bikes, err := deps.BikeStore.List(ctx)
	if err != nil {
		return AdminPanelView{}, fmt.Errorf("list bikes: %w", err)
	}
	now := deps.Now()

	view := AdminPanelView{
		Panel: panel,
		Stats: AdminStats{
			TodaysRevenue: money(TodaysRevenue(payments, now)),
			PendingCount:  PendingCount(payments),
			BikesInUse:    BikesInUse(bikes),
			BikeCount:     len(bikes),
		},
	}

	switch panel {
	case navigation.PanelTodaysIncome:
		today := now.Local().Format(payment.DateLayout)
		for _, p := range payments {
			if p.Status == payment.StatusCompleted && p.Date == today {
				view.Payments = append(view.Payments, paymentRow(p))
			}
		}
	case navigation.PanelPendingReservations:
		for _, p := range payments {
			if p.Status == payment.StatusPending {
				view.Payments = append(view.Payments, paymentRow(p))
			}
		}
	case navigation.PanelOccupiedBikes:
		for _, b := range bikes {
			if b.Status == bike.StatusTaken {
				view.Bikes = append(view.Bikes, BikeView{ID: b.ID, Status: b.Status})
			}
		}
	}
	return view, nil
}
