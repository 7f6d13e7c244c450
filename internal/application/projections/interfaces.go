package projections

import (
	"context"

	"spinstudio/internal/domain/advert"
	"spinstudio/internal/domain/bankaccount"
	"spinstudio/internal/domain/bike"
	"spinstudio/internal/domain/chat"
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/payment"
	"spinstudio/internal/domain/pricing"
	"spinstudio/internal/domain/reward"
	"spinstudio/internal/domain/user"
)

// UserLister interface for roster queries.
type UserLister interface {
	List(ctx context.Context) ([]user.User, error)
}

// InstructorLister interface for instructor queries.
type InstructorLister interface {
	List(ctx context.Context) ([]instructor.Instructor, error)
}

// ClassLister interface for schedule queries.
type ClassLister interface {
	List(ctx context.Context) ([]class.Class, error)
}

// AdvertLister interface for advertisement queries.
type AdvertLister interface {
	List(ctx context.Context) ([]advert.Advertisement, error)
}

// RewardLister interface for reward queries.
type RewardLister interface {
	List(ctx context.Context) ([]reward.Reward, error)
}

// BankAccountLister interface for bank account queries.
type BankAccountLister interface {
	List(ctx context.Context) ([]bankaccount.BankAccount, error)
}

// PaymentLister interface for payment queries.
type PaymentLister interface {
	List(ctx context.Context) ([]payment.Record, error)
}

// PricingReader interface for the pricing record.
type PricingReader interface {
	Get(ctx context.Context) (pricing.Pricing, error)
}

// BikeLister interface for the floor layout.
type BikeLister interface {
	List(ctx context.Context) ([]bike.Bike, error)
}

// ChatReader interface for the support thread.
type ChatReader interface {
	GetThread(ctx context.Context) (chat.Thread, error)
}
