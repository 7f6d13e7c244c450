package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"spinstudio/internal/domain/admin"
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

// SeedDeps holds the stores a fresh studio instance is seeded into.
type SeedDeps struct {
	Users interface {
		ReplaceAll(ctx context.Context, values []user.User) error
	}
	Instructors interface {
		ReplaceAll(ctx context.Context, values []instructor.Instructor) error
	}
	Classes interface {
		ReplaceAll(ctx context.Context, values []class.Class) error
	}
	Adverts interface {
		ReplaceAll(ctx context.Context, values []advert.Advertisement) error
	}
	Rewards interface {
		ReplaceAll(ctx context.Context, values []reward.Reward) error
	}
	BankAccounts interface {
		ReplaceAll(ctx context.Context, values []bankaccount.BankAccount) error
	}
	Payments interface {
		ReplaceAll(ctx context.Context, values []payment.Record) error
	}
	Pricing PricingStore
	Bikes   BikeStoreForBooking
	Chat    interface {
		SaveThread(ctx context.Context, value chat.Thread) error
	}
	Credentials CredentialStore
	Now         func() time.Time
}

// SeedOptions tunes the sample data.
type SeedOptions struct {
	BikeCount     int    // 0 selects bike.DefaultCount
	AdminPassword string // "" selects admin.DefaultPassword
}

// SampleUsers returns the sample roster. The first user is the signed-in rider.
func SampleUsers() []user.User {
	return []user.User{
		{ID: "user_alex_morgan", Name: "Alex Morgan", Email: "alex.morgan@example.com", Level: user.LevelIntermediate, ClassesCompleted: 23,
			AvatarURL: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=100&h=100&fit=crop&q=80"},
		{ID: "user_carlos_g", Name: "Carlos G.", Email: "carlos.g@example.com", Level: user.LevelBeginner, ClassesCompleted: 8,
			AvatarURL: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=100&h=100&fit=crop&q=80"},
		{ID: "user_sofia_l", Name: "Sofia L.", Email: "sofia.l@example.com", Level: user.LevelAdvanced, ClassesCompleted: 52,
			AvatarURL: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100&h=100&fit=crop&q=80"},
	}
}

func sampleInstructors() []instructor.Instructor {
	return []instructor.Instructor{
		{
			ID:        "isabella_r",
			Name:      "Isabella Rodriguez",
			AvatarURL: "https://images.unsplash.com/photo-1580489944761-15a19d654956?w=100&h=100&fit=crop&q=80",
			Bio:       "Apasionada por el ciclismo y el fitness. Mis clases están llenas de energía y buena música para que superes tus límites.",
			Rating:    4.9,
			Reviews: []instructor.Review{
				{UserName: "Carlos G.", Rating: 5, Comment: "¡La mejor clase! Isabella tiene una energía increíble."},
				{UserName: "Ana P.", Rating: 5, Comment: "Música genial y una instructora que te motiva a darlo todo."},
			},
		},
		{
			ID:        "javier_m",
			Name:      "Javier Moreno",
			AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&q=80",
			Bio:       "Con más de 10 años de experiencia, me enfoco en la técnica y la resistencia. Prepárate para sudar y sentirte más fuerte que nunca.",
			Rating:    4.8,
			Reviews: []instructor.Review{
				{UserName: "Sofia L.", Rating: 4, Comment: "Clase muy retadora pero vale la pena."},
			},
		},
	}
}

func sampleClasses() []class.Class {
	return []class.Class{
		{ID: 1, Name: "Morning Ride", InstructorID: "isabella_r", Time: "07:00 AM", Duration: 45, SpotsLeft: 3},
		{ID: 2, Name: "Endurance Pro", InstructorID: "javier_m", Time: "06:00 PM", Duration: 60, SpotsLeft: 5},
		{ID: 3, Name: "Sunset Flow", InstructorID: "isabella_r", Time: "07:30 PM", Duration: 45, SpotsLeft: 2},
	}
}

func sampleRewards() []reward.Reward {
	return []reward.Reward{
		{ID: 1, Title: "Club de los 10", Description: "Completa 10 clases", RequiredClasses: 10},
		{ID: 2, Title: "Guerrero del Pedal", Description: "Completa 25 clases", RequiredClasses: 25},
		{ID: 3, Title: "Leyenda del Ciclismo", Description: "Completa 50 clases", RequiredClasses: 50},
	}
}

func sampleAdverts() []advert.Advertisement {
	return []advert.Advertisement{
		{ID: 1, Type: advert.TypeVideo, Title: "Nueva Clase: Power Beats",
			MediaURL:     "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
			ThumbnailURL: "https://storage.googleapis.com/gtv-videos-bucket/sample/images/ForBiggerFun.jpg"},
		{ID: 2, Type: advert.TypeImage, Title: "Promo 2x1 este Verano",
			MediaURL: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=800&q=80"},
	}
}

func sampleThread(now time.Time) chat.Thread {
	return chat.Thread{
		UserID:   "user_alex_morgan",
		UserName: "Alex Morgan",
		Unread:   true,
		Messages: []chat.Message{
			{ID: "m1", Sender: chat.SenderUser, Text: "Hola, tengo una pregunta sobre mi reserva.", Timestamp: now.Add(-5 * time.Minute)},
			{ID: "m2", Sender: chat.SenderAdmin, Text: "¡Hola Alex! Claro, dime en qué puedo ayudarte.", Timestamp: now.Add(-4 * time.Minute)},
			{ID: "m3", Sender: chat.SenderUser, Text: "Realicé el pago por transferencia, aquí está el comprobante.", Timestamp: now.Add(-2 * time.Minute)},
		},
	}
}

// SamplePricing returns the launch prices.
func SamplePricing() pricing.Pricing {
	return pricing.Pricing{
		Individual: decimal.NewFromInt(15),
		Group2:     decimal.NewFromInt(13),
		Group3:     decimal.NewFromInt(11),
	}
}

func sampleBankAccounts() []bankaccount.BankAccount {
	return []bankaccount.BankAccount{
		{ID: 1, BankName: "Banco Ficticio", IdentificationType: bankaccount.IDTypeRUC, IdentificationNumber: "J-123456789",
			AccountType: bankaccount.AccountChecking, AccountNumber: "0102-0123-4567-8901-2345"},
		{ID: 2, BankName: "NeoBank Digital", IdentificationType: bankaccount.IDTypeCedula, IdentificationNumber: "V-12345678",
			AccountType: bankaccount.AccountSavings, AccountNumber: "0168-0987-6543-2109-8765"},
	}
}

func samplePayments() []payment.Record {
	return []payment.Record{
		{ID: "pay1", UserName: "Carlos G.", ClassName: "Morning Ride", Amount: decimal.NewFromInt(15),
			Method: payment.MethodCard, Status: payment.StatusCompleted, Date: "2024-07-28"},
		{ID: "pay2", UserName: "Ana P.", ClassName: "Morning Ride", Amount: decimal.NewFromInt(26),
			Method: payment.MethodTransfer, Status: payment.StatusPending, Date: "2024-07-28"},
	}
}

// ExecuteSeedSampleData fills a fresh sandbox with the sample studio.
// PRE: every store points at the same empty sandbox
// POST: every collection holds the sample data; admin password is opts.AdminPassword
func ExecuteSeedSampleData(ctx context.Context, opts SeedOptions, deps SeedDeps) error {
	count := opts.BikeCount
	if count == 0 {
		count = bike.DefaultCount
	}
	password := opts.AdminPassword
	if password == "" {
		password = admin.DefaultPassword
	}

	bikes, err := bike.GenerateLayout(count)
	if err != nil {
		return err
	}
	creds, err := admin.NewCredentials(password)
	if err != nil {
		return err
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"users", func() error { return deps.Users.ReplaceAll(ctx, SampleUsers()) }},
		{"instructors", func() error { return deps.Instructors.ReplaceAll(ctx, sampleInstructors()) }},
		{"classes", func() error { return deps.Classes.ReplaceAll(ctx, sampleClasses()) }},
		{"adverts", func() error { return deps.Adverts.ReplaceAll(ctx, sampleAdverts()) }},
		{"rewards", func() error { return deps.Rewards.ReplaceAll(ctx, sampleRewards()) }},
		{"bank_accounts", func() error { return deps.BankAccounts.ReplaceAll(ctx, sampleBankAccounts()) }},
		{"payments", func() error { return deps.Payments.ReplaceAll(ctx, samplePayments()) }},
		{"pricing", func() error { return deps.Pricing.Save(ctx, SamplePricing()) }},
		{"bikes", func() error { return deps.Bikes.ReplaceAll(ctx, bikes) }},
		{"chat", func() error { return deps.Chat.SaveThread(ctx, sampleThread(deps.Now())) }},
		{"admin_credentials", func() error { return deps.Credentials.Save(ctx, creds) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}

	log.Debug().Int("bikes", count).Msg("sandbox_seeded")
	return nil
}
