package orchestrators

import (
	"context"
	"testing"

	"spinstudio/internal/adapters/storage"
	adminStore "spinstudio/internal/adapters/storage/admin"
	advertStore "spinstudio/internal/adapters/storage/advert"
	bankStore "spinstudio/internal/adapters/storage/bankaccount"
	bikeStore "spinstudio/internal/adapters/storage/bike"
	chatStore "spinstudio/internal/adapters/storage/chat"
	classStore "spinstudio/internal/adapters/storage/class"
	instructorStore "spinstudio/internal/adapters/storage/instructor"
	paymentStore "spinstudio/internal/adapters/storage/payment"
	pricingStore "spinstudio/internal/adapters/storage/pricing"
	rewardStore "spinstudio/internal/adapters/storage/reward"
	userStore "spinstudio/internal/adapters/storage/user"
	"spinstudio/internal/domain/bike"
)

// TestExecuteSeedSampleData seeds a real sandbox and reads it back.
func TestExecuteSeedSampleData(t *testing.T) {
	ctx := context.Background()
	db, err := storage.OpenSandbox(ctx, t.Name())
	if err != nil {
		t.Fatalf("OpenSandbox: %v", err)
	}
	defer db.Close()

	users := userStore.NewSQLiteStore(db)
	instructors := instructorStore.NewSQLiteStore(db)
	classes := classStore.NewSQLiteStore(db)
	bikes := bikeStore.NewSQLiteStore(db)
	chats := chatStore.NewSQLiteStore(db)
	creds := adminStore.NewSQLiteStore(db)
	prices := pricingStore.NewSQLiteStore(db)

	err = ExecuteSeedSampleData(ctx, SeedOptions{AdminPassword: "studio-secret"}, SeedDeps{
		Users:        users,
		Instructors:  instructors,
		Classes:      classes,
		Adverts:      advertStore.NewSQLiteStore(db),
		Rewards:      rewardStore.NewSQLiteStore(db),
		BankAccounts: bankStore.NewSQLiteStore(db),
		Payments:     paymentStore.NewSQLiteStore(db),
		Pricing:      prices,
		Bikes:        bikes,
		Chat:         chats,
		Credentials:  creds,
		Now:          fixedNow,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	us, _ := users.List(ctx)
	if len(us) != 3 || us[0].ID != "user_alex_morgan" {
		t.Errorf("users = %+v", us)
	}
	c, err := classes.GetByID(ctx, 2)
	if err != nil || c.Name != "Endurance Pro" || c.InstructorID != "javier_m" {
		t.Errorf("class 2 = %+v, %v", c, err)
	}
	inst, err := instructors.GetByID(ctx, "isabella_r")
	if err != nil || len(inst.Reviews) != 2 || inst.Rating != 4.9 {
		t.Errorf("isabella = %+v, %v", inst, err)
	}
	bs, _ := bikes.List(ctx)
	if len(bs) != bike.DefaultCount {
		t.Errorf("bikes = %d, want %d", len(bs), bike.DefaultCount)
	}
	th, err := chats.GetThread(ctx)
	if err != nil || !th.Unread || len(th.Messages) != 3 {
		t.Errorf("thread = %+v, %v", th, err)
	}
	p, _ := prices.Get(ctx)
	if p.PriceForPartySize(2).String() != "26" {
		t.Errorf("price for 2 = %s, want 26", p.PriceForPartySize(2))
	}
	if err := ExecuteAdminLogin(ctx, "studio-secret", creds); err != nil {
		t.Errorf("configured admin password rejected: %v", err)
	}
}
