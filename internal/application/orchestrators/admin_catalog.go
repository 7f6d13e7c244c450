package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"spinstudio/internal/domain/advert"
	"spinstudio/internal/domain/bankaccount"
	"spinstudio/internal/domain/class"
	"spinstudio/internal/domain/instructor"
	"spinstudio/internal/domain/reward"
)

// ErrRecordNotFound is returned when an edit targets an id that does not exist.
var ErrRecordNotFound = errors.New("record not found")

func logCatalog(event, kind, id string) {
	log.Info().Str("event", event).Str("kind", kind).Str("id", id).Msg("catalog_event")
}

// --- Instructors ---

// InstructorStoreForAdmin defines the store interface needed by instructor admin orchestrators.
type InstructorStoreForAdmin interface {
	GetByID(ctx context.Context, id string) (instructor.Instructor, error)
	Save(ctx context.Context, value instructor.Instructor) error
	Delete(ctx context.Context, id string) error
}

// ExecuteAddInstructor appends an instructor with the dashboard defaults.
// POST: The new instructor has id "instr-<generated>", rating 0 and no reviews
func ExecuteAddInstructor(ctx context.Context, store InstructorStoreForAdmin, generateID func() string) (instructor.Instructor, error) {
	inst := instructor.New("instr-" + generateID())
	if err := store.Save(ctx, inst); err != nil {
		return instructor.Instructor{}, fmt.Errorf("save instructor: %w", err)
	}
	logCatalog("created", "instructor", inst.ID)
	return inst, nil
}

// EditInstructorInput carries the fields editable from the dashboard.
type EditInstructorInput struct {
	ID        string
	Name      string
	AvatarURL string
	Bio       string
}

// ExecuteEditInstructor replaces an instructor's profile fields.
// PRE: none
// POST: Rating and reviews are preserved; returns ErrRecordNotFound for unknown ids
func ExecuteEditInstructor(ctx context.Context, input EditInstructorInput, store InstructorStoreForAdmin) (instructor.Instructor, error) {
	inst, err := store.GetByID(ctx, input.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return instructor.Instructor{}, ErrRecordNotFound
	}
	if err != nil {
		return instructor.Instructor{}, fmt.Errorf("load instructor: %w", err)
	}
	inst.Name = input.Name
	inst.AvatarURL = input.AvatarURL
	inst.Bio = input.Bio
	if err := inst.Validate(); err != nil {
		return instructor.Instructor{}, err
	}
	if err := store.Save(ctx, inst); err != nil {
		return instructor.Instructor{}, fmt.Errorf("save instructor: %w", err)
	}
	logCatalog("edited", "instructor", inst.ID)
	return inst, nil
}

// ExecuteDeleteInstructor removes an instructor. Classes that reference it
// keep the dangling id.
func ExecuteDeleteInstructor(ctx context.Context, id string, store InstructorStoreForAdmin) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete instructor: %w", err)
	}
	logCatalog("deleted", "instructor", id)
	return nil
}

// --- Classes ---

// ClassStoreForAdmin defines the store interface needed by class admin orchestrators.
type ClassStoreForAdmin interface {
	GetByID(ctx context.Context, id int64) (class.Class, error)
	Save(ctx context.Context, value class.Class) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)
}

// InstructorLister defines the instructor listing needed to default a new class.
type InstructorLister interface {
	List(ctx context.Context) ([]instructor.Instructor, error)
}

// ExecuteAddClass appends a class taught by the first instructor, if any.
// POST: id is one above the current maximum
func ExecuteAddClass(ctx context.Context, store ClassStoreForAdmin, instructors InstructorLister) (class.Class, error) {
	id, err := store.NextID(ctx)
	if err != nil {
		return class.Class{}, fmt.Errorf("next class id: %w", err)
	}
	all, err := instructors.List(ctx)
	if err != nil {
		return class.Class{}, fmt.Errorf("list instructors: %w", err)
	}
	instructorID := ""
	if len(all) > 0 {
		instructorID = all[0].ID
	}
	c := class.New(id, instructorID)
	if err := store.Save(ctx, c); err != nil {
		return class.Class{}, fmt.Errorf("save class: %w", err)
	}
	logCatalog("created", "class", fmt.Sprint(c.ID))
	return c, nil
}

// ExecuteEditClass replaces a class by id. The instructor is not checked.
// POST: returns ErrRecordNotFound for unknown ids
func ExecuteEditClass(ctx context.Context, c class.Class, store ClassStoreForAdmin) error {
	if _, err := store.GetByID(ctx, c.ID); errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	} else if err != nil {
		return fmt.Errorf("load class: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, c); err != nil {
		return fmt.Errorf("save class: %w", err)
	}
	logCatalog("edited", "class", fmt.Sprint(c.ID))
	return nil
}

// ExecuteDeleteClass removes a class by id.
func ExecuteDeleteClass(ctx context.Context, id int64, store ClassStoreForAdmin) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	logCatalog("deleted", "class", fmt.Sprint(id))
	return nil
}

// --- Advertisements, rewards, bank accounts ---

// AdvertStoreForAdmin defines the store interface needed by advertisement admin orchestrators.
type AdvertStoreForAdmin interface {
	List(ctx context.Context) ([]advert.Advertisement, error)
	Save(ctx context.Context, value advert.Advertisement) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)
}

// ExecuteAddAdvert appends an empty image advertisement.
func ExecuteAddAdvert(ctx context.Context, store AdvertStoreForAdmin) (advert.Advertisement, error) {
	id, err := store.NextID(ctx)
	if err != nil {
		return advert.Advertisement{}, fmt.Errorf("next advert id: %w", err)
	}
	a := advert.New(id)
	if err := store.Save(ctx, a); err != nil {
		return advert.Advertisement{}, fmt.Errorf("save advert: %w", err)
	}
	logCatalog("created", "advert", fmt.Sprint(id))
	return a, nil
}

// ExecuteEditAdvert replaces an advertisement by id.
// POST: returns ErrRecordNotFound for unknown ids
func ExecuteEditAdvert(ctx context.Context, a advert.Advertisement, store AdvertStoreForAdmin) error {
	all, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list adverts: %w", err)
	}
	if !containsID(all, a.ID, func(x advert.Advertisement) int64 { return x.ID }) {
		return ErrRecordNotFound
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, a); err != nil {
		return fmt.Errorf("save advert: %w", err)
	}
	logCatalog("edited", "advert", fmt.Sprint(a.ID))
	return nil
}

// ExecuteDeleteAdvert removes an advertisement by id.
func ExecuteDeleteAdvert(ctx context.Context, id int64, store AdvertStoreForAdmin) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete advert: %w", err)
	}
	logCatalog("deleted", "advert", fmt.Sprint(id))
	return nil
}

// RewardStoreForAdmin defines the store interface needed by reward admin orchestrators.
type RewardStoreForAdmin interface {
	List(ctx context.Context) ([]reward.Reward, error)
	Save(ctx context.Context, value reward.Reward) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)
}

// ExecuteAddReward appends a reward with the dashboard defaults.
func ExecuteAddReward(ctx context.Context, store RewardStoreForAdmin) (reward.Reward, error) {
	id, err := store.NextID(ctx)
	if err != nil {
		return reward.Reward{}, fmt.Errorf("next reward id: %w", err)
	}
	r := reward.New(id)
	if err := store.Save(ctx, r); err != nil {
		return reward.Reward{}, fmt.Errorf("save reward: %w", err)
	}
	logCatalog("created", "reward", fmt.Sprint(id))
	return r, nil
}

// ExecuteEditReward replaces a reward by id.
// POST: returns ErrRecordNotFound for unknown ids
func ExecuteEditReward(ctx context.Context, r reward.Reward, store RewardStoreForAdmin) error {
	all, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list rewards: %w", err)
	}
	if !containsID(all, r.ID, func(x reward.Reward) int64 { return x.ID }) {
		return ErrRecordNotFound
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, r); err != nil {
		return fmt.Errorf("save reward: %w", err)
	}
	logCatalog("edited", "reward", fmt.Sprint(r.ID))
	return nil
}

// ExecuteDeleteReward removes a reward by id.
func ExecuteDeleteReward(ctx context.Context, id int64, store RewardStoreForAdmin) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete reward: %w", err)
	}
	logCatalog("deleted", "reward", fmt.Sprint(id))
	return nil
}

// BankAccountStoreForAdmin defines the store interface needed by bank account admin orchestrators.
type BankAccountStoreForAdmin interface {
	List(ctx context.Context) ([]bankaccount.BankAccount, error)
	Save(ctx context.Context, value bankaccount.BankAccount) error
	Delete(ctx context.Context, id int64) error
	NextID(ctx context.Context) (int64, error)
}

// ExecuteAddBankAccount appends a placeholder checking account.
func ExecuteAddBankAccount(ctx context.Context, store BankAccountStoreForAdmin) (bankaccount.BankAccount, error) {
	id, err := store.NextID(ctx)
	if err != nil {
		return bankaccount.BankAccount{}, fmt.Errorf("next bank account id: %w", err)
	}
	b := bankaccount.New(id)
	if err := store.Save(ctx, b); err != nil {
		return bankaccount.BankAccount{}, fmt.Errorf("save bank account: %w", err)
	}
	logCatalog("created", "bank_account", fmt.Sprint(id))
	return b, nil
}

// ExecuteEditBankAccount replaces a bank account by id.
// POST: returns ErrRecordNotFound for unknown ids
func ExecuteEditBankAccount(ctx context.Context, b bankaccount.BankAccount, store BankAccountStoreForAdmin) error {
	all, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list bank accounts: %w", err)
	}
	if !containsID(all, b.ID, func(x bankaccount.BankAccount) int64 { return x.ID }) {
		return ErrRecordNotFound
	}
	if err := b.Validate(); err != nil {
		return err
	}
	if err := store.Save(ctx, b); err != nil {
		return fmt.Errorf("save bank account: %w", err)
	}
	logCatalog("edited", "bank_account", fmt.Sprint(b.ID))
	return nil
}

// ExecuteDeleteBankAccount removes a bank account by id.
func ExecuteDeleteBankAccount(ctx context.Context, id int64, store BankAccountStoreForAdmin) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	logCatalog("deleted", "bank_account", fmt.Sprint(id))
	return nil
}

// --- Users ---

// UserStoreForAdmin defines the store interface needed by user admin orchestrators.
type UserStoreForAdmin interface {
	Delete(ctx context.Context, id string) error
}

// ExecuteDeleteUser removes a user from the roster. The current user may be
// deleted; their session keeps its own copy.
func ExecuteDeleteUser(ctx context.Context, id string, store UserStoreForAdmin) error {
	if err := store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	logCatalog("deleted", "user", id)
	return nil
}

func containsID[T any](items []T, id int64, idOf func(T) int64) bool {
	for _, it := range items {
		if idOf(it) == id {
			return true
		}
	}
	return false
}
