package projections

import (
	"context"
	"fmt"
	"sort"

	"spinstudio/internal/application/listutil"
	"spinstudio/internal/domain/navigation"
	"spinstudio/internal/domain/user"
)

// UserSortColumns are the sortable roster columns.
var UserSortColumns = []string{"name", "email", "classes"}

// UserPage is one page of the searchable roster.
type UserPage struct {
	Search string            `json:"search"`
	Sort   string            `json:"sort"`
	Desc   bool              `json:"desc"`
	Users  []UserView        `json:"users"`
	Page   listutil.PageInfo `json:"page"`
}

// QuerySearchUsers filters the roster by a case-insensitive substring of name
// or email, then sorts and paginates.
// PRE: params came from listutil.ParseListParams
// POST: an empty search lists every user in store order (unless sorted)
func QuerySearchUsers(ctx context.Context, params listutil.ListParams, store UserLister) (UserPage, error) {
	all, err := store.List(ctx)
	if err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}

	m := listutil.NewMatcher(params.Search)
	var hits []user.User
	for _, u := range all {
		if m.Match(u.Name, u.Email) {
			hits = append(hits, u)
		}
	}
	sortUsers(hits, params.Sort, params.Desc)

	page, info := listutil.Paginate(hits, params.Page, params.PerPage)
	out := make([]UserView, 0, len(page))
	for _, u := range page {
		out = append(out, userView(u))
	}
	return UserPage{Search: params.Search, Sort: params.Sort, Desc: params.Desc, Users: out, Page: info}, nil
}

func sortUsers(users []user.User, column string, desc bool) {
	var less func(a, b user.User) bool
	switch column {
	case "name":
		less = func(a, b user.User) bool { return a.Name < b.Name }
	case "email":
		less = func(a, b user.User) bool { return a.Email < b.Email }
	case "classes":
		less = func(a, b user.User) bool { return a.ClassesCompleted < b.ClassesCompleted }
	default:
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return less(users[j], users[i])
		}
		return less(users[i], users[j])
	})
}

// ConfigView is the studio configuration section.
type ConfigView struct {
	Pricing      PricingView       `json:"pricing"`
	BankAccounts []BankAccountView `json:"bankAccounts"`
	Bikes        []BikeView        `json:"bikes"`
	BikeCount    int               `json:"bikeCount"`
}

// AdminSectionView carries the data of exactly one admin section.
type AdminSectionView struct {
	Section     navigation.Section `json:"section"`
	Users       *UserPage          `json:"users,omitempty"`
	Instructors []InstructorView   `json:"instructors,omitempty"`
	Classes     []ClassCard        `json:"classes,omitempty"`
	Payments    []PaymentRow       `json:"payments,omitempty"`
	Adverts     []AdvertCard       `json:"adverts,omitempty"`
	Rewards     []RewardView       `json:"rewards,omitempty"`
	Chat        *ChatView          `json:"chat,omitempty"`
	Config      *ConfigView        `json:"config,omitempty"`
}

// GetAdminSectionDeps holds dependencies for GetAdminSection.
type GetAdminSectionDeps struct {
	UserStore        UserLister
	InstructorStore  InstructorLister
	ClassStore       ClassLister
	AdvertStore      AdvertLister
	RewardStore      RewardLister
	BankAccountStore BankAccountLister
	PaymentStore     PaymentLister
	PricingStore     PricingReader
	BikeStore        BikeLister
	ChatStore        ChatReader
}

// QueryGetAdminSection loads the data behind one admin tab.
// PRE: section.Valid(); params only apply to the users section
// POST: only the fields of section are set (classes also lists instructors
// for the picker); security has no data
func QueryGetAdminSection(ctx context.Context, section navigation.Section, params listutil.ListParams, deps GetAdminSectionDeps) (AdminSectionView, error) {
	view := AdminSectionView{Section: section}
	switch section {
	case navigation.SectionUsers:
		page, err := QuerySearchUsers(ctx, params, deps.UserStore)
		if err != nil {
			return AdminSectionView{}, err
		}
		view.Users = &page

	case navigation.SectionInstructors:
		all, err := deps.InstructorStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list instructors: %w", err)
		}
		view.Instructors = make([]InstructorView, 0, len(all))
		for _, i := range all {
			view.Instructors = append(view.Instructors, instructorView(i))
		}

	case navigation.SectionClasses:
		classes, err := deps.ClassStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list classes: %w", err)
		}
		instructors, err := deps.InstructorStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list instructors: %w", err)
		}
		view.Classes = classCards(classes, instructors)
		view.Instructors = make([]InstructorView, 0, len(instructors))
		for _, i := range instructors {
			view.Instructors = append(view.Instructors, instructorView(i))
		}

	case navigation.SectionPayments:
		all, err := deps.PaymentStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list payments: %w", err)
		}
		view.Payments = make([]PaymentRow, 0, len(all))
		for _, p := range all {
			view.Payments = append(view.Payments, paymentRow(p))
		}

	case navigation.SectionAds:
		all, err := deps.AdvertStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list adverts: %w", err)
		}
		view.Adverts = make([]AdvertCard, 0, len(all))
		for _, a := range all {
			view.Adverts = append(view.Adverts, AdvertCard{ID: a.ID, Type: a.Type, Title: a.Title, MediaURL: a.MediaURL, ThumbnailURL: a.ThumbnailURL})
		}

	case navigation.SectionRewards:
		all, err := deps.RewardStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list rewards: %w", err)
		}
		view.Rewards = make([]RewardView, 0, len(all))
		for _, r := range all {
			view.Rewards = append(view.Rewards, rewardView(r, 0))
		}

	case navigation.SectionChat:
		c, err := QueryGetChat(ctx, deps.ChatStore)
		if err != nil {
			return AdminSectionView{}, err
		}
		view.Chat = &c

	case navigation.SectionConfig:
		p, err := deps.PricingStore.Get(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("load pricing: %w", err)
		}
		accounts, err := deps.BankAccountStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list bank accounts: %w", err)
		}
		bikes, err := deps.BikeStore.List(ctx)
		if err != nil {
			return AdminSectionView{}, fmt.Errorf("list bikes: %w", err)
		}
		cfg := ConfigView{
			Pricing:      pricingView(p),
			BankAccounts: bankAccountViews(accounts),
			Bikes:        make([]BikeView, 0, len(bikes)),
			BikeCount:    len(bikes),
		}
		for _, b := range bikes {
			cfg.Bikes = append(cfg.Bikes, BikeView{ID: b.ID, Status: b.Status})
		}
		view.Config = &cfg
	}
	return view, nil
}
