package core

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/taxonomy"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func validExpenseDraft() ExpenseDraft {
	return ExpenseDraft{
		Amount:        decimal.NewFromInt(250),
		Category:      taxonomy.Food,
		Subcategory:   "Lunch",
		PaymentMethod: UPI,
		Description:   " weekly shop ",
		Tags:          []string{"home", " Home", "", "bulk"},
		Date:          NewDate(2025, 3, 9),
	}
}

func TestExpenseDraftValidate(t *testing.T) {
	if err := validExpenseDraft().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := map[string]func(*ExpenseDraft){
		"zero amount":      func(d *ExpenseDraft) { d.Amount = decimal.Zero },
		"negative amount":  func(d *ExpenseDraft) { d.Amount = decimal.NewFromInt(-5) },
		"unknown category": func(d *ExpenseDraft) { d.Category = "groceries" },
		"foreign sub":      func(d *ExpenseDraft) { d.Subcategory = "Flights" },
		"payment method":   func(d *ExpenseDraft) { d.PaymentMethod = "Cheque" },
		"zero date":        func(d *ExpenseDraft) { d.Date = Date{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := validExpenseDraft()
			mutate(&d)
			err := d.Validate()
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidationErrorCollectsReasons(t *testing.T) {
	err := ExpenseDraft{}.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Entity != "expense" {
		t.Fatalf("entity = %q", verr.Entity)
	}
	if len(verr.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", verr.Reasons)
	}
}

func TestNewExpenseNormalizes(t *testing.T) {
	e, err := NewExpense(validExpenseDraft(), "e1", now)
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}
	if e.ID != "e1" || !e.CreatedAt.Equal(now) || !e.UpdatedAt.Equal(now) {
		t.Fatalf("identity not assigned: %+v", e)
	}
	if e.Description != "weekly shop" {
		t.Fatalf("description not trimmed: %q", e.Description)
	}
	if want := []string{"home", "bulk"}; !reflect.DeepEqual(e.Tags, want) {
		t.Fatalf("tags = %v, want %v", e.Tags, want)
	}
}

func TestExpenseDraftApplyToKeepsIdentity(t *testing.T) {
	e, _ := NewExpense(validExpenseDraft(), "e1", now)
	d := validExpenseDraft()
	d.Amount = decimal.NewFromInt(99)
	later := now.Add(time.Hour)

	updated, err := d.ApplyTo(e, later)
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if updated.ID != "e1" || !updated.CreatedAt.Equal(now) {
		t.Fatalf("identity changed: %+v", updated)
	}
	if !updated.UpdatedAt.Equal(later) || !updated.Amount.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestNewSubscriptionDefaults(t *testing.T) {
	s, err := NewSubscription(SubscriptionDraft{
		Name:        "Music",
		Amount:      decimal.NewFromInt(119),
		RenewalDate: NewDate(2025, 3, 15),
	}, "s1", now)
	if err != nil {
		t.Fatalf("NewSubscription: %v", err)
	}
	if s.Frequency != Monthly || !s.Active || s.ReminderDays != 3 || s.Category != taxonomy.Subscriptions {
		t.Fatalf("defaults not applied: %+v", s)
	}

	off := false
	s, err = SubscriptionDraft{
		Name:        "Music",
		Amount:      decimal.NewFromInt(119),
		RenewalDate: NewDate(2025, 3, 15),
		Active:      &off,
	}.ApplyTo(s)
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if s.Active {
		t.Fatalf("expected inactive subscription")
	}
}

func TestSubscriptionDraftRejectsNegativeReminder(t *testing.T) {
	days := -1
	err := SubscriptionDraft{
		Name:         "Cloud",
		Amount:       decimal.NewFromInt(1),
		RenewalDate:  NewDate(2025, 1, 1),
		ReminderDays: &days,
	}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoanSettleIsOneWay(t *testing.T) {
	l, err := NewLoan(LoanDraft{
		Direction:  Loaned,
		PersonName: "Asha",
		Amount:     decimal.NewFromInt(500),
	}, "l1", now)
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	if l.Status != LoanPending || l.PaidAt != nil {
		t.Fatalf("new loan should be pending: %+v", l)
	}

	paid, err := l.Settle(now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if paid.Status != LoanPaid || paid.PaidAt == nil || !paid.PaidAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("loan not settled: %+v", paid)
	}
	if _, err := paid.Settle(now); !errors.Is(err, ErrLoanSettled) {
		t.Fatalf("expected ErrLoanSettled, got %v", err)
	}

	edited, err := LoanDraft{Direction: Borrowed, PersonName: "Asha", Amount: decimal.NewFromInt(1)}.ApplyTo(paid)
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if edited.Status != LoanPaid || edited.PaidAt == nil {
		t.Fatalf("edit must not touch settlement: %+v", edited)
	}
}

func TestProfileDraftApplyTo(t *testing.T) {
	p, err := ProfileDraft{Name: "Ravi", CurrencyCode: "usd", MonthlyBudget: decimal.NewFromInt(2000)}.ApplyTo(Profile{ID: "p"})
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if p.CurrencyCode != "USD" || p.CurrencySymbol != "$" {
		t.Fatalf("currency not resolved: %+v", p)
	}
	if !p.BudgetTrackingEnabled() {
		t.Fatalf("expected budget tracking enabled")
	}

	p, err = ProfileDraft{Name: "Ravi"}.ApplyTo(p)
	if err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	if p.CurrencyCode != "USD" {
		t.Fatalf("currency should be kept, got %q", p.CurrencyCode)
	}
	if p.BudgetTrackingEnabled() {
		t.Fatalf("zero budget disables tracking")
	}

	if _, err := (ProfileDraft{Name: "x", CurrencyCode: "XYZ"}).ApplyTo(p); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for unknown currency, got %v", err)
	}
}

func TestBudgetDraftValidate(t *testing.T) {
	cases := []struct {
		name string
		d    BudgetDraft
		ok   bool
	}{
		{"monthly", BudgetDraft{Type: BudgetMonthly, Amount: decimal.NewFromInt(10)}, true},
		{"category without category", BudgetDraft{Type: BudgetCategory, Amount: decimal.NewFromInt(10)}, false},
		{"category", BudgetDraft{Type: BudgetCategory, Amount: decimal.NewFromInt(10), Category: taxonomy.Travel}, true},
		{"custom inverted", BudgetDraft{Type: BudgetCustom, Amount: decimal.NewFromInt(10), StartDate: NewDate(2025, 2, 1), EndDate: NewDate(2025, 1, 1)}, false},
		{"unknown type", BudgetDraft{Type: "quarterly", Amount: decimal.NewFromInt(10)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestFilterDraftValidate(t *testing.T) {
	lo, hi := decimal.NewFromInt(100), decimal.NewFromInt(10)
	err := FilterDraft{Name: "big", Filters: FilterCriteria{MinAmount: &lo, MaxAmount: &hi}}.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	f, err := NewSavedFilter(FilterDraft{Name: " food ", Filters: FilterCriteria{Categories: []taxonomy.Category{taxonomy.Food}}}, "f1", now)
	if err != nil {
		t.Fatalf("NewSavedFilter: %v", err)
	}
	if f.Name != "food" {
		t.Fatalf("name = %q", f.Name)
	}
}

func TestFrequencyMonthlyCost(t *testing.T) {
	cases := []struct {
		f      Frequency
		amount int64
		want   string
	}{
		{Daily, 10, "300"},
		{Weekly, 100, "400"},
		{Monthly, 199, "199"},
		{Yearly, 120, "10"},
	}
	for _, tc := range cases {
		got, err := tc.f.MonthlyCost(decimal.NewFromInt(tc.amount))
		if err != nil {
			t.Fatalf("%s: %v", tc.f, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("%s: got %s want %s", tc.f, got, tc.want)
		}
	}
	if _, err := Frequency("hourly").MonthlyCost(decimal.NewFromInt(1)); err == nil {
		t.Fatalf("expected error for unknown frequency")
	}
}

func TestFrequencyNext(t *testing.T) {
	cases := []struct {
		f    Frequency
		from Date
		want Date
	}{
		{Daily, NewDate(2025, 12, 31), NewDate(2026, 1, 1)},
		{Weekly, NewDate(2025, 2, 25), NewDate(2025, 3, 4)},
		{Monthly, NewDate(2025, 1, 31), NewDate(2025, 2, 28)},
		{Monthly, NewDate(2024, 1, 31), NewDate(2024, 2, 29)},
		{Yearly, NewDate(2024, 2, 29), NewDate(2025, 2, 28)},
	}
	for _, tc := range cases {
		got, err := tc.f.Next(tc.from)
		if err != nil {
			t.Fatalf("%s: %v", tc.f, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s from %s: got %s want %s", tc.f, tc.from, got, tc.want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" work, travel ,Work,, ")
	want := []string{"work", "travel"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := SplitTags("  "); len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	if p, ok := ParsePaymentMethod("net banking"); !ok || p != NetBanking {
		t.Fatalf("got %q %v", p, ok)
	}
	if _, ok := ParsePaymentMethod("cheque"); ok {
		t.Fatalf("expected unknown method")
	}
}
