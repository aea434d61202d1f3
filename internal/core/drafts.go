package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/taxonomy"
)

const (
	maxDescriptionLen = 500
	maxNameLen        = 100
)

// Drafts are the typed payloads accepted by the lifecycle operations. They
// carry no identity or timestamps; those are assigned when the draft is
// turned into an entity.
type (
	ExpenseDraft struct {
		Amount        decimal.Decimal   `json:"amount"`
		Category      taxonomy.Category `json:"category"`
		Subcategory   string            `json:"subcategory"`
		PaymentMethod PaymentMethod     `json:"paymentMethod"`
		Description   string            `json:"description"`
		Tags          []string          `json:"tags"`
		Date          Date              `json:"date"`
	}

	SubscriptionDraft struct {
		Name         string            `json:"name"`
		Amount       decimal.Decimal   `json:"amount"`
		Category     taxonomy.Category `json:"category"`
		RenewalDate  Date              `json:"renewalDate"`
		Frequency    Frequency         `json:"frequency"`
		Active       *bool             `json:"isActive"`
		ReminderDays *int              `json:"reminderDays"`
	}

	// LoanDraft has no status: settlement goes through the dedicated
	// pending -> paid transition only.
	LoanDraft struct {
		Direction   LoanDirection   `json:"type"`
		PersonName  string          `json:"personName"`
		Amount      decimal.Decimal `json:"amount"`
		DueDate     Date            `json:"dueDate"`
		Description string          `json:"description"`
	}

	ProfileDraft struct {
		Name          string          `json:"name"`
		CurrencyCode  string          `json:"currencyCode"`
		MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	}

	BudgetDraft struct {
		Type      BudgetType        `json:"type"`
		Amount    decimal.Decimal   `json:"amount"`
		Category  taxonomy.Category `json:"category"`
		StartDate Date              `json:"startDate"`
		EndDate   Date              `json:"endDate"`
	}

	FilterDraft struct {
		Name    string         `json:"name"`
		Filters FilterCriteria `json:"filters"`
	}
)

func (d ExpenseDraft) Validate() error {
	r := reasons{entity: "expense"}
	if !d.Amount.IsPositive() {
		r.add("amount must be positive")
	}
	if !d.Category.Valid() {
		r.add("unknown category %q", string(d.Category))
	} else if !taxonomy.AllowsSubcategory(d.Category, strings.TrimSpace(d.Subcategory)) {
		r.add("subcategory %q is not allowed for %s", d.Subcategory, d.Category)
	}
	if !d.PaymentMethod.Valid() {
		r.add("unknown payment method %q", string(d.PaymentMethod))
	}
	if len(d.Description) > maxDescriptionLen {
		r.add("description too long (max %d characters)", maxDescriptionLen)
	}
	if err := d.Date.Validate(); err != nil {
		r.add("date is required")
	}
	return r.err()
}

// NewExpense validates d and builds a fresh expense.
func NewExpense(d ExpenseDraft, id string, now time.Time) (Expense, error) {
	if err := d.Validate(); err != nil {
		return Expense{}, err
	}
	e := Expense{ID: id, CreatedAt: now, UpdatedAt: now}
	d.apply(&e)
	return e, nil
}

// ApplyTo validates d and rewrites the mutable fields of e. Identity and
// creation time are kept; the update timestamp is refreshed.
func (d ExpenseDraft) ApplyTo(e Expense, now time.Time) (Expense, error) {
	if err := d.Validate(); err != nil {
		return Expense{}, err
	}
	d.apply(&e)
	e.UpdatedAt = now
	return e, nil
}

func (d ExpenseDraft) apply(e *Expense) {
	e.Amount = d.Amount
	e.Category = d.Category
	e.Subcategory = strings.TrimSpace(d.Subcategory)
	e.PaymentMethod = d.PaymentMethod
	e.Description = strings.TrimSpace(d.Description)
	e.Tags = NormalizeTags(d.Tags)
	e.Date = d.Date
}

func (d SubscriptionDraft) Validate() error {
	r := reasons{entity: "subscription"}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		r.add("name is required")
	} else if len(name) > maxNameLen {
		r.add("name too long (max %d characters)", maxNameLen)
	}
	if !d.Amount.IsPositive() {
		r.add("amount must be positive")
	}
	if d.Category != "" && !d.Category.Valid() {
		r.add("unknown category %q", string(d.Category))
	}
	if d.Frequency != "" && !d.Frequency.Valid() {
		r.add("invalid frequency %q", string(d.Frequency))
	}
	if err := d.RenewalDate.Validate(); err != nil {
		r.add("renewal date is required")
	}
	if d.ReminderDays != nil && *d.ReminderDays < 0 {
		r.add("reminder days cannot be negative")
	}
	return r.err()
}

// NewSubscription validates d and builds a subscription, applying the
// defaults: monthly, active, subscriptions category, 3 reminder days.
func NewSubscription(d SubscriptionDraft, id string, now time.Time) (Subscription, error) {
	if err := d.Validate(); err != nil {
		return Subscription{}, err
	}
	s := Subscription{
		ID:           id,
		Category:     taxonomy.Subscriptions,
		Frequency:    Monthly,
		Active:       true,
		ReminderDays: 3,
		CreatedAt:    now,
	}
	d.apply(&s)
	return s, nil
}

// ApplyTo validates d and rewrites the mutable fields of s.
func (d SubscriptionDraft) ApplyTo(s Subscription) (Subscription, error) {
	if err := d.Validate(); err != nil {
		return Subscription{}, err
	}
	d.apply(&s)
	return s, nil
}

func (d SubscriptionDraft) apply(s *Subscription) {
	s.Name = strings.TrimSpace(d.Name)
	s.Amount = d.Amount
	s.RenewalDate = d.RenewalDate
	if d.Category != "" {
		s.Category = d.Category
	}
	if d.Frequency != "" {
		s.Frequency = d.Frequency
	}
	if d.Active != nil {
		s.Active = *d.Active
	}
	if d.ReminderDays != nil {
		s.ReminderDays = *d.ReminderDays
	}
}

func (d LoanDraft) Validate() error {
	r := reasons{entity: "loan"}
	if !d.Direction.Valid() {
		r.add("type must be %q or %q", Loaned, Borrowed)
	}
	name := strings.TrimSpace(d.PersonName)
	if name == "" {
		r.add("person name is required")
	} else if len(name) > maxNameLen {
		r.add("person name too long (max %d characters)", maxNameLen)
	}
	if !d.Amount.IsPositive() {
		r.add("amount must be positive")
	}
	if len(d.Description) > maxDescriptionLen {
		r.add("description too long (max %d characters)", maxDescriptionLen)
	}
	return r.err()
}

// NewLoan validates d and builds a pending loan.
func NewLoan(d LoanDraft, id string, now time.Time) (Loan, error) {
	if err := d.Validate(); err != nil {
		return Loan{}, err
	}
	l := Loan{ID: id, Status: LoanPending, CreatedAt: now}
	d.apply(&l)
	return l, nil
}

// ApplyTo validates d and rewrites the editable fields of l. Status and
// payment timestamp are never touched.
func (d LoanDraft) ApplyTo(l Loan) (Loan, error) {
	if err := d.Validate(); err != nil {
		return Loan{}, err
	}
	d.apply(&l)
	return l, nil
}

func (d LoanDraft) apply(l *Loan) {
	l.Direction = d.Direction
	l.PersonName = strings.TrimSpace(d.PersonName)
	l.Amount = d.Amount
	l.DueDate = d.DueDate
	l.Description = strings.TrimSpace(d.Description)
}

// Settle performs the one-way pending -> paid transition.
func (l Loan) Settle(now time.Time) (Loan, error) {
	if !l.Pending() {
		return l, ErrLoanSettled
	}
	l.Status = LoanPaid
	paid := now
	l.PaidAt = &paid
	return l, nil
}

func (d ProfileDraft) Validate() error {
	r := reasons{entity: "profile"}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		r.add("name is required")
	} else if len(name) > maxNameLen {
		r.add("name too long (max %d characters)", maxNameLen)
	}
	if d.CurrencyCode != "" {
		if _, ok := CurrencyByCode(d.CurrencyCode); !ok {
			r.add("unsupported currency %q", d.CurrencyCode)
		}
	}
	if d.MonthlyBudget.IsNegative() {
		r.add("monthly budget cannot be negative")
	}
	return r.err()
}

// ApplyTo validates d and writes it over p, resolving the currency symbol.
func (d ProfileDraft) ApplyTo(p Profile) (Profile, error) {
	if err := d.Validate(); err != nil {
		return Profile{}, err
	}
	cur := Currencies[0]
	if d.CurrencyCode != "" {
		cur, _ = CurrencyByCode(d.CurrencyCode)
	} else if p.CurrencyCode != "" {
		if existing, ok := CurrencyByCode(p.CurrencyCode); ok {
			cur = existing
		}
	}
	p.Name = strings.TrimSpace(d.Name)
	p.CurrencyCode = cur.Code
	p.CurrencySymbol = cur.Symbol
	p.MonthlyBudget = d.MonthlyBudget
	return p, nil
}

func (d BudgetDraft) Validate() error {
	r := reasons{entity: "budget"}
	if !d.Type.Valid() {
		r.add("invalid budget type %q", string(d.Type))
	}
	if !d.Amount.IsPositive() {
		r.add("amount must be positive")
	}
	if d.Type == BudgetCategory && !d.Category.Valid() {
		r.add("category budget needs a valid category")
	} else if d.Category != "" && !d.Category.Valid() {
		r.add("unknown category %q", string(d.Category))
	}
	if d.Type == BudgetCustom {
		if d.StartDate.IsZero() || d.EndDate.IsZero() {
			r.add("custom budget needs start and end dates")
		} else if d.EndDate.Before(d.StartDate) {
			r.add("end date must not be before start date")
		}
	}
	return r.err()
}

// NewBudget validates d and builds a budget.
func NewBudget(d BudgetDraft, id string, now time.Time) (Budget, error) {
	if err := d.Validate(); err != nil {
		return Budget{}, err
	}
	return Budget{
		ID:        id,
		Type:      d.Type,
		Amount:    d.Amount,
		Category:  d.Category,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		CreatedAt: now,
	}, nil
}

func (d FilterDraft) Validate() error {
	r := reasons{entity: "filter"}
	if strings.TrimSpace(d.Name) == "" {
		r.add("name is required")
	}
	f := d.Filters
	for _, c := range f.Categories {
		if !c.Valid() {
			r.add("unknown category %q", string(c))
		}
	}
	for _, p := range f.PaymentMethods {
		if !p.Valid() {
			r.add("unknown payment method %q", string(p))
		}
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		r.add("minimum amount exceeds maximum amount")
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		r.add("end date must not be before start date")
	}
	return r.err()
}

// NewSavedFilter validates d and builds a saved filter.
func NewSavedFilter(d FilterDraft, id string, now time.Time) (SavedFilter, error) {
	if err := d.Validate(); err != nil {
		return SavedFilter{}, err
	}
	f := d.Filters
	f.Tags = NormalizeTags(f.Tags)
	return SavedFilter{
		ID:        id,
		Name:      strings.TrimSpace(d.Name),
		Filters:   f,
		CreatedAt: now,
	}, nil
}
