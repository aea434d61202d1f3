package core

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/taxonomy"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

const (
	Cash       PaymentMethod = "Cash"
	Card       PaymentMethod = "Card"
	UPI        PaymentMethod = "UPI"
	NetBanking PaymentMethod = "Net Banking"
	Wallet     PaymentMethod = "Wallet"
)

const (
	Loaned   LoanDirection = "loaned"
	Borrowed LoanDirection = "borrowed"

	LoanPending LoanStatus = "pending"
	LoanPaid    LoanStatus = "paid"
)

const (
	BudgetMonthly  BudgetType = "monthly"
	BudgetCategory BudgetType = "category"
	BudgetWeekly   BudgetType = "weekly"
	BudgetCustom   BudgetType = "custom"
)

type (
	Frequency     string
	PaymentMethod string
	LoanDirection string
	LoanStatus    string
	BudgetType    string

	// Expense is a single recorded money movement.
	Expense struct {
		ID            string            `json:"id"`
		Amount        decimal.Decimal   `json:"amount"`
		Category      taxonomy.Category `json:"category"`
		Subcategory   string            `json:"subcategory,omitempty"`
		PaymentMethod PaymentMethod     `json:"paymentMethod"`
		Description   string            `json:"description"`
		Tags          []string          `json:"tags"`
		Date          Date              `json:"date"`
		CreatedAt     time.Time         `json:"createdAt"`
		UpdatedAt     time.Time         `json:"updatedAt"`
	}

	Subscription struct {
		ID           string            `json:"id"`
		Name         string            `json:"name"`
		Amount       decimal.Decimal   `json:"amount"`
		Category     taxonomy.Category `json:"category"`
		RenewalDate  Date              `json:"renewalDate"`
		Frequency    Frequency         `json:"frequency"`
		Active       bool              `json:"isActive"`
		ReminderDays int               `json:"reminderDays"`
		CreatedAt    time.Time         `json:"createdAt"`
	}

	Loan struct {
		ID          string          `json:"id"`
		Direction   LoanDirection   `json:"type"`
		PersonName  string          `json:"personName"`
		Amount      decimal.Decimal `json:"amount"`
		DueDate     Date            `json:"dueDate"`
		Status      LoanStatus      `json:"status"`
		Description string          `json:"description"`
		CreatedAt   time.Time       `json:"createdAt"`
		PaidAt      *time.Time      `json:"paidAt,omitempty"`
	}

	// Profile is the single user profile of an installation. It is passed
	// explicitly to every computation that needs currency or budget.
	Profile struct {
		ID                  string          `json:"id"`
		Name                string          `json:"name"`
		CurrencySymbol      string          `json:"currency"`
		CurrencyCode        string          `json:"currencySymbol"`
		MonthlyBudget       decimal.Decimal `json:"monthlyBudget"`
		CreatedAt           time.Time       `json:"createdAt"`
		OnboardingCompleted bool            `json:"onboardingCompleted"`
	}

	Budget struct {
		ID        string            `json:"id"`
		Type      BudgetType        `json:"type"`
		Amount    decimal.Decimal   `json:"amount"`
		Category  taxonomy.Category `json:"category,omitempty"`
		StartDate Date              `json:"startDate"`
		EndDate   Date              `json:"endDate"`
		CreatedAt time.Time         `json:"createdAt"`
	}

	// FilterCriteria is a set of optional predicates over expenses. Empty
	// fields do not constrain.
	FilterCriteria struct {
		Categories     []taxonomy.Category `json:"categories,omitempty"`
		PaymentMethods []PaymentMethod     `json:"paymentMethods,omitempty"`
		MinAmount      *decimal.Decimal    `json:"minAmount,omitempty"`
		MaxAmount      *decimal.Decimal    `json:"maxAmount,omitempty"`
		Tags           []string            `json:"tags,omitempty"`
		StartDate      Date                `json:"startDate"`
		EndDate        Date                `json:"endDate"`
	}

	SavedFilter struct {
		ID        string         `json:"id"`
		Name      string         `json:"name"`
		Filters   FilterCriteria `json:"filters"`
		CreatedAt time.Time      `json:"createdAt"`
	}
)

// Currency is one of the currencies selectable in settings.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies lists the supported currencies; the first one is the default.
var Currencies = []Currency{
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
}

// CurrencyByCode resolves a currency code, case-insensitively.
func CurrencyByCode(code string) (Currency, bool) {
	for _, c := range Currencies {
		if strings.EqualFold(c.Code, strings.TrimSpace(code)) {
			return c, true
		}
	}
	return Currency{}, false
}

// PaymentMethods returns every payment method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{Cash, Card, UPI, NetBanking, Wallet}
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case Cash, Card, UPI, NetBanking, Wallet:
		return true
	}
	return false
}

// ParsePaymentMethod resolves a payment method case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	for _, p := range PaymentMethods() {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, true
		}
	}
	return "", false
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (d LoanDirection) Valid() bool {
	return d == Loaned || d == Borrowed
}

func (t BudgetType) Valid() bool {
	switch t {
	case BudgetMonthly, BudgetCategory, BudgetWeekly, BudgetCustom:
		return true
	}
	return false
}

// TransactionDate implements the dated-entity contract used by range filters.
func (e Expense) TransactionDate() Date {
	return e.Date
}

// HasTag reports whether the expense carries tag (case-insensitive).
func (e Expense) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Pending reports whether the loan has not been settled.
func (l Loan) Pending() bool {
	return l.Status != LoanPaid
}

// BudgetTrackingEnabled reports whether a monthly budget is configured.
func (p Profile) BudgetTrackingEnabled() bool {
	return p.MonthlyBudget.IsPositive()
}

// NormalizeTags trims tags and removes empty entries and duplicates, keeping
// the first occurrence of each.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma separated tag list.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
