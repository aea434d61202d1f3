package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
)

// LoanLedger partitions loans by direction and status. The totals only
// count pending loans.
type LoanLedger struct {
	LentPending     []core.Loan     `json:"lentPending"`
	LentSettled     []core.Loan     `json:"lentSettled"`
	BorrowedPending []core.Loan     `json:"borrowedPending"`
	BorrowedSettled []core.Loan     `json:"borrowedSettled"`
	TotalLoaned     decimal.Decimal `json:"totalLoaned"`
	TotalBorrowed   decimal.Decimal `json:"totalBorrowed"`
}

// PartitionLoans splits loans into the four disjoint ledger views, keeping
// input order within each view.
func PartitionLoans(loans []core.Loan) LoanLedger {
	l := LoanLedger{
		LentPending:     []core.Loan{},
		LentSettled:     []core.Loan{},
		BorrowedPending: []core.Loan{},
		BorrowedSettled: []core.Loan{},
		TotalLoaned:     decimal.Zero,
		TotalBorrowed:   decimal.Zero,
	}
	for _, loan := range loans {
		switch {
		case loan.Direction == core.Loaned && loan.Pending():
			l.LentPending = append(l.LentPending, loan)
			l.TotalLoaned = l.TotalLoaned.Add(loan.Amount)
		case loan.Direction == core.Loaned:
			l.LentSettled = append(l.LentSettled, loan)
		case loan.Direction == core.Borrowed && loan.Pending():
			l.BorrowedPending = append(l.BorrowedPending, loan)
			l.TotalBorrowed = l.TotalBorrowed.Add(loan.Amount)
		case loan.Direction == core.Borrowed:
			l.BorrowedSettled = append(l.BorrowedSettled, loan)
		}
	}
	return l
}

// SortByCreatedDesc orders loans newest first.
func SortByCreatedDesc(loans []core.Loan) {
	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].CreatedAt.After(loans[j].CreatedAt)
	})
}
