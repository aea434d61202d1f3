package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensewise/internal/core"
)

func TestPartitionLoans(t *testing.T) {
	loans := []core.Loan{
		{ID: "l1", Direction: core.Loaned, Status: core.LoanPending, Amount: dec("500")},
		{ID: "l2", Direction: core.Loaned, Status: core.LoanPaid, Amount: dec("100")},
		{ID: "b1", Direction: core.Borrowed, Status: core.LoanPending, Amount: dec("250")},
		{ID: "b2", Direction: core.Borrowed, Status: core.LoanPaid, Amount: dec("75")},
		{ID: "l3", Direction: core.Loaned, Status: core.LoanPending, Amount: dec("20")},
	}
	got := PartitionLoans(loans)

	assert.Len(t, got.LentPending, 2)
	assert.Len(t, got.LentSettled, 1)
	assert.Len(t, got.BorrowedPending, 1)
	assert.Len(t, got.BorrowedSettled, 1)
	assert.Equal(t, "l1", got.LentPending[0].ID)
	assert.Equal(t, "l3", got.LentPending[1].ID)
	assert.True(t, got.TotalLoaned.Equal(dec("520")))
	assert.True(t, got.TotalBorrowed.Equal(dec("250")))
}

func TestSettlementMovesLoanBetweenViews(t *testing.T) {
	loan := core.Loan{ID: "l1", Direction: core.Loaned, Status: core.LoanPending, Amount: dec("500")}
	before := PartitionLoans([]core.Loan{loan})
	require.Len(t, before.LentPending, 1)
	assert.True(t, before.TotalLoaned.Equal(dec("500")))

	paid, err := loan.Settle(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	after := PartitionLoans([]core.Loan{paid})

	assert.Empty(t, after.LentPending)
	require.Len(t, after.LentSettled, 1)
	assert.NotNil(t, after.LentSettled[0].PaidAt)
	assert.True(t, after.TotalLoaned.IsZero())
}

func TestSortByCreatedDesc(t *testing.T) {
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	loans := []core.Loan{{ID: "old", CreatedAt: t0}, {ID: "new", CreatedAt: t0.Add(time.Hour)}}
	SortByCreatedDesc(loans)
	assert.Equal(t, "new", loans[0].ID)
}
