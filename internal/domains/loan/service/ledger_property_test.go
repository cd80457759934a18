package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"library-backend/internal/domains/loan/model"
)

// Property: across any sequence of borrow and return operations,
// available_copies stays in [0, total] and always equals
// total - pending loans.
func TestLedgerCounterInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ledger := newFakeLedger()
		total := rapid.IntRange(0, 5).Draw(t, "total")
		bookID := ledger.addBook(total)
		svc := NewLoanService(ledger, 7*24*time.Hour, decimal.RequireFromString("0.50"))
		userID := uuid.New()

		var pending []uuid.UUID

		ops := rapid.IntRange(1, 50).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			borrow := rapid.Bool().Draw(t, "borrow")

			if borrow {
				loan, err := svc.Borrow(context.Background(), bookID, userID)
				if len(pending) == total {
					require.ErrorIs(t, err, model.ErrBookUnavailable)
				} else {
					require.NoError(t, err)
					pending = append(pending, loan.ID)
				}
			} else if len(pending) > 0 {
				idx := rapid.IntRange(0, len(pending)-1).Draw(t, "idx")
				_, err := svc.Return(context.Background(), pending[idx], userID)
				require.NoError(t, err)
				pending = append(pending[:idx], pending[idx+1:]...)
			}

			available := ledger.availableCopies(bookID)
			require.GreaterOrEqual(t, available, 0)
			require.LessOrEqual(t, available, total)
			require.Equal(t, total-len(pending), available)
		}
	})
}
