package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/loan/model"
)

// RepositoryInterface is the loan ledger's storage contract.
//
// Borrow and Return are each a single transactional unit: the loan
// mutation and the book's available-copy counter commit together or not
// at all.
type RepositoryInterface interface {
	// Borrow locks the book row, checks availability, inserts a pending
	// loan carrying the book's current author/genre snapshot, and
	// decrements available_copies.
	// Errors: model.ErrBookNotFound, model.ErrBookUnavailable.
	Borrow(ctx context.Context, bookID, userID uuid.UUID, loanedAt, dueAt time.Time) (*model.Loan, error)

	// Return closes the pending loan owned by userID: sets
	// status=returned and returned_at, records the overdue fine, and
	// increments the referenced book's available_copies.
	// Errors: model.ErrLoanNotFound (also when already returned).
	Return(ctx context.Context, loanID, userID uuid.UUID, returnedAt time.Time, dailyFine decimal.Decimal) (*model.Loan, error)

	// GetByID fetches a loan owned by userID regardless of status.
	GetByID(ctx context.Context, loanID, userID uuid.UUID) (*model.Loan, error)

	// ListByUser returns the user's loans, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int, error)
}
