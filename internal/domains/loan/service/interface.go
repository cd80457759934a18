package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
)

// ServiceInterface is the loan ledger's business contract.
type ServiceInterface interface {
	// Borrow checks out one copy of a book for the user.
	Borrow(ctx context.Context, bookID, userID uuid.UUID) (*model.Loan, error)
	// Return hands the copy back and closes the loan.
	Return(ctx context.Context, loanID, userID uuid.UUID) (*model.Loan, error)
	GetByID(ctx context.Context, loanID, userID uuid.UUID) (*model.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int, error)
}
