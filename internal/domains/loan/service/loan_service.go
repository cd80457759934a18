package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/repository"
)

// loanService owns the lending policy: the loan period, the fine rate,
// and the clock. The transactional consistency of counter and ledger
// lives in the repository.
type loanService struct {
	repo      repository.RepositoryInterface
	period    time.Duration
	dailyFine decimal.Decimal
	now       func() time.Time
}

func NewLoanService(repo repository.RepositoryInterface, period time.Duration, dailyFine decimal.Decimal) ServiceInterface {
	return &loanService{
		repo:      repo,
		period:    period,
		dailyFine: dailyFine,
		now:       time.Now,
	}
}

func (s *loanService) Borrow(ctx context.Context, bookID, userID uuid.UUID) (*model.Loan, error) {
	if bookID == uuid.Nil {
		return nil, model.ErrBookNotFound
	}

	loanedAt := s.now()
	return s.repo.Borrow(ctx, bookID, userID, loanedAt, loanedAt.Add(s.period))
}

func (s *loanService) Return(ctx context.Context, loanID, userID uuid.UUID) (*model.Loan, error) {
	if loanID == uuid.Nil {
		return nil, model.ErrLoanNotFound
	}

	return s.repo.Return(ctx, loanID, userID, s.now(), s.dailyFine)
}

func (s *loanService) GetByID(ctx context.Context, loanID, userID uuid.UUID) (*model.Loan, error) {
	if loanID == uuid.Nil {
		return nil, model.ErrLoanNotFound
	}
	return s.repo.GetByID(ctx, loanID, userID)
}

func (s *loanService) ListByUser(ctx context.Context, userID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	switch filter.Status {
	case "", model.StatusPending, model.StatusReturned:
	default:
		return nil, 0, model.ErrInvalidStatus
	}

	return s.repo.ListByUser(ctx, userID, filter)
}
