package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan status values. A loan starts pending and transitions exactly once
// to returned; there are no other states.
const (
	StatusPending  = "pending"
	StatusReturned = "returned"
)

// Loan is a ledger row: created by borrow, closed by return, never deleted.
// The snapshot fields freeze the book's author/genre at borrow time so
// history stays meaningful after catalog edits or deletions.
type Loan struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	BookID     uuid.UUID  `json:"book_id" db:"book_id"`
	LoanedAt   time.Time  `json:"loaned_at" db:"loaned_at"`
	DueAt      time.Time  `json:"due_at" db:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" db:"returned_at"`
	Status     string     `json:"status" db:"status"`

	AuthorIDSnapshot   *uuid.UUID `json:"author_id_snapshot,omitempty" db:"author_id_snapshot"`
	AuthorNameSnapshot *string    `json:"author_name_snapshot,omitempty" db:"author_name_snapshot"`
	GenreIDSnapshot    *uuid.UUID `json:"genre_id_snapshot,omitempty" db:"genre_id_snapshot"`
	GenreNameSnapshot  *string    `json:"genre_name_snapshot,omitempty" db:"genre_name_snapshot"`

	FineAmount *decimal.Decimal `json:"fine_amount,omitempty" db:"fine_amount"`
}

// Pending reports whether the copy is still out.
func (l *Loan) Pending() bool {
	return l.Status == StatusPending
}

// OverdueDays returns the number of full days past the due date at the
// given instant. Zero when on time.
func (l *Loan) OverdueDays(at time.Time) int64 {
	if !at.After(l.DueAt) {
		return 0
	}
	return int64(at.Sub(l.DueAt).Hours() / 24)
}

// FineFor computes the fine accrued when returning at the given instant.
func (l *Loan) FineFor(at time.Time, dailyRate decimal.Decimal) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(l.OverdueDays(at)))
}

// BorrowRequest is the borrow payload.
type BorrowRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
	)
}

// LoanResponse is the outward shape of a loan.
type LoanResponse struct {
	ID         uuid.UUID  `json:"id"`
	BookID     uuid.UUID  `json:"book_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     string     `json:"status"`
	AuthorName *string    `json:"author_name,omitempty"`
	GenreName  *string    `json:"genre_name,omitempty"`
	FineAmount *string    `json:"fine_amount,omitempty"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		LoanedAt:   l.LoanedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		Status:     l.Status,
		AuthorName: l.AuthorNameSnapshot,
		GenreName:  l.GenreNameSnapshot,
	}
	if l.FineAmount != nil {
		s := l.FineAmount.StringFixed(2)
		resp.FineAmount = &s
	}
	return resp
}

// LoanFilter drives the user's loan listing.
type LoanFilter struct {
	Status string
	Limit  int
	Offset int
}
