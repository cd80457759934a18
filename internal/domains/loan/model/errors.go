package model

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")
	// ErrBookUnavailable means no copies are left to borrow.
	ErrBookUnavailable = errors.New("no copies of this book are available")
	// ErrLoanNotFound covers both an unknown loan id and a loan that is
	// not pending for this user (already returned, or someone else's).
	// The two cases are deliberately indistinguishable.
	ErrLoanNotFound  = errors.New("no pending loan found")
	ErrInvalidStatus = errors.New("invalid loan status filter")
)
