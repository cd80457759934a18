package model

import "errors"

var (
	ErrAuthorNotFound = errors.New("author not found")
	// ErrAuthorInUse means a book or a loan record still depends on the
	// author; deletion is blocked to protect history.
	ErrAuthorInUse = errors.New("author is referenced by books or loan records")
	// ErrNotCreator means the actor did not create this author record,
	// so they may not edit or remove it.
	ErrNotCreator = errors.New("only the creating user may modify this author")
)
