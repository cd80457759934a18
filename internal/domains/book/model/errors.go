package model

import "errors"

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrISBNTaken         = errors.New("isbn already exists")
	ErrBookHasLoans      = errors.New("book has loan history")
	ErrNotCreator        = errors.New("only the creator may modify this book")
	ErrAuthorNotFound    = errors.New("author not found")
	ErrGenreNotFound     = errors.New("genre not found")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrCopiesBelowLoans  = errors.New("total copies cannot drop below outstanding loans")
)
