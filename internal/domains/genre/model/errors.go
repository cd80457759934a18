package model

import "errors"

var (
	ErrGenreNotFound  = errors.New("genre not found")
	ErrGenreNameTaken = errors.New("genre name already exists")
	ErrGenreInUse     = errors.New("genre is referenced by existing records")
)
