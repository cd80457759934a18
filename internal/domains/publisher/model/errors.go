package model

import "errors"

var (
	ErrPublisherNotFound  = errors.New("publisher not found")
	ErrPublisherNameTaken = errors.New("publisher name already exists")
	ErrPublisherInUse     = errors.New("publisher is referenced by existing books")
)
