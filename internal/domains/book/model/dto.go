package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var isbnPattern = regexp.MustCompile(`^[0-9Xx-]{10,17}$`)

type CreateBookRequest struct {
	Title         string     `json:"title"`
	ISBN          string     `json:"isbn"`
	PublishedYear *int       `json:"published_year"`
	Summary       *string    `json:"summary"`
	CoverURL      *string    `json:"cover_url"`
	Tags          []string   `json:"tags"`
	TotalCopies   int        `json:"total_copies"`
	AuthorID      *uuid.UUID `json:"author_id"`
	GenreID       *uuid.UUID `json:"genre_id"`
	PublisherID   *uuid.UUID `json:"publisher_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.ISBN, validation.Required, validation.Match(isbnPattern)),
		validation.Field(&r.PublishedYear, validation.Min(0), validation.Max(time.Now().Year()+1)),
		validation.Field(&r.TotalCopies, validation.Min(0)),
		validation.Field(&r.Tags, validation.Each(validation.Length(1, 50))),
	)
}

type UpdateBookRequest struct {
	Title         *string    `json:"title"`
	ISBN          *string    `json:"isbn"`
	PublishedYear *int       `json:"published_year"`
	Summary       *string    `json:"summary"`
	CoverURL      *string    `json:"cover_url"`
	Tags          []string   `json:"tags"`
	TotalCopies   *int       `json:"total_copies"`
	AuthorID      *uuid.UUID `json:"author_id"`
	GenreID       *uuid.UUID `json:"genre_id"`
	PublisherID   *uuid.UUID `json:"publisher_id"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.ISBN, validation.NilOrNotEmpty, validation.Match(isbnPattern)),
		validation.Field(&r.PublishedYear, validation.Min(0), validation.Max(time.Now().Year()+1)),
		validation.Field(&r.TotalCopies, validation.Min(0)),
		validation.Field(&r.Tags, validation.Each(validation.Length(1, 50))),
	)
}
