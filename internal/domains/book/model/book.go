package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	ISBN            string     `json:"isbn" db:"isbn"`
	PublishedYear   *int       `json:"published_year,omitempty" db:"published_year"`
	Summary         *string    `json:"summary,omitempty" db:"summary"`
	CoverURL        *string    `json:"cover_url,omitempty" db:"cover_url"`
	Tags            []string   `json:"tags" db:"tags"`
	TotalCopies     int        `json:"total_copies" db:"total_copies"`
	AvailableCopies int        `json:"available_copies" db:"available_copies"`
	AuthorID        *uuid.UUID `json:"author_id,omitempty" db:"author_id"`
	GenreID         *uuid.UUID `json:"genre_id,omitempty" db:"genre_id"`
	PublisherID     *uuid.UUID `json:"publisher_id,omitempty" db:"publisher_id"`
	CreatedBy       *uuid.UUID `json:"created_by,omitempty" db:"created_by"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// Available reports whether at least one copy can still be borrowed.
func (b *Book) Available() bool {
	return b.AvailableCopies > 0
}

type BookResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	ISBN            string     `json:"isbn"`
	PublishedYear   *int       `json:"published_year,omitempty"`
	Summary         *string    `json:"summary,omitempty"`
	CoverURL        *string    `json:"cover_url,omitempty"`
	Tags            []string   `json:"tags"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	AuthorID        *uuid.UUID `json:"author_id,omitempty"`
	GenreID         *uuid.UUID `json:"genre_id,omitempty"`
	PublisherID     *uuid.UUID `json:"publisher_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (b *Book) ToResponse() *BookResponse {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		PublishedYear:   b.PublishedYear,
		Summary:         b.Summary,
		CoverURL:        b.CoverURL,
		Tags:            tags,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		AuthorID:        b.AuthorID,
		GenreID:         b.GenreID,
		PublisherID:     b.PublisherID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

type BookFilter struct {
	Search      string
	AuthorID    *uuid.UUID
	GenreID     *uuid.UUID
	PublisherID *uuid.UUID
	Tag         string
	Available   bool
	Limit       int
	Offset      int
}
