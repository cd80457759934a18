package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

type Publisher struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Website   *string   `json:"website,omitempty" db:"website"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePublisherRequest struct {
	Name    string  `json:"name"`
	Website *string `json:"website"`
}

func (r CreatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Website, is.URL),
	)
}

type UpdatePublisherRequest struct {
	Name    *string `json:"name"`
	Website *string `json:"website"`
}

func (r UpdatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Website, is.URL),
	)
}

type PublisherResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Publisher) ToResponse() PublisherResponse {
	return PublisherResponse{
		ID:        p.ID,
		Name:      p.Name,
		Website:   p.Website,
		CreatedAt: p.CreatedAt,
	}
}

type PublisherFilter struct {
	Search string
	Limit  int
	Offset int
}
