package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/publisher/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, publisher *model.Publisher) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error)
	GetByName(ctx context.Context, name string) (*model.Publisher, error)
	List(ctx context.Context, filter model.PublisherFilter) ([]model.Publisher, int, error)
	Update(ctx context.Context, publisher *model.Publisher) error
	// Delete runs the referential guard and the delete in one
	// transaction; a referenced publisher yields ErrPublisherInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}
