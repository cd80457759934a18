package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, author *model.Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error)
	Update(ctx context.Context, author *model.Author) error
	// Delete runs the referential guard and the delete in one
	// transaction; a referenced author yields ErrAuthorInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}
