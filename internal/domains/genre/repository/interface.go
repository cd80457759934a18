package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/genre/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, genre *model.Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	GetByName(ctx context.Context, name string) (*model.Genre, error)
	List(ctx context.Context, filter model.GenreFilter) ([]model.Genre, int, error)
	Update(ctx context.Context, genre *model.Genre) error
	// Delete runs the referential guard and the delete in one
	// transaction; a referenced genre yields ErrGenreInUse.
	Delete(ctx context.Context, id uuid.UUID) error
}
