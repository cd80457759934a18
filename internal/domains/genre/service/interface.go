package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/genre/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	List(ctx context.Context, filter model.GenreFilter) ([]model.Genre, int, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateGenreRequest) (*model.Genre, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
