package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/publisher/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreatePublisherRequest) (*model.Publisher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error)
	List(ctx context.Context, filter model.PublisherFilter) ([]model.Publisher, int, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdatePublisherRequest) (*model.Publisher, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
