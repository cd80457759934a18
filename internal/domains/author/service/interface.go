package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateAuthorRequest, actorID uuid.UUID) (*model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error)
	// Update is creator-gated: only the user who created the author
	// record may edit it.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest, actorID uuid.UUID) (*model.Author, error)
	// Delete is creator-gated and guarded against current, snapshot and
	// transitive references.
	Delete(ctx context.Context, id, actorID uuid.UUID) error
}
