package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
)

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest, actorID uuid.UUID) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	author := &model.Author{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Bio:       req.Bio,
		CreatedBy: &actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req model.UpdateAuthorRequest, actorID uuid.UUID) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(author, actorID) {
		return nil, model.ErrNotCreator
	}

	if req.Name != nil {
		author.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		author.Bio = req.Bio
	}
	author.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	author, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canModify(author, actorID) {
		return model.ErrNotCreator
	}

	// The referential guard runs inside the repository's delete
	// transaction.

	return s.repo.Delete(ctx, id)
}

// canModify is the ownership policy: a record without a recorded creator
// is open to everyone, otherwise only the creator may touch it.
func canModify(author *model.Author, actorID uuid.UUID) bool {
	return author.CreatedBy == nil || *author.CreatedBy == actorID
}
