package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/publisher/model"
	"library-backend/internal/domains/publisher/repository"
)

type publisherService struct {
	repo repository.RepositoryInterface
}

func NewPublisherService(repo repository.RepositoryInterface) ServiceInterface {
	return &publisherService{repo: repo}
}

func (s *publisherService) Create(ctx context.Context, req model.CreatePublisherRequest) (*model.Publisher, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, model.ErrPublisherNameTaken
	} else if !errors.Is(err, model.ErrPublisherNotFound) {
		return nil, err
	}

	now := time.Now()
	publisher := &model.Publisher{
		ID:        uuid.New(),
		Name:      name,
		Website:   req.Website,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (s *publisherService) GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error) {
	if id == uuid.Nil {
		return nil, model.ErrPublisherNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *publisherService) List(ctx context.Context, filter model.PublisherFilter) ([]model.Publisher, int, error) {
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

func (s *publisherService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePublisherRequest) (*model.Publisher, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	publisher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, publisher.Name) {
			if _, err := s.repo.GetByName(ctx, name); err == nil {
				return nil, model.ErrPublisherNameTaken
			} else if !errors.Is(err, model.ErrPublisherNotFound) {
				return nil, err
			}
		}
		publisher.Name = name
	}
	if req.Website != nil {
		publisher.Website = req.Website
	}
	publisher.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (s *publisherService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// The referential guard runs inside the repository's delete
	// transaction.
	return s.repo.Delete(ctx, id)
}
