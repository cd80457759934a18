package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/domains/genre/repository"
	"library-backend/internal/shared/utils"
)

type genreService struct {
	repo repository.RepositoryInterface
}

func NewGenreService(repo repository.RepositoryInterface) ServiceInterface {
	return &genreService{repo: repo}
}

func (s *genreService) Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, model.ErrGenreNameTaken
	} else if !errors.Is(err, model.ErrGenreNotFound) {
		return nil, err
	}

	now := time.Now()
	genre := &model.Genre{
		ID:          uuid.New(),
		Name:        name,
		Slug:        utils.GenerateSlug(name),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	if id == uuid.Nil {
		return nil, model.ErrGenreNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) List(ctx context.Context, filter model.GenreFilter) ([]model.Genre, int, error) {
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

func (s *genreService) Update(ctx context.Context, id uuid.UUID, req model.UpdateGenreRequest) (*model.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, genre.Name) {
			if _, err := s.repo.GetByName(ctx, name); err == nil {
				return nil, model.ErrGenreNameTaken
			} else if !errors.Is(err, model.ErrGenreNotFound) {
				return nil, err
			}
		}
		genre.Name = name
		genre.Slug = utils.GenerateSlug(name)
	}
	if req.Description != nil {
		genre.Description = req.Description
	}
	genre.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// The referential guard runs inside the repository's delete
	// transaction.
	return s.repo.Delete(ctx, id)
}
