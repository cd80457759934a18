package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

type bookService struct {
	repo repository.RepositoryInterface
}

func NewBookService(repo repository.RepositoryInterface) ServiceInterface {
	return &bookService{repo: repo}
}

func (s *bookService) Create(ctx context.Context, req model.CreateBookRequest, actorID uuid.UUID) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	isbn := normalizeISBN(req.ISBN)
	if _, err := s.repo.GetByISBN(ctx, isbn); err == nil {
		return nil, model.ErrISBNTaken
	} else if !errors.Is(err, model.ErrBookNotFound) {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.AuthorID, req.GenreID, req.PublisherID); err != nil {
		return nil, err
	}

	now := time.Now()
	book := &model.Book{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(req.Title),
		ISBN:            isbn,
		PublishedYear:   req.PublishedYear,
		Summary:         req.Summary,
		CoverURL:        req.CoverURL,
		Tags:            normalizeTags(req.Tags),
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
		AuthorID:        req.AuthorID,
		GenreID:         req.GenreID,
		PublisherID:     req.PublisherID,
		CreatedBy:       &actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
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

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ISBN != nil {
		isbn := normalizeISBN(*req.ISBN)
		if isbn != book.ISBN {
			if _, err := s.repo.GetByISBN(ctx, isbn); err == nil {
				return nil, model.ErrISBNTaken
			} else if !errors.Is(err, model.ErrBookNotFound) {
				return nil, err
			}
		}
		book.ISBN = isbn
	}

	if err := s.checkReferences(ctx, req.AuthorID, req.GenreID, req.PublisherID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.PublishedYear != nil {
		book.PublishedYear = req.PublishedYear
	}
	if req.Summary != nil {
		book.Summary = req.Summary
	}
	if req.CoverURL != nil {
		book.CoverURL = req.CoverURL
	}
	if req.Tags != nil {
		book.Tags = normalizeTags(req.Tags)
	}
	if req.AuthorID != nil {
		book.AuthorID = req.AuthorID
	}
	if req.GenreID != nil {
		book.GenreID = req.GenreID
	}
	if req.PublisherID != nil {
		book.PublisherID = req.PublisherID
	}
	book.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	// Copy counts move in their own transaction so the available
	// counter stays consistent with outstanding loans.
	if req.TotalCopies != nil && *req.TotalCopies != book.TotalCopies {
		if err := s.repo.UpdateCopies(ctx, id, *req.TotalCopies); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, id)
	}

	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if book.CreatedBy != nil && *book.CreatedBy != actorID {
		return model.ErrNotCreator
	}

	// The loan-history guard runs inside the repository's delete
	// transaction.
	return s.repo.Delete(ctx, id)
}

func (s *bookService) checkReferences(ctx context.Context, authorID, genreID, publisherID *uuid.UUID) error {
	if authorID != nil {
		if ok, err := s.repo.AuthorExists(ctx, *authorID); err != nil {
			return err
		} else if !ok {
			return model.ErrAuthorNotFound
		}
	}
	if genreID != nil {
		if ok, err := s.repo.GenreExists(ctx, *genreID); err != nil {
			return err
		} else if !ok {
			return model.ErrGenreNotFound
		}
	}
	if publisherID != nil {
		if ok, err := s.repo.PublisherExists(ctx, *publisherID); err != nil {
			return err
		} else if !ok {
			return model.ErrPublisherNotFound
		}
	}
	return nil
}

func normalizeISBN(isbn string) string {
	return strings.ToUpper(strings.TrimSpace(isbn))
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
