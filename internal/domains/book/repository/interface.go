package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*model.Book, error)
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error)
	Update(ctx context.Context, book *model.Book) error
	// UpdateCopies changes total_copies and recomputes available_copies
	// against outstanding loans in one transaction.
	UpdateCopies(ctx context.Context, id uuid.UUID, totalCopies int) error
	// Delete runs the loan-history guard and the delete in one
	// transaction; a book with ledger rows yields ErrBookHasLoans.
	Delete(ctx context.Context, id uuid.UUID) error

	AuthorExists(ctx context.Context, id uuid.UUID) (bool, error)
	GenreExists(ctx context.Context, id uuid.UUID) (bool, error)
	PublisherExists(ctx context.Context, id uuid.UUID) (bool, error)
}
