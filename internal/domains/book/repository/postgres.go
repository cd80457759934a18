package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-backend/internal/domains/book/model"
	"library-backend/pkg/database"
)

const bookColumns = `
	id, title, isbn, published_year, summary, cover_url, tags,
	total_copies, available_copies, author_id, genre_id, publisher_id,
	created_by, created_at, updated_at
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.ISBN, &b.PublishedYear, &b.Summary, &b.CoverURL,
		pq.Array(&b.Tags),
		&b.TotalCopies, &b.AvailableCopies,
		&b.AuthorID, &b.GenreID, &b.PublisherID,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, isbn, published_year, summary, cover_url, tags,
			total_copies, available_copies, author_id, genre_id, publisher_id,
			created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID, book.Title, book.ISBN, book.PublishedYear, book.Summary, book.CoverURL,
		pq.Array(book.Tags),
		book.TotalCopies, book.AvailableCopies,
		book.AuthorID, book.GenreID, book.PublisherID,
		book.CreatedBy, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, isbn))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}
	return book, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, int, error) {
	where := []string{"TRUE"}
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR isbn ILIKE $%d)", len(args), len(args)))
	}
	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		where = append(where, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.GenreID != nil {
		args = append(args, *filter.GenreID)
		where = append(where, fmt.Sprintf("genre_id = $%d", len(args)))
	}
	if filter.PublisherID != nil {
		args = append(args, *filter.PublisherID)
		where = append(where, fmt.Sprintf("publisher_id = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where = append(where, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if filter.Available {
		where = append(where, "available_copies > 0")
	}

	clause := ""
	for i, w := range where {
		if i > 0 {
			clause += " AND "
		}
		clause += w
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM books WHERE "+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM books
		WHERE %s
		ORDER BY title ASC
		LIMIT $%d OFFSET $%d
	`, bookColumns, clause, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0, filter.Limit)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET title = $1, isbn = $2, published_year = $3, summary = $4,
		    cover_url = $5, tags = $6, author_id = $7, genre_id = $8,
		    publisher_id = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := r.pool.Exec(ctx, query,
		book.Title, book.ISBN, book.PublishedYear, book.Summary,
		book.CoverURL, pq.Array(book.Tags), book.AuthorID, book.GenreID,
		book.PublisherID, book.UpdatedAt, book.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateCopies(ctx context.Context, id uuid.UUID, totalCopies int) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var current int
		err := tx.QueryRow(ctx,
			`SELECT total_copies FROM books WHERE id = $1 FOR UPDATE`, id,
		).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock book: %w", err)
		}

		var pending int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM loans WHERE book_id = $1 AND status = 'pending'`, id,
		).Scan(&pending)
		if err != nil {
			return fmt.Errorf("failed to count pending loans: %w", err)
		}

		if totalCopies < pending {
			return model.ErrCopiesBelowLoans
		}

		_, err = tx.Exec(ctx, `
			UPDATE books
			SET total_copies = $1, available_copies = $2, updated_at = NOW()
			WHERE id = $3
		`, totalCopies, totalCopies-pending, id)
		if err != nil {
			return fmt.Errorf("failed to update book copies: %w", err)
		}
		return nil
	})
}

// Delete removes a book after re-checking the loan ledger inside the
// same transaction, so a borrow committing in between cannot orphan a
// ledger row. The ledger is append-only; a book with any history,
// pending or returned, is never deletable.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var hasLoans bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM loans WHERE book_id = $1)`, id,
		).Scan(&hasLoans)
		if err != nil {
			return fmt.Errorf("failed to check book loans: %w", err)
		}
		if hasLoans {
			return model.ErrBookHasLoans
		}

		result, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}
		return nil
	})
}

func (r *postgresRepository) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id)
}

func (r *postgresRepository) GenreExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM genres WHERE id = $1)`, id)
}

func (r *postgresRepository) PublisherExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM publishers WHERE id = $1)`, id)
}

func (r *postgresRepository) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check reference: %w", err)
	}
	return exists, nil
}
