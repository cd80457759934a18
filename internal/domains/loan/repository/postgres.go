package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/loan/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const loanColumns = `
	id, user_id, book_id, loaned_at, due_at, returned_at, status,
	author_id_snapshot, author_name_snapshot,
	genre_id_snapshot, genre_name_snapshot, fine_amount
`

func scanLoan(row pgx.Row) (*model.Loan, error) {
	var l model.Loan
	err := row.Scan(
		&l.ID, &l.UserID, &l.BookID, &l.LoanedAt, &l.DueAt, &l.ReturnedAt, &l.Status,
		&l.AuthorIDSnapshot, &l.AuthorNameSnapshot,
		&l.GenreIDSnapshot, &l.GenreNameSnapshot, &l.FineAmount,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Borrow implements RepositoryInterface.Borrow as one transaction.
// The book row is locked FOR UPDATE so two concurrent borrowers on the
// same title serialize on the availability check.
func (r *postgresRepository) Borrow(ctx context.Context, bookID, userID uuid.UUID, loanedAt, dueAt time.Time) (*model.Loan, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Loan, error) {
		lockQuery := `
			SELECT b.available_copies, b.author_id, a.name, b.genre_id, g.name
			FROM books b
			LEFT JOIN authors a ON b.author_id = a.id
			LEFT JOIN genres g ON b.genre_id = g.id
			WHERE b.id = $1
			FOR UPDATE OF b
		`

		var (
			available  int
			authorID   *uuid.UUID
			authorName *string
			genreID    *uuid.UUID
			genreName  *string
		)
		err := tx.QueryRow(ctx, lockQuery, bookID).Scan(&available, &authorID, &authorName, &genreID, &genreName)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock book: %w", err)
		}

		if available <= 0 {
			return nil, model.ErrBookUnavailable
		}

		insertQuery := `
			INSERT INTO loans (
				id, user_id, book_id, loaned_at, due_at, status,
				author_id_snapshot, author_name_snapshot,
				genre_id_snapshot, genre_name_snapshot
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING ` + loanColumns

		loan, err := scanLoan(tx.QueryRow(ctx, insertQuery,
			uuid.New(), userID, bookID, loanedAt, dueAt, model.StatusPending,
			authorID, authorName, genreID, genreName,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to insert loan: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE books
			SET available_copies = available_copies - 1, updated_at = NOW()
			WHERE id = $1
		`, bookID)
		if err != nil {
			return nil, fmt.Errorf("failed to decrement available copies: %w", err)
		}

		return loan, nil
	})
}

// Return implements RepositoryInterface.Return as one transaction.
// The counter increment targets the book the loan currently references,
// not the snapshot: the physical copy goes back to the current
// catalog entry.
func (r *postgresRepository) Return(ctx context.Context, loanID, userID uuid.UUID, returnedAt time.Time, dailyFine decimal.Decimal) (*model.Loan, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Loan, error) {
		// A returned loan falls out of the predicate exactly like a
		// missing one - the ambiguity is intentional.
		lockQuery := `
			SELECT ` + loanColumns + `
			FROM loans
			WHERE id = $1 AND user_id = $2 AND status = $3
			FOR UPDATE
		`

		loan, err := scanLoan(tx.QueryRow(ctx, lockQuery, loanID, userID, model.StatusPending))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock loan: %w", err)
		}

		fine := loan.FineFor(returnedAt, dailyFine)

		updated, err := scanLoan(tx.QueryRow(ctx, `
			UPDATE loans
			SET status = $1, returned_at = $2, fine_amount = $3
			WHERE id = $4
			RETURNING `+loanColumns,
			model.StatusReturned, returnedAt, fine, loanID,
		))
		if err != nil {
			return nil, fmt.Errorf("failed to close loan: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE books
			SET available_copies = available_copies + 1, updated_at = NOW()
			WHERE id = $1
		`, loan.BookID)
		if err != nil {
			return nil, fmt.Errorf("failed to increment available copies: %w", err)
		}

		return updated, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, loanID, userID uuid.UUID) (*model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 AND user_id = $2`

	loan, err := scanLoan(r.pool.QueryRow(ctx, query, loanID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrLoanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter model.LoanFilter) ([]model.Loan, int, error) {
	where := "user_id = $1"
	args := []interface{}{userID}
	if filter.Status != "" {
		where += " AND status = $2"
		args = append(args, filter.Status)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM loans WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count loans: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM loans
		WHERE %s
		ORDER BY loaned_at DESC
		LIMIT $%d OFFSET $%d
	`, loanColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := make([]model.Loan, 0, filter.Limit)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return loans, total, nil
}
