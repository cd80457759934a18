package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, author *model.Author) error {
	query := `
		INSERT INTO authors (id, name, bio, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		author.ID, author.Name, author.Bio, author.CreatedBy,
		author.CreatedAt, author.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	query := `
		SELECT id, name, bio, created_by, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	var a model.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Bio, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, int, error) {
	where := "TRUE"
	args := []interface{}{}
	if filter.Search != "" {
		where = "name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM authors WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, bio, created_by, created_at, updated_at
		FROM authors
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.Author, 0, filter.Limit)
	for rows.Next() {
		var a model.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, author *model.Author) error {
	query := `
		UPDATE authors
		SET name = $1, bio = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, author.Name, author.Bio, author.UpdatedAt, author.ID)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}
	return nil
}

// Delete removes an author after re-running the referential guard
// inside the same transaction, so a borrow committing in between cannot
// leave a dangling snapshot id. Check order: current linkage, historical
// snapshots, then loans reaching the author through their current book.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var inUse bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE author_id = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check author books: %w", err)
		}
		if inUse {
			return model.ErrAuthorInUse
		}

		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM loans WHERE author_id_snapshot = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check author loan snapshots: %w", err)
		}
		if inUse {
			return model.ErrAuthorInUse
		}

		// Reclassified books: a loan whose current book points at this
		// author still depends on it even if the snapshot names someone
		// else.
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1
				FROM loans l
				JOIN books b ON l.book_id = b.id
				WHERE b.author_id = $1
			)
		`, id).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check author loans via books: %w", err)
		}
		if inUse {
			return model.ErrAuthorInUse
		}

		result, err := tx.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete author: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrAuthorNotFound
		}
		return nil
	})
}
