package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/genre/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, genre *model.Genre) error {
	query := `
		INSERT INTO genres (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		genre.ID, genre.Name, genre.Slug, genre.Description, genre.CreatedAt, genre.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert genre: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM genres
		WHERE id = $1
	`

	var g model.Genre
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Genre, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM genres
		WHERE LOWER(name) = LOWER($1)
	`

	var g model.Genre
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedAt, &g.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get genre by name: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.GenreFilter) ([]model.Genre, int, error) {
	where := "TRUE"
	args := []interface{}{}
	if filter.Search != "" {
		where = "name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM genres WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count genres: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, slug, description, created_at, updated_at
		FROM genres
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	genres := make([]model.Genre, 0, filter.Limit)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return genres, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, genre *model.Genre) error {
	query := `
		UPDATE genres
		SET name = $1, slug = $2, description = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.pool.Exec(ctx, query, genre.Name, genre.Slug, genre.Description, genre.UpdatedAt, genre.ID)
	if err != nil {
		return fmt.Errorf("failed to update genre: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrGenreNotFound
	}
	return nil
}

// Delete removes a genre after re-running the referential guard inside
// the same transaction, so a borrow committing in between cannot leave
// a dangling snapshot id. Check order: current linkage, historical
// snapshots, then loans reaching the genre through their current book.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var inUse bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE genre_id = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check genre books: %w", err)
		}
		if inUse {
			return model.ErrGenreInUse
		}

		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM loans WHERE genre_id_snapshot = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check genre loan snapshots: %w", err)
		}
		if inUse {
			return model.ErrGenreInUse
		}

		// Reclassified books: a loan whose current book carries this
		// genre still depends on it even if the snapshot differs.
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1
				FROM loans l
				JOIN books b ON l.book_id = b.id
				WHERE b.genre_id = $1
			)
		`, id).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check genre loans via books: %w", err)
		}
		if inUse {
			return model.ErrGenreInUse
		}

		result, err := tx.Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete genre: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrGenreNotFound
		}
		return nil
	})
}
