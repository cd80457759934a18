package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/publisher/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, publisher *model.Publisher) error {
	query := `
		INSERT INTO publishers (id, name, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		publisher.ID, publisher.Name, publisher.Website,
		publisher.CreatedAt, publisher.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert publisher: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error) {
	query := `
		SELECT id, name, website, created_at, updated_at
		FROM publishers
		WHERE id = $1
	`

	var p model.Publisher
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Website, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPublisherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*model.Publisher, error) {
	query := `
		SELECT id, name, website, created_at, updated_at
		FROM publishers
		WHERE LOWER(name) = LOWER($1)
	`

	var p model.Publisher
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&p.ID, &p.Name, &p.Website, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPublisherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher by name: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.PublisherFilter) ([]model.Publisher, int, error) {
	where := "TRUE"
	args := []interface{}{}
	if filter.Search != "" {
		where = "name ILIKE $1"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM publishers WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count publishers: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, website, created_at, updated_at
		FROM publishers
		WHERE %s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list publishers: %w", err)
	}
	defer rows.Close()

	publishers := make([]model.Publisher, 0, filter.Limit)
	for rows.Next() {
		var p model.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.Website, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return publishers, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, publisher *model.Publisher) error {
	query := `
		UPDATE publishers
		SET name = $1, website = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query,
		publisher.Name, publisher.Website, publisher.UpdatedAt, publisher.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update publisher: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrPublisherNotFound
	}
	return nil
}

// Delete removes a publisher after re-checking the book linkage inside
// the same transaction. Publishers are never snapshotted on loans, so
// current books are the only guard.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		var inUse bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM books WHERE publisher_id = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check publisher books: %w", err)
		}
		if inUse {
			return model.ErrPublisherInUse
		}

		result, err := tx.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete publisher: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrPublisherNotFound
		}
		return nil
	})
}
