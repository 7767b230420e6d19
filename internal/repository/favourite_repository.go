package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FavouriteRepository owns the per-user set of referenced book ids. The
// uniqueness invariant lives in the store: Add is an atomic set-add, not a
// read-then-write, so concurrent requests for the same user cannot produce
// duplicates or lost updates.
type FavouriteRepository interface {
	// Add inserts the reference and reports whether it was newly added.
	// A false return means the book was already a favourite.
	Add(ctx context.Context, userID, bookID string) (bool, error)
	// Remove deletes the reference and reports whether it existed.
	Remove(ctx context.Context, userID, bookID string) (bool, error)
	// ListBookIDs returns every book id the user has favourited.
	ListBookIDs(ctx context.Context, userID string) ([]string, error)
	// RemoveForAllUsers drops the book id from every user's list, returning
	// the number of entries removed. Zero removals is not an error.
	RemoveForAllUsers(ctx context.Context, bookID string) (int64, error)
}

type favouriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavouriteRepository returns a Postgres-backed implementation.
func NewFavouriteRepository(pool *pgxpool.Pool) FavouriteRepository {
	return &favouriteRepository{pool: pool}
}

func (r *favouriteRepository) Add(ctx context.Context, userID, bookID string) (bool, error) {
	const query = `
        INSERT INTO favourites (user_id, book_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, book_id) DO NOTHING`

	cmd, err := r.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *favouriteRepository) Remove(ctx context.Context, userID, bookID string) (bool, error) {
	const query = `DELETE FROM favourites WHERE user_id=$1 AND book_id=$2`

	cmd, err := r.pool.Exec(ctx, query, userID, bookID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *favouriteRepository) ListBookIDs(ctx context.Context, userID string) ([]string, error) {
	const query = `
        SELECT book_id FROM favourites
        WHERE user_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *favouriteRepository) RemoveForAllUsers(ctx context.Context, bookID string) (int64, error) {
	const query = `DELETE FROM favourites WHERE book_id=$1`

	cmd, err := r.pool.Exec(ctx, query, bookID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
