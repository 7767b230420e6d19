package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/junalkadhav/library-management/internal/domain"
)

// BookFilter narrows a book listing. IDs and Search are mutually exclusive
// in practice; when both are set IDs wins.
type BookFilter struct {
	IDs    []string
	Search string
	Limit  int
	Offset int
}

// BookRepository defines persistence access for the book catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	// Delete removes the book and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns a filtered page of books plus the unpaginated total.
	List(ctx context.Context, filter BookFilter) ([]domain.Book, int, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a Postgres-backed implementation.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

const bookColumns = `id, title, isbn, publication_year, authors, genres, awards_won, created_at, updated_at`

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (title, isbn, publication_year, authors, genres, awards_won)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		book.Title,
		book.ISBN,
		book.PublicationYear,
		book.Authors,
		book.Genres,
		book.AwardsWon,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id=$1`

	var book domain.Book
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.ISBN,
		&book.PublicationYear,
		&book.Authors,
		&book.Genres,
		&book.AwardsWon,
		&book.CreatedAt,
		&book.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	const query = `
        UPDATE books
        SET title=$1, isbn=$2, publication_year=$3, authors=$4, genres=$5, awards_won=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		book.Title,
		book.ISBN,
		book.PublicationYear,
		book.Authors,
		book.Genres,
		book.AwardsWon,
		book.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM books WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *bookRepository) List(ctx context.Context, filter BookFilter) ([]domain.Book, int, error) {
	where, args := buildBookWhere(filter)

	countQuery := `SELECT COUNT(*) FROM books` + where
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := `SELECT ` + bookColumns + ` FROM books` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		listQuery += ` LIMIT ` + strconv.Itoa(filter.Limit) + ` OFFSET ` + strconv.Itoa(filter.Offset)
	}

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := make([]domain.Book, 0)
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.ISBN,
			&book.PublicationYear,
			&book.Authors,
			&book.Genres,
			&book.AwardsWon,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		books = append(books, book)
	}
	return books, total, rows.Err()
}

func buildBookWhere(filter BookFilter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		clauses = append(clauses, `id = ANY($`+strconv.Itoa(len(args))+`::uuid[])`)
	} else if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, `title ILIKE $`+strconv.Itoa(len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
