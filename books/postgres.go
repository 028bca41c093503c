package books

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/livrolivre/go-library-server/internal/dbx"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
)

const bookColumns = "id, title, author, theme, average_rating, cover_url"

type PostgresRepo struct {
	db dbx.DBTX
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(db dbx.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, book *Book) (*Book, error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}

	query :=
		`INSERT INTO books (id, title, author, theme, average_rating, cover_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		book.ID, book.Title, book.Author, book.Theme, book.AverageRating, book.CoverURL)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book := &Book{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&book.ID, &book.Title, &book.Author, &book.Theme, &book.AverageRating, &book.CoverURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepo) Search(ctx context.Context, filter SearchFilter) ([]*Book, int, error) {
	var conditions []string
	var args []any

	addCondition := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, len(args)))
	}

	addCondition("title", filter.Title)
	addCondition("author", filter.Author)
	addCondition("theme", filter.Theme)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM books`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM books%s ORDER BY average_rating DESC, title ASC LIMIT $%d OFFSET $%d`,
		bookColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*Book
	for rows.Next() {
		book := &Book{}
		err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.Theme, &book.AverageRating, &book.CoverURL)
		if err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
		items = append(items, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	return items, total, nil
}
