package loans

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/livrolivre/go-library-server/internal/dbx"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
)

const loanColumns = "id, user_id, book_id, book_title, borrowed_at, returned_at"

type PostgresRepo struct {
	db dbx.DBTX
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(db dbx.DBTX) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, loan *Loan) (*Loan, error) {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}

	query :=
		`INSERT INTO loans (id, user_id, book_id, book_title)
		 VALUES ($1, $2, $3, $4)
		 RETURNING borrowed_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		loan.ID, loan.UserID, loan.BookID, loan.BookTitle).Scan(&loan.BorrowedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return loan, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan := &Loan{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&loan.ID, &loan.UserID, &loan.BookID, &loan.BookTitle, &loan.BorrowedAt, &loan.ReturnedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return loan, nil
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]*Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY borrowed_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []*Loan
	for rows.Next() {
		loan := &Loan{}
		err := rows.Scan(&loan.ID, &loan.UserID, &loan.BookID, &loan.BookTitle, &loan.BorrowedAt, &loan.ReturnedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return items, nil
}

func (r *PostgresRepo) MarkReturned(ctx context.Context, id string) (*Loan, error) {
	query :=
		`UPDATE loans SET returned_at = now()
		 WHERE id = $1 AND returned_at IS NULL
		 RETURNING ` + loanColumns

	loan := &Loan{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&loan.ID, &loan.UserID, &loan.BookID, &loan.BookTitle, &loan.BorrowedAt, &loan.ReturnedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// Either no such loan or it was already closed.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, apperrors.ErrLoanAlreadyClosed
			}
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return loan, nil
}
