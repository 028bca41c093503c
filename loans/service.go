package loans

import (
	"context"

	"github.com/livrolivre/go-library-server/books"
	"github.com/pkg/errors"
)

type Service struct {
	loans Repo
	books books.Repo
}

func NewService(loanRepo Repo, bookRepo books.Repo) (*Service, error) {
	if loanRepo == nil {
		return nil, errors.New("[NewService] loans repo is required")
	}
	if bookRepo == nil {
		return nil, errors.New("[NewService] books repo is required")
	}
	return &Service{loans: loanRepo, books: bookRepo}, nil
}

// ListByUser returns the user's loans, most recent first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Loan, error) {
	items, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.ListByUser] loans.ListByUser")
	}
	return items, nil
}

// Borrow opens a loan for an existing book. The book title is denormalized
// onto the loan so history survives catalog edits.
func (s *Service) Borrow(ctx context.Context, userID, bookID string) (*Loan, error) {
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	loan, err := s.loans.Create(ctx, &Loan{
		UserID:    userID,
		BookID:    book.ID,
		BookTitle: book.Title,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Borrow] loans.Create")
	}
	return loan, nil
}

// Return closes an open loan. Returning twice is an error.
func (s *Service) Return(ctx context.Context, loanID string) (*Loan, error) {
	return s.loans.MarkReturned(ctx, loanID)
}
