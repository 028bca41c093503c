package users

import (
	"context"
	"time"

	"github.com/livrolivre/go-library-server/books"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/livrolivre/go-library-server/loans"
	"github.com/pkg/errors"
)

// LoanRecord is one loan enriched with its book for display. When the book
// has left the catalog a placeholder is used so history stays readable.
type LoanRecord struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	BookID     string      `json:"bookId"`
	BorrowedAt time.Time   `json:"borrowedAt"`
	ReturnedAt *time.Time  `json:"returnedAt"`
	Book       *books.Book `json:"book"`
}

// ListResult pages a user listing.
type ListResult struct {
	Items []*User `json:"items"`
	Total int     `json:"total"`
}

// UpdateParams carries a profile update. The password is only replaced when
// both OldPassword and NewPassword are set.
type UpdateParams struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword,omitempty"`
}

type Service struct {
	users UserRepo
	loans loans.Repo
	books books.Repo
}

func NewService(userRepo UserRepo, loanRepo loans.Repo, bookRepo books.Repo) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] users repo is required")
	}
	if loanRepo == nil {
		return nil, errors.New("[NewService] loans repo is required")
	}
	if bookRepo == nil {
		return nil, errors.New("[NewService] books repo is required")
	}
	return &Service{users: userRepo, loans: loanRepo, books: bookRepo}, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.List] users.List")
	}
	return &ListResult{Items: items, Total: total}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// Update rewrites the profile fields and, when requested, the password. The
// old password must verify before a new one is accepted.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = params.FirstName
	user.LastName = params.LastName
	user.Email = params.Email
	user.Phone = params.Phone

	if params.NewPassword != "" && params.OldPassword != "" {
		if !CheckPasswordHash(params.OldPassword, user.PasswordHash) {
			return nil, apperrors.ErrInvalidCredentials
		}
		hash, err := HashPassword(params.NewPassword, 10)
		if err != nil {
			return nil, errors.Wrap(err, "[Service.Update] HashPassword")
		}
		user.PasswordHash = hash
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, errors.Wrap(err, "[Service.Update] users.Save")
	}

	return s.users.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// LoanHistory returns the user's loans newest first, each joined with its
// book. An empty history is reported as ErrNoLoanRecords.
func (s *Service) LoanHistory(ctx context.Context, userID string) ([]*LoanRecord, error) {
	items, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.LoanHistory] loans.ListByUser")
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNoLoanRecords
	}

	records := make([]*LoanRecord, 0, len(items))
	for _, loan := range items {
		book, err := s.books.GetByID(ctx, loan.BookID)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrBookNotFound) {
				return nil, errors.Wrap(err, "[Service.LoanHistory] books.GetByID")
			}
			book = &books.Book{ID: loan.BookID, Title: "Unknown Book", Author: "Unknown Author"}
		}
		records = append(records, &LoanRecord{
			ID:         loan.ID,
			UserID:     loan.UserID,
			BookID:     loan.BookID,
			BorrowedAt: loan.BorrowedAt,
			ReturnedAt: loan.ReturnedAt,
			Book:       book,
		})
	}

	return records, nil
}
