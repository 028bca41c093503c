package users_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/livrolivre/go-library-server/books"
	fakebookrepo "github.com/livrolivre/go-library-server/books/repofake"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/livrolivre/go-library-server/loans"
	fakeloanrepo "github.com/livrolivre/go-library-server/loans/repofake"
	"github.com/livrolivre/go-library-server/users"
	fakeuserrepo "github.com/livrolivre/go-library-server/users/repofake"
	"github.com/stretchr/testify/require"
)

type usersFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	loanRepo *fakeloanrepo.FakeLoanRepo
	bookRepo *fakebookrepo.FakeBookRepo
	service  *users.Service
}

func setupUsersService(t *testing.T) *usersFixture {
	t.Helper()

	userRepo := fakeuserrepo.NewFakeUserRepo()
	loanRepo := fakeloanrepo.NewFakeLoanRepo()
	bookRepo := fakebookrepo.NewFakeBookRepo()

	service, err := users.NewService(userRepo, loanRepo, bookRepo)
	require.NoError(t, err)

	return &usersFixture{
		userRepo: userRepo,
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		service:  service,
	}
}

func seedUser(t *testing.T, f *usersFixture, email, password string, createdAt time.Time) *users.User {
	t.Helper()

	hash, err := users.HashPassword(password, 10)
	require.NoError(t, err)

	user, err := f.userRepo.Create(context.Background(), &users.User{
		FirstName:    "Maria",
		LastName:     "Silva",
		Email:        email,
		Phone:        "+55 11 98765-4321",
		PasswordHash: hash,
		Role:         users.RoleUser,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	require.NoError(t, err)
	return user
}

func TestListUsersWithFilterAndPaging(t *testing.T) {
	f := setupUsersService(t)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedUser(t, f, fmt.Sprintf("reader%d@example.com", i), "ValidPass123!", base.Add(time.Duration(i)*time.Minute))
	}

	result, err := f.service.List(context.Background(), users.ListFilter{Page: 0, PerPage: 3})
	require.NoError(t, err)
	require.Equal(t, 5, result.Total)
	require.Len(t, result.Items, 3)
	require.Equal(t, "reader4@example.com", result.Items[0].Email)

	// Page is zero-based: page 1 is the second page.
	result, err = f.service.List(context.Background(), users.ListFilter{Page: 1, PerPage: 3})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.Equal(t, "reader1@example.com", result.Items[0].Email)

	result, err = f.service.List(context.Background(), users.ListFilter{Email: "reader2@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "reader2@example.com", result.Items[0].Email)
}

func TestUpdateProfileFields(t *testing.T) {
	f := setupUsersService(t)
	user := seedUser(t, f, "maria@example.com", "ValidPass123!", time.Now())

	updated, err := f.service.Update(context.Background(), user.ID, users.UpdateParams{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "ana@example.com",
		Phone:     "+55 21 91234-5678",
	})
	require.NoError(t, err)
	require.Equal(t, "Ana", updated.FirstName)
	require.Equal(t, "ana@example.com", updated.Email)

	// The password was untouched.
	stored, err := f.userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("ValidPass123!", stored.PasswordHash))
}

func TestUpdatePasswordRequiresOldPassword(t *testing.T) {
	f := setupUsersService(t)
	user := seedUser(t, f, "maria@example.com", "ValidPass123!", time.Now())

	_, err := f.service.Update(context.Background(), user.ID, users.UpdateParams{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		OldPassword: "WrongPass123!",
		NewPassword: "NewSecret456!",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	require.Zero(t, f.userRepo.SaveCalls)

	updated, err := f.service.Update(context.Background(), user.ID, users.UpdateParams{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		OldPassword: "ValidPass123!",
		NewPassword: "NewSecret456!",
	})
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("NewSecret456!", updated.PasswordHash))
}

func TestUpdateUnknownUser(t *testing.T) {
	f := setupUsersService(t)

	_, err := f.service.Update(context.Background(), "missing", users.UpdateParams{})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	f := setupUsersService(t)
	user := seedUser(t, f, "maria@example.com", "ValidPass123!", time.Now())

	require.NoError(t, f.service.Delete(context.Background(), user.ID))

	_, err := f.service.Get(context.Background(), user.ID)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLoanHistoryJoinsBooks(t *testing.T) {
	f := setupUsersService(t)
	user := seedUser(t, f, "maria@example.com", "ValidPass123!", time.Now())

	book, err := f.bookRepo.Create(context.Background(), &books.Book{Title: "Dom Casmurro", Author: "Machado de Assis"})
	require.NoError(t, err)

	older, err := f.loanRepo.Create(context.Background(), &loans.Loan{
		UserID:     user.ID,
		BookID:     book.ID,
		BookTitle:  book.Title,
		BorrowedAt: time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)

	newer, err := f.loanRepo.Create(context.Background(), &loans.Loan{
		UserID:     user.ID,
		BookID:     "vanished-book",
		BookTitle:  "Missing",
		BorrowedAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	records, err := f.service.LoanHistory(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, newer.ID, records[0].ID)
	require.Equal(t, older.ID, records[1].ID)

	require.Equal(t, "Unknown Book", records[0].Book.Title)
	require.Equal(t, "Dom Casmurro", records[1].Book.Title)
}

func TestLoanHistoryEmpty(t *testing.T) {
	f := setupUsersService(t)
	user := seedUser(t, f, "maria@example.com", "ValidPass123!", time.Now())

	_, err := f.service.LoanHistory(context.Background(), user.ID)
	require.ErrorIs(t, err, apperrors.ErrNoLoanRecords)
}
