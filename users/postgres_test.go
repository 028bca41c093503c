package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepo(db), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "Maria", "Silva", "maria@example.com", "+55 11 98765-4321", "hash", RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user, err := repo.Create(context.Background(), &User{
		FirstName:    "Maria",
		LastName:     "Silva",
		Email:        "maria@example.com",
		Phone:        "+55 11 98765-4321",
		PasswordHash: "hash",
		Role:         RoleUser,
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, now, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateDBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &User{Email: "maria@example.com", Role: RoleUser})
	require.ErrorContains(t, err, "db error")
}

func TestPostgresCreateDuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "users_email_idx"`,
	})

	_, err := repo.Create(context.Background(), &User{Email: "Maria@example.com", Role: RoleUser})
	require.ErrorIs(t, err, apperrors.ErrDuplicateAccount)
}

func TestPostgresSaveUnknownUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE users`).WillReturnError(sql.ErrNoRows)

	err := repo.Save(context.Background(), &User{ID: "missing"})
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "u-1"))

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), "missing"), apperrors.ErrUserNotFound)
}

func TestPostgresGetByEmailAndRole(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "password_hash", "role", "created_at", "updated_at"}).
		AddRow("u-1", "Maria", "Silva", "maria@example.com", "", "hash", "user", now, now)
	mock.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = lower\(\$1\) AND role = \$2`).
		WithArgs("Maria@example.com", RoleUser).
		WillReturnRows(rows)

	user, err := repo.GetByEmailAndRole(context.Background(), "Maria@example.com", RoleUser)
	require.NoError(t, err)
	require.Equal(t, "u-1", user.ID)
	require.Equal(t, RoleUser, user.Role)

	mock.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = lower\(\$1\) AND role = \$2`).
		WithArgs("maria@example.com", RoleAdmin).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByEmailAndRole(context.Background(), "maria@example.com", RoleAdmin)
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPostgresList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("maria@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "password_hash", "role", "created_at", "updated_at"}).
		AddRow("u-1", "Maria", "Silva", "maria@example.com", "", "hash", "user", now, now)
	mock.ExpectQuery(`SELECT .* FROM users WHERE lower\(email\) = lower\(\$1\) ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("maria@example.com", 10, 0).
		WillReturnRows(rows)

	items, total, err := repo.List(context.Background(), ListFilter{Email: "maria@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
