package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/livrolivre/go-library-server/auth"
	"github.com/livrolivre/go-library-server/books"
	fakebookrepo "github.com/livrolivre/go-library-server/books/repofake"
	"github.com/livrolivre/go-library-server/export"
	"github.com/livrolivre/go-library-server/internal/config"
	"github.com/livrolivre/go-library-server/loans"
	fakeloanrepo "github.com/livrolivre/go-library-server/loans/repofake"
	fakemailer "github.com/livrolivre/go-library-server/mailer/mailerfake"
	"github.com/livrolivre/go-library-server/server"
	"github.com/livrolivre/go-library-server/token"
	fakeissuer "github.com/livrolivre/go-library-server/token/tokenfake"
	"github.com/livrolivre/go-library-server/users"
	fakeuserrepo "github.com/livrolivre/go-library-server/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "maria@example.com"
	testPassword = "ValidPass123!"
)

type serverFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	bookRepo *fakebookrepo.FakeBookRepo
	loanRepo *fakeloanrepo.FakeLoanRepo
	issuer   *fakeissuer.FakeIssuer
	mail     *fakemailer.FakeSender
	server   *server.Server
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	userRepo := fakeuserrepo.NewFakeUserRepo()
	bookRepo := fakebookrepo.NewFakeBookRepo()
	loanRepo := fakeloanrepo.NewFakeLoanRepo()
	issuer := fakeissuer.NewFakeIssuer()
	mail := fakemailer.NewFakeSender()

	authService, err := auth.NewService(userRepo, issuer, mail, auth.DefaultPasswordPolicy(),
		auth.WithAppURL("http://localhost:8080"), auth.WithMailSender("library@example.com"))
	require.NoError(t, err)

	usersService, err := users.NewService(userRepo, loanRepo, bookRepo)
	require.NoError(t, err)

	booksService, err := books.NewService(bookRepo)
	require.NoError(t, err)

	loansService, err := loans.NewService(loanRepo, bookRepo)
	require.NoError(t, err)

	exportService, err := export.NewService(userRepo)
	require.NoError(t, err)

	srv, err := server.New(config.New(), server.Services{
		Auth:   authService,
		Users:  usersService,
		Books:  booksService,
		Loans:  loansService,
		Export: exportService,
		Tokens: issuer,
	})
	require.NoError(t, err)

	return &serverFixture{
		userRepo: userRepo,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		issuer:   issuer,
		mail:     mail,
		server:   srv,
	}
}

func (f *serverFixture) seedUser(t *testing.T, email string, role users.RoleType) *users.User {
	t.Helper()

	hash, err := users.HashPassword(testPassword, 10)
	require.NoError(t, err)

	user, err := f.userRepo.Create(context.Background(), &users.User{
		FirstName:    "Maria",
		LastName:     "Silva",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	})
	require.NoError(t, err)
	return user
}

func (f *serverFixture) tokenFor(t *testing.T, user *users.User) string {
	t.Helper()

	signed, err := f.issuer.Sign(token.Claims{Subject: user.ID, Email: user.Email, Role: string(user.Role)}, time.Hour)
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, srv http.Handler, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestSignUpRoute(t *testing.T) {
	f := setupServer(t)

	rec := doJSON(t, f.server, http.MethodPost, "/auth/signup", "", map[string]any{
		"firstName": "Maria",
		"lastName":  "Silva",
		"email":     testEmail,
		"password":  testPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestSignUpValidation(t *testing.T) {
	f := setupServer(t)

	rec := doJSON(t, f.server, http.MethodPost, "/auth/signup", "", map[string]any{
		"firstName": "",
		"lastName":  "Silva",
		"email":     "not-an-email",
		"password":  testPassword,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string              `json:"error"`
		Fields []server.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "validation_failed", body.Error)
	require.Len(t, body.Fields, 2)
}

func TestSignUpWeakPassword(t *testing.T) {
	f := setupServer(t)

	rec := doJSON(t, f.server, http.MethodPost, "/auth/signup", "", map[string]any{
		"firstName": "Maria",
		"lastName":  "Silva",
		"email":     testEmail,
		"password":  "weak",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_password")
}

func TestSignInRoute(t *testing.T) {
	f := setupServer(t)
	f.seedUser(t, testEmail, users.RoleUser)

	rec := doJSON(t, f.server, http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    testEmail,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, f.server, http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    testEmail,
		"password": "WrongPass123!",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestProfileRoute(t *testing.T) {
	f := setupServer(t)
	user := f.seedUser(t, testEmail, users.RoleUser)

	rec := doJSON(t, f.server, http.MethodGet, "/auth/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, f.server, http.MethodGet, "/auth/profile", f.tokenFor(t, user), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile users.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Equal(t, user.ID, profile.ID)
	require.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRecoverPasswordRoute(t *testing.T) {
	f := setupServer(t)
	f.seedUser(t, testEmail, users.RoleUser)

	rec := doJSON(t, f.server, http.MethodPost, "/auth/recover-password", "", map[string]any{
		"email": "nobody@example.com",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, f.mail.Messages)

	rec = doJSON(t, f.server, http.MethodPost, "/auth/recover-password", "", map[string]any{
		"email": testEmail,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.mail.Messages, 1)
}

func TestChangePasswordRoute(t *testing.T) {
	f := setupServer(t)
	user := f.seedUser(t, testEmail, users.RoleUser)
	bearer := f.tokenFor(t, user)

	rec := doJSON(t, f.server, http.MethodPost, "/auth/change-password", bearer, map[string]any{
		"currentPassword": "WrongPass123!",
		"newPassword":     "NewSecret456!",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, f.server, http.MethodPost, "/auth/change-password", bearer, map[string]any{
		"currentPassword": testPassword,
		"newPassword":     "NewSecret456!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, f.server, http.MethodPost, "/auth/signin", "", map[string]any{
		"email":    testEmail,
		"password": "NewSecret456!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	f := setupServer(t)
	reader := f.seedUser(t, testEmail, users.RoleUser)
	admin := f.seedUser(t, "admin@example.com", users.RoleAdmin)

	rec := doJSON(t, f.server, http.MethodGet, "/users", f.tokenFor(t, reader), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.server, http.MethodGet, "/users", f.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result users.ListResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 2, result.Total)
}

func TestGetUserAdminOrSelf(t *testing.T) {
	f := setupServer(t)
	reader := f.seedUser(t, testEmail, users.RoleUser)
	other := f.seedUser(t, "other@example.com", users.RoleUser)
	admin := f.seedUser(t, "admin@example.com", users.RoleAdmin)

	rec := doJSON(t, f.server, http.MethodGet, "/users/"+other.ID, f.tokenFor(t, reader), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.server, http.MethodGet, "/users/"+reader.ID, f.tokenFor(t, reader), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, f.server, http.MethodGet, "/users/"+other.ID, f.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBooksRoutes(t *testing.T) {
	f := setupServer(t)
	user := f.seedUser(t, testEmail, users.RoleUser)
	bearer := f.tokenFor(t, user)

	book, err := f.bookRepo.Create(context.Background(), &books.Book{
		Title:  "Dom Casmurro",
		Author: "Machado de Assis",
		Theme:  "Romance",
	})
	require.NoError(t, err)

	rec := doJSON(t, f.server, http.MethodGet, "/books/search?title=Dom", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result books.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Results, 1)

	rec = doJSON(t, f.server, http.MethodGet, "/books/"+book.ID, bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, f.server, http.MethodGet, "/books/missing", bearer, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoanRoutes(t *testing.T) {
	f := setupServer(t)
	user := f.seedUser(t, testEmail, users.RoleUser)
	bearer := f.tokenFor(t, user)

	book, err := f.bookRepo.Create(context.Background(), &books.Book{Title: "Dom Casmurro", Author: "Machado de Assis"})
	require.NoError(t, err)

	rec := doJSON(t, f.server, http.MethodPost, "/loans", bearer, map[string]any{"bookId": book.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	var loan loans.Loan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loan))
	require.Equal(t, user.ID, loan.UserID)

	rec = doJSON(t, f.server, http.MethodPost, "/loans/"+loan.ID+"/return", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, f.server, http.MethodPost, "/loans/"+loan.ID+"/return", bearer, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "loan_already_closed")

	rec = doJSON(t, f.server, http.MethodGet, "/users/"+user.ID+"/loans", bearer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []*users.LoanRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	require.Equal(t, "Dom Casmurro", records[0].Book.Title)
}

func TestExportUsersCSVRoute(t *testing.T) {
	f := setupServer(t)
	reader := f.seedUser(t, testEmail, users.RoleUser)
	admin := f.seedUser(t, "admin@example.com", users.RoleAdmin)

	rec := doJSON(t, f.server, http.MethodGet, "/export/users.csv?ids="+reader.ID, f.tokenFor(t, reader), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, f.server, http.MethodGet, "/export/users.csv?ids="+reader.ID, f.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), testEmail)
}

func TestCorsPreflight(t *testing.T) {
	f := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/auth/signin", nil)
	req.Header.Set("Origin", "http://example.com")

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	// Default configuration allows any origin.
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
