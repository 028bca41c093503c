package server

import (
	"net/http"

	"github.com/livrolivre/go-library-server/users"
)

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type signInRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	KeepLoggedIn bool   `json:"keepLoggedIn"`
}

type recoverPasswordRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// SignUpHandler registers a new reader account and returns a signed-in
// token pair.
func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := readJSON(r, &req); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		if errs := CollectFieldErrors(
			NonEmpty("firstName", req.FirstName),
			NonEmpty("lastName", req.LastName),
			NonEmpty("email", req.Email),
			EmailShape("email", req.Email),
			NonEmpty("password", req.Password),
		); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		pair, err := s.services.Auth.SignUp(r.Context(), req.FirstName, req.LastName, req.Email, req.Phone, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, pair)
	}
}

func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := readJSON(r, &req); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		if errs := CollectFieldErrors(
			NonEmpty("email", req.Email),
			EmailShape("email", req.Email),
			NonEmpty("password", req.Password),
		); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		role := users.ParseRole(req.Role)

		pair, err := s.services.Auth.SignIn(r.Context(), req.Email, req.Password, role, req.KeepLoggedIn)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, pair)
	}
}

// ProfileHandler resolves the authenticated user's account. The body is JSON
// null when the subject no longer exists.
func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeJSONError(w, "unauthorized", "No verified identity", http.StatusUnauthorized)
			return
		}

		user, err := s.services.Auth.Profile(r.Context(), claims)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) RecoverPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recoverPasswordRequest
		if err := readJSON(r, &req); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		if errs := CollectFieldErrors(
			NonEmpty("email", req.Email),
			EmailShape("email", req.Email),
		); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		if err := s.services.Auth.RecoverPassword(r.Context(), req.Email); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Recovery email sent"})
	}
}

func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeJSONError(w, "unauthorized", "No verified identity", http.StatusUnauthorized)
			return
		}

		var req changePasswordRequest
		if err := readJSON(r, &req); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		if errs := CollectFieldErrors(
			NonEmpty("currentPassword", req.CurrentPassword),
			NonEmpty("newPassword", req.NewPassword),
		); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		if err := s.services.Auth.ChangePassword(r.Context(), claims.Subject, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed"})
	}
}
