package server

import (
	"net/http"
	"strconv"

	"github.com/livrolivre/go-library-server/users"
)

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := users.ListFilter{
			Email:     query.Get("email"),
			FirstName: query.Get("firstName"),
			LastName:  query.Get("lastName"),
			Phone:     query.Get("phone"),
			Page:      intQueryParam(query.Get("page"), 0),
			PerPage:   intQueryParam(query.Get("perPage"), 10),
		}

		result, err := s.services.Users.List(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.services.Users.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params users.UpdateParams
		if err := readJSON(r, &params); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		if errs := CollectFieldErrors(
			NonEmpty("firstName", params.FirstName),
			NonEmpty("lastName", params.LastName),
			NonEmpty("email", params.Email),
			EmailShape("email", params.Email),
		); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		user, err := s.services.Users.Update(r.Context(), r.PathValue("id"), params)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.services.Users.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	}
}

func (s *Server) UserLoansHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := s.services.Users.LoanHistory(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func intQueryParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
