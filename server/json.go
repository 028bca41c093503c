package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/rs/zerolog/log"
)

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError writes an error response body
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

// writeServiceError maps domain sentinel errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidPassword):
		writeJSONError(w, "invalid_password", err.Error(), http.StatusBadRequest)
	case apperrors.Is(err, apperrors.ErrDuplicateAccount):
		writeJSONError(w, "duplicate_account", err.Error(), http.StatusBadRequest)
	case apperrors.Is(err, apperrors.ErrLoanAlreadyClosed):
		writeJSONError(w, "loan_already_closed", err.Error(), http.StatusBadRequest)
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		writeJSONError(w, "invalid_credentials", err.Error(), http.StatusUnauthorized)
	case apperrors.Is(err, apperrors.ErrInvalidToken), apperrors.Is(err, apperrors.ErrTokenExpired):
		writeJSONError(w, "invalid_token", err.Error(), http.StatusUnauthorized)
	case apperrors.Is(err, apperrors.ErrUserNotFound),
		apperrors.Is(err, apperrors.ErrBookNotFound),
		apperrors.Is(err, apperrors.ErrLoanNotFound),
		apperrors.Is(err, apperrors.ErrNoLoanRecords),
		apperrors.Is(err, apperrors.ErrNotFound):
		writeJSONError(w, "not_found", err.Error(), http.StatusNotFound)
	default:
		log.Err(err).Msg("unhandled service error")
		writeJSONError(w, "server_error", "internal server error", http.StatusInternalServerError)
	}
}
