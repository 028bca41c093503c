package server

import "net/http"

type createLoanRequest struct {
	BookID string `json:"bookId"`
}

// CreateLoanHandler borrows a book on behalf of the authenticated user.
func (s *Server) CreateLoanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeJSONError(w, "unauthorized", "No verified identity", http.StatusUnauthorized)
			return
		}

		var req createLoanRequest
		if err := readJSON(r, &req); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse request body", http.StatusBadRequest)
			return
		}

		if errs := CollectFieldErrors(NonEmpty("bookId", req.BookID)); len(errs) > 0 {
			writeValidationErrors(w, errs)
			return
		}

		loan, err := s.services.Loans.Borrow(r.Context(), claims.Subject, req.BookID)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, loan)
	}
}

func (s *Server) ReturnLoanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loan, err := s.services.Loans.Return(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loan)
	}
}
