package server

import (
	"net/http"

	"github.com/livrolivre/go-library-server/books"
)

func (s *Server) SearchBooksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		filter := books.SearchFilter{
			Title:  query.Get("title"),
			Author: query.Get("author"),
			Theme:  query.Get("theme"),
			Page:   intQueryParam(query.Get("page"), 1),
			Limit:  intQueryParam(query.Get("limit"), 10),
		}

		result, err := s.services.Books.Search(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) GetBookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		book, err := s.services.Books.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, book)
	}
}
