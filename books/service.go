package books

import (
	"context"

	"github.com/pkg/errors"
)

// SearchResult is the paged outcome of a catalog search. An empty result is
// not an error: Message explains it to the end user.
type SearchResult struct {
	Message     string  `json:"message"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Results     []*Book `json:"results"`
}

type Service struct {
	repo Repo
}

func NewService(repo Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[NewService] books repo is required")
	}
	return &Service{repo: repo}, nil
}

// Search pages through the catalog, best rated first, title as tie-break.
func (s *Service) Search(ctx context.Context, filter SearchFilter) (*SearchResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	items, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Search] repo.Search")
	}

	if len(items) == 0 {
		return &SearchResult{
			Message:     "No books matched your search. Try other terms.",
			TotalPages:  0,
			CurrentPage: filter.Page,
			Results:     []*Book{},
		}, nil
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit

	return &SearchResult{
		Message:     "Books found.",
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
		Results:     items,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Book, error) {
	return s.repo.GetByID(ctx, id)
}
