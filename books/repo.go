package books

import "context"

// SearchFilter narrows and pages a catalog search. Zero values mean "no
// filter". Page is one-based to line up with the CurrentPage/TotalPages
// envelope the search endpoint returns; zero is normalized to page 1.
type SearchFilter struct {
	Title  string
	Author string
	Theme  string
	Page   int
	Limit  int
}

type Repo interface {
	Create(ctx context.Context, book *Book) (*Book, error)
	GetByID(ctx context.Context, id string) (*Book, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Book, int, error)
}
