package fakebookrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/livrolivre/go-library-server/books"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
)

var _ books.Repo = (*FakeBookRepo)(nil)

type FakeBookRepo struct {
	books map[string]*books.Book
	lock  sync.RWMutex
}

func NewFakeBookRepo() *FakeBookRepo {
	return &FakeBookRepo{books: make(map[string]*books.Book)}
}

func (br *FakeBookRepo) Create(_ context.Context, book *books.Book) (*books.Book, error) {
	br.lock.Lock()
	defer br.lock.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	copied := *book
	br.books[book.ID] = &copied
	return book, nil
}

func (br *FakeBookRepo) GetByID(_ context.Context, id string) (*books.Book, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()

	book, ok := br.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (br *FakeBookRepo) Search(_ context.Context, filter books.SearchFilter) ([]*books.Book, int, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()

	var matched []*books.Book
	for _, book := range br.books {
		if !containsFold(book.Title, filter.Title) {
			continue
		}
		if !containsFold(book.Author, filter.Author) {
			continue
		}
		if !containsFold(book.Theme, filter.Theme) {
			continue
		}
		copied := *book
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].AverageRating != matched[j].AverageRating {
			return matched[i].AverageRating > matched[j].AverageRating
		}
		return matched[i].Title < matched[j].Title
	})

	total := len(matched)
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func containsFold(value, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}
