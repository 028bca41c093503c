package fakeuserrepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/livrolivre/go-library-server/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory UserRepo for tests. It counts mutating calls
// so tests can assert that failure paths never touch the store.
type FakeUserRepo struct {
	users map[string]*users.User
	lock  sync.RWMutex

	CreateCalls int
	SaveCalls   int
	DeleteCalls int

	// CreateErr, when set, is returned by Create to simulate store failures
	// such as the unique-index violation behind the duplicate-check race.
	CreateErr error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

func (ur *FakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.CreateCalls++
	if ur.CreateErr != nil {
		return nil, ur.CreateErr
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	copied := *user
	ur.users[user.ID] = &copied
	return user, nil
}

func (ur *FakeUserRepo) Save(_ context.Context, user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.SaveCalls++
	if _, ok := ur.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	copied := *user
	ur.users[user.ID] = &copied
	return nil
}

func (ur *FakeUserRepo) Delete(_ context.Context, id string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	ur.DeleteCalls++
	if _, ok := ur.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(ur.users, id)
	return nil
}

func (ur *FakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) GetByEmail(_ context.Context, email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	for _, user := range ur.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (ur *FakeUserRepo) GetByEmailAndRole(_ context.Context, email string, role users.RoleType) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	for _, user := range ur.users {
		if strings.EqualFold(user.Email, email) && user.Role == role {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (ur *FakeUserRepo) GetByIDs(_ context.Context, ids []string) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	var found []*users.User
	for _, id := range ids {
		if user, ok := ur.users[id]; ok {
			copied := *user
			found = append(found, &copied)
		}
	}
	sortNewestFirst(found)
	return found, nil
}

func (ur *FakeUserRepo) List(_ context.Context, filter users.ListFilter) ([]*users.User, int, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	var matched []*users.User
	for _, user := range ur.users {
		if filter.Email != "" && !strings.EqualFold(user.Email, filter.Email) {
			continue
		}
		if filter.FirstName != "" && user.FirstName != filter.FirstName {
			continue
		}
		if filter.LastName != "" && user.LastName != filter.LastName {
			continue
		}
		if filter.Phone != "" && user.Phone != filter.Phone {
			continue
		}
		copied := *user
		matched = append(matched, &copied)
	}
	sortNewestFirst(matched)

	total := len(matched)
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	offset := filter.Page * perPage
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + perPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func sortNewestFirst(items []*users.User) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
