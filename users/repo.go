package users

import "context"

// ListFilter narrows and pages a user listing. Zero values mean "no filter".
// Page is zero-based: the first page is Page 0, and the row offset is
// Page * PerPage. Catalog search pages differently; see books.SearchFilter.
type ListFilter struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Page      int
	PerPage   int
}

type UserRepo interface {
	Create(ctx context.Context, user *User) (*User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailAndRole(ctx context.Context, email string, role RoleType) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int, error)
}
