package loans

import "context"

type Repo interface {
	Create(ctx context.Context, loan *Loan) (*Loan, error)
	GetByID(ctx context.Context, id string) (*Loan, error)
	ListByUser(ctx context.Context, userID string) ([]*Loan, error)
	MarkReturned(ctx context.Context, id string) (*Loan, error)
}
