package fakeloanrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/livrolivre/go-library-server/loans"
)

var _ loans.Repo = (*FakeLoanRepo)(nil)

type FakeLoanRepo struct {
	loans map[string]*loans.Loan
	lock  sync.RWMutex
}

func NewFakeLoanRepo() *FakeLoanRepo {
	return &FakeLoanRepo{loans: make(map[string]*loans.Loan)}
}

func (lr *FakeLoanRepo) Create(_ context.Context, loan *loans.Loan) (*loans.Loan, error) {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	if loan.BorrowedAt.IsZero() {
		loan.BorrowedAt = time.Now()
	}
	copied := *loan
	lr.loans[loan.ID] = &copied
	return loan, nil
}

func (lr *FakeLoanRepo) GetByID(_ context.Context, id string) (*loans.Loan, error) {
	lr.lock.RLock()
	defer lr.lock.RUnlock()

	loan, ok := lr.loans[id]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	copied := *loan
	return &copied, nil
}

func (lr *FakeLoanRepo) ListByUser(_ context.Context, userID string) ([]*loans.Loan, error) {
	lr.lock.RLock()
	defer lr.lock.RUnlock()

	var matched []*loans.Loan
	for _, loan := range lr.loans {
		if loan.UserID != userID {
			continue
		}
		copied := *loan
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].BorrowedAt.After(matched[j].BorrowedAt)
	})
	return matched, nil
}

func (lr *FakeLoanRepo) MarkReturned(_ context.Context, id string) (*loans.Loan, error) {
	lr.lock.Lock()
	defer lr.lock.Unlock()

	loan, ok := lr.loans[id]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	if loan.ReturnedAt != nil {
		return nil, apperrors.ErrLoanAlreadyClosed
	}
	now := time.Now()
	loan.ReturnedAt = &now
	copied := *loan
	return &copied, nil
}
