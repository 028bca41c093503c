// Package export renders library records as CSV for download.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/livrolivre/go-library-server/users"
	"github.com/pkg/errors"
)

var userHeader = []string{"ID", "First Name", "Last Name", "Email", "Phone", "Created At", "Updated At"}

// Options selects which users are exported. An empty UserIDs list yields a
// header-only file.
type Options struct {
	UserIDs []string
}

type Service struct {
	users users.UserRepo
}

func NewService(userRepo users.UserRepo) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] users repo is required")
	}
	return &Service{users: userRepo}, nil
}

// GenerateUsersCSV writes the selected users as CSV, one row per user, with
// a fixed header row. Timestamps use RFC 3339.
func (s *Service) GenerateUsersCSV(ctx context.Context, opts Options) ([]byte, error) {
	found, err := s.users.GetByIDs(ctx, opts.UserIDs)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.GenerateUsersCSV] users.GetByIDs")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(userHeader); err != nil {
		return nil, errors.Wrap(err, "[Service.GenerateUsersCSV] write header")
	}
	for _, user := range found {
		row := []string{
			user.ID,
			user.FirstName,
			user.LastName,
			user.Email,
			user.Phone,
			user.CreatedAt.Format(time.RFC3339),
			user.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, errors.Wrap(err, "[Service.GenerateUsersCSV] write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "[Service.GenerateUsersCSV] flush")
	}

	return buf.Bytes(), nil
}
