package loans

import "time"

// Loan is one borrowing record. ReturnedAt is nil while the book is still
// out.
type Loan struct {
	ID         string     `json:"id,omitempty"`
	UserID     string     `json:"userId,omitempty"`
	BookID     string     `json:"bookId,omitempty"`
	BookTitle  string     `json:"bookTitle,omitempty"`
	BorrowedAt time.Time  `json:"borrowedAt,omitempty"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

func (l *Loan) Returned() bool {
	return l.ReturnedAt != nil
}
