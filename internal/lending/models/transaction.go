package models

import (
	"errors"
	"time"

	id "libraria/pkg/domain"
)

// BorrowLimit is the most books a member may hold at once.
const BorrowLimit = 3

var (
	ErrBookUnavailable     = errors.New("book unavailable")
	ErrBorrowLimitReached  = errors.New("borrow limit reached")
	ErrNotBorrowedByMember = errors.New("book not borrowed by member")
)

type Type string

const (
	TypeBorrow Type = "borrow"
	TypeReturn Type = "return"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// StatusFor returns the status a new transaction of type t is recorded with.
func StatusFor(t Type) Status {
	if t == TypeReturn {
		return StatusCompleted
	}
	return StatusActive
}

// Transaction is one entry of the lending log. Entries are immutable once
// appended; members and books are referenced by ID only.
type Transaction struct {
	ID        id.TransactionID `json:"id"`
	MemberID  id.MemberID      `json:"member_id"`
	BookID    id.BookID        `json:"book_id"`
	Type      Type             `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Status    Status           `json:"status"`
}

// Stats is a derived snapshot of the library.
type Stats struct {
	TotalBooks        int `json:"total_books"`
	AvailableBooks    int `json:"available_books"`
	BorrowedBooks     int `json:"borrowed_books"`
	TotalMembers      int `json:"total_members"`
	ActiveMembers     int `json:"active_members"`
	TotalTransactions int `json:"total_transactions"`
}
