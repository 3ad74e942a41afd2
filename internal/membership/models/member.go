package models

import (
	"errors"
	"slices"
	"strings"
	"time"

	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/validation"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateEmail  = errors.New("duplicate email")
	ErrAlreadyBorrowed = errors.New("book already borrowed by member")
	ErrNotBorrowed     = errors.New("book not in member's borrowed list")
)

// Member is a registered library patron.
//
// Invariants:
//   - Name is non-empty, Email and Phone pass their format checks
//   - BorrowedBooks holds no duplicates and keeps borrow order
//   - Email is unique across the directory (enforced by the store)
type Member struct {
	ID            id.MemberID `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	RegisteredAt  time.Time   `json:"registered_at"`
	BorrowedBooks []id.BookID `json:"borrowed_books"`
}

// NewMember validates contact details and returns a member with no loans.
func NewMember(name, email, phone, address string, registeredAt time.Time) (*Member, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if !validation.IsNotEmpty(name) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "name must not be empty")
	}
	if !validation.IsValidEmail(email) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid email format")
	}
	if !validation.IsValidPhone(phone) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid phone number format")
	}
	if !validation.IsValidDate(registeredAt) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "registration time required")
	}
	return &Member{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Address:       strings.TrimSpace(address),
		RegisteredAt:  registeredAt,
		BorrowedBooks: []id.BookID{},
	}, nil
}

func (m *Member) HasBorrowed(bookID id.BookID) bool {
	return slices.Contains(m.BorrowedBooks, bookID)
}

func (m *Member) BorrowedCount() int {
	return len(m.BorrowedBooks)
}

func (m *Member) CanAddBorrowed(bookID id.BookID) error {
	if m.HasBorrowed(bookID) {
		return dErrors.Wrap(ErrAlreadyBorrowed, dErrors.CodeConflict, "member already borrowed this book")
	}
	return nil
}

func (m *Member) ApplyAddBorrowed(bookID id.BookID) {
	m.BorrowedBooks = append(m.BorrowedBooks, bookID)
}

func (m *Member) CanRemoveBorrowed(bookID id.BookID) error {
	if !m.HasBorrowed(bookID) {
		return dErrors.Wrap(ErrNotBorrowed, dErrors.CodeConflict, "book is not in the member's borrowed list")
	}
	return nil
}

// ApplyRemoveBorrowed drops bookID, keeping the order of the rest.
func (m *Member) ApplyRemoveBorrowed(bookID id.BookID) {
	if i := slices.Index(m.BorrowedBooks, bookID); i >= 0 {
		m.BorrowedBooks = slices.Delete(m.BorrowedBooks, i, i+1)
	}
}

// Clone returns a deep copy so callers never share the borrowed slice.
func (m *Member) Clone() *Member {
	c := *m
	c.BorrowedBooks = slices.Clone(m.BorrowedBooks)
	if c.BorrowedBooks == nil {
		c.BorrowedBooks = []id.BookID{}
	}
	return &c
}
