package models

import (
	"errors"
	"strings"

	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/validation"
)

// Kinds callers can match with errors.Is. Services wrap them with a code.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrDuplicateISBN     = errors.New("duplicate isbn")
	ErrInvalidAdjustment = errors.New("invalid availability adjustment")
)

// Book is one catalog title and its copy counts.
//
// Invariants:
//   - Title and Author are non-empty
//   - ISBN has 10 or 13 digits once separators are removed
//   - 0 <= Available <= Stock at all times
//   - ID is assigned by the catalog store and never changes
type Book struct {
	ID        id.BookID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	ISBN      string    `json:"isbn"`
	Year      int       `json:"year"`
	Stock     int       `json:"stock"`
	Available int       `json:"available"`
}

// NewBook validates fields and returns a book with every copy available.
// The ID is left zero for the store to assign.
func NewBook(title, author, isbn string, year, stock int) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	isbn = strings.TrimSpace(isbn)

	if !validation.IsNotEmpty(title) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "title must not be empty")
	}
	if !validation.IsNotEmpty(author) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "author must not be empty")
	}
	if !validation.IsValidISBN(isbn) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid ISBN format")
	}
	if stock < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "stock must not be negative")
	}
	return &Book{
		Title:     title,
		Author:    author,
		ISBN:      isbn,
		Year:      year,
		Stock:     stock,
		Available: stock,
	}, nil
}

// OnLoan is the number of copies currently held by members.
func (b *Book) OnLoan() int {
	return b.Stock - b.Available
}

// IsAvailable reports whether at least one copy can be lent.
func (b *Book) IsAvailable() bool {
	return b.Available > 0
}

// CanAdjust checks that Available+delta stays within [0, Stock].
// Use with ApplyAdjustment in Execute callbacks.
func (b *Book) CanAdjust(delta int) error {
	next := b.Available + delta
	if next < 0 || next > b.Stock {
		return dErrors.Wrap(ErrInvalidAdjustment, dErrors.CodeInvariantViolation, "invalid availability count")
	}
	return nil
}

// ApplyAdjustment moves Available by delta.
// Must only be called after CanAdjust returns nil.
func (b *Book) ApplyAdjustment(delta int) {
	b.Available += delta
}

// MatchesTitle reports a case-insensitive substring match on the title.
func (b *Book) MatchesTitle(substring string) bool {
	return strings.Contains(strings.ToLower(b.Title), strings.ToLower(substring))
}
