// Package domain holds the typed identifiers shared by every library module.
//
// Identifiers are assigned by their owning repository from a monotonic
// counter starting at 1, so the zero value never names a record.
package domain

import (
	"strconv"
	"strings"

	dErrors "libraria/pkg/domain-errors"
)

type (
	BookID        int64
	MemberID      int64
	TransactionID int64
)

func (id BookID) String() string        { return strconv.FormatInt(int64(id), 10) }
func (id MemberID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id TransactionID) String() string { return strconv.FormatInt(int64(id), 10) }

func (id BookID) IsNil() bool        { return id <= 0 }
func (id MemberID) IsNil() bool      { return id <= 0 }
func (id TransactionID) IsNil() bool { return id <= 0 }

// ParseBookID parses a book identifier from a path or query parameter.
func ParseBookID(s string) (BookID, error) {
	v, err := parsePositive(s, "book ID")
	return BookID(v), err
}

// ParseMemberID parses a member identifier from a path or query parameter.
func ParseMemberID(s string) (MemberID, error) {
	v, err := parsePositive(s, "member ID")
	return MemberID(v), err
}

// maxIDLength bounds input before strconv sees it.
const maxIDLength = 19

func parsePositive(s, label string) (int64, error) {
	if s == "" || strings.TrimSpace(s) != s {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" required")
	}
	if len(s) > maxIDLength {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return v, nil
}
