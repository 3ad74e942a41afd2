package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
)

var registered = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestNewMember(t *testing.T) {
	t.Run("valid member starts with no loans", func(t *testing.T) {
		m, err := NewMember("Siti Aminah", "siti.aminah@email.com", "082345678901", "Jl. Merdeka No. 1", registered)
		require.NoError(t, err)
		assert.Empty(t, m.BorrowedBooks)
		assert.NotNil(t, m.BorrowedBooks)
		assert.Equal(t, registered, m.RegisteredAt)
	})

	tests := []struct {
		name              string
		memberName, email string
		phone             string
		registeredAt      time.Time
	}{
		{"empty name", "  ", "a@b.co", "081234567890", registered},
		{"email with space", "Galih", "Galih Pajriansyah@email.com", "081234567890", registered},
		{"email without tld", "Galih", "galih@email", "081234567890", registered},
		{"short phone", "Galih", "galih@email.com", "12345", registered},
		{"zero registration time", "Galih", "galih@email.com", "081234567890", time.Time{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMember(tc.memberName, tc.email, tc.phone, "", tc.registeredAt)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestBorrowedBooks(t *testing.T) {
	m, err := NewMember("Ahmad Rizki", "ahmad.rizki@email.com", "(0834) 5678-9012", "", registered)
	require.NoError(t, err)

	for _, b := range []id.BookID{1, 2, 3} {
		require.NoError(t, m.CanAddBorrowed(b))
		m.ApplyAddBorrowed(b)
	}
	assert.Equal(t, 3, m.BorrowedCount())

	err = m.CanAddBorrowed(2)
	assert.True(t, errors.Is(err, ErrAlreadyBorrowed))

	require.NoError(t, m.CanRemoveBorrowed(2))
	m.ApplyRemoveBorrowed(2)
	assert.Equal(t, []id.BookID{1, 3}, m.BorrowedBooks)

	err = m.CanRemoveBorrowed(2)
	assert.True(t, errors.Is(err, ErrNotBorrowed))
}

func TestClone(t *testing.T) {
	m, err := NewMember("Ahmad Rizki", "ahmad.rizki@email.com", "083456789012", "", registered)
	require.NoError(t, err)
	m.ApplyAddBorrowed(1)

	c := m.Clone()
	c.BorrowedBooks[0] = 99
	assert.Equal(t, id.BookID(1), m.BorrowedBooks[0])
}
