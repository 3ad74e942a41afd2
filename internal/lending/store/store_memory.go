// Package store holds the append-only transaction log.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"libraria/internal/lending/models"
	id "libraria/pkg/domain"
	"libraria/pkg/platform/sentinel"
	"libraria/pkg/validation"
)

// InMemory is the transaction log. Entries are never updated or removed.
type InMemory struct {
	mu      sync.RWMutex
	nextID  id.TransactionID
	entries []models.Transaction
}

func New() *InMemory {
	return &InMemory{}
}

// Append records a new transaction with the next ID. A zero timestamp is
// rejected with sentinel.ErrInvalidState.
func (s *InMemory) Append(_ context.Context, memberID id.MemberID, bookID id.BookID, txType models.Type, status models.Status, at time.Time) (models.Transaction, error) {
	if !validation.IsValidDate(at) {
		return models.Transaction{}, sentinel.ErrInvalidState
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	tx := models.Transaction{
		ID:        s.nextID,
		MemberID:  memberID,
		BookID:    bookID,
		Type:      txType,
		Timestamp: at,
		Status:    status,
	}
	s.entries = append(s.entries, tx)
	return tx, nil
}

// List returns every transaction in append order.
func (s *InMemory) List(_ context.Context) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

func (s *InMemory) ListByMember(_ context.Context, memberID id.MemberID) []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Transaction{}
	for _, tx := range s.entries {
		if tx.MemberID == memberID {
			out = append(out, tx)
		}
	}
	return out
}

func (s *InMemory) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
