package store

import (
	"context"
	"iter"
	"sync"

	"libraria/internal/catalog/models"
	id "libraria/pkg/domain"
	"libraria/pkg/platform/sentinel"
)

// InMemory is the book catalog repository. It owns the ID counter, so every
// instance numbers its books independently from 1.
//
// Books are never deleted, so order only grows; iterators rely on that.
type InMemory struct {
	mu     sync.RWMutex
	nextID id.BookID
	books  map[id.BookID]*models.Book
	byISBN map[string]id.BookID
	order  []id.BookID
}

func New() *InMemory {
	return &InMemory{
		books:  make(map[id.BookID]*models.Book),
		byISBN: make(map[string]id.BookID),
	}
}

// CreateIfISBNAvailable assigns the next ID and stores book, or returns
// sentinel.ErrAlreadyUsed leaving the catalog untouched.
func (s *InMemory) CreateIfISBNAvailable(_ context.Context, book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byISBN[book.ISBN]; taken {
		return sentinel.ErrAlreadyUsed
	}
	s.nextID++
	book.ID = s.nextID

	stored := *book
	s.books[stored.ID] = &stored
	s.byISBN[stored.ISBN] = stored.ID
	s.order = append(s.order, stored.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, bookID id.BookID) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.books[bookID]; ok {
		found := *b
		return &found, nil
	}
	return nil, sentinel.ErrNotFound
}

// Execute runs validate then mutate on the stored book under the write lock.
// If validate fails nothing changes. Returns a copy of the book after mutate.
func (s *InMemory) Execute(_ context.Context, bookID id.BookID, validate func(*models.Book) error, mutate func(*models.Book)) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.books[bookID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(b); err != nil {
		return nil, err
	}
	mutate(b)
	updated := *b
	return &updated, nil
}

// All yields copies of every book in insertion order. The sequence is lazy:
// each book is read when it is reached, and ranging again starts over.
func (s *InMemory) All(_ context.Context) iter.Seq[models.Book] {
	return func(yield func(models.Book) bool) {
		s.mu.RLock()
		n := len(s.order)
		s.mu.RUnlock()

		for i := 0; i < n; i++ {
			s.mu.RLock()
			b := *s.books[s.order[i]]
			s.mu.RUnlock()
			if !yield(b) {
				return
			}
		}
	}
}

func (s *InMemory) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
