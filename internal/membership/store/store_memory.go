package store

import (
	"context"
	"iter"
	"sync"

	"libraria/internal/membership/models"
	id "libraria/pkg/domain"
	"libraria/pkg/platform/sentinel"
)

// InMemory is the member directory repository. Emails are indexed as given;
// uniqueness is an exact string match.
type InMemory struct {
	mu      sync.RWMutex
	nextID  id.MemberID
	members map[id.MemberID]*models.Member
	byEmail map[string]id.MemberID
	order   []id.MemberID
}

func New() *InMemory {
	return &InMemory{
		members: make(map[id.MemberID]*models.Member),
		byEmail: make(map[string]id.MemberID),
	}
}

// CreateIfEmailAvailable assigns the next ID and stores member, or returns
// sentinel.ErrAlreadyUsed.
func (s *InMemory) CreateIfEmailAvailable(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[member.Email]; taken {
		return sentinel.ErrAlreadyUsed
	}
	s.nextID++
	member.ID = s.nextID

	s.members[member.ID] = member.Clone()
	s.byEmail[member.Email] = member.ID
	s.order = append(s.order, member.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, memberID id.MemberID) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.members[memberID]; ok {
		return m.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if memberID, ok := s.byEmail[email]; ok {
		return s.members[memberID].Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// Execute runs validate then mutate on the stored member under the write
// lock and returns a copy of the result.
func (s *InMemory) Execute(_ context.Context, memberID id.MemberID, validate func(*models.Member) error, mutate func(*models.Member)) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.members[memberID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	mutate(m)
	return m.Clone(), nil
}

// All yields copies of every member in registration order.
func (s *InMemory) All(_ context.Context) iter.Seq[*models.Member] {
	return func(yield func(*models.Member) bool) {
		s.mu.RLock()
		n := len(s.order)
		s.mu.RUnlock()

		for i := 0; i < n; i++ {
			s.mu.RLock()
			m := s.members[s.order[i]].Clone()
			s.mu.RUnlock()
			if !yield(m) {
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
