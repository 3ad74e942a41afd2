package service

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"strings"

	"libraria/internal/membership/models"
	"libraria/internal/platform/metrics"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/platform/sentinel"
	"libraria/pkg/requestcontext"
)

type Store interface {
	CreateIfEmailAvailable(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, memberID id.MemberID) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	Execute(ctx context.Context, memberID id.MemberID, validate func(*models.Member) error, mutate func(*models.Member)) (*models.Member, error)
	All(ctx context.Context) iter.Seq[*models.Member]
	Count(ctx context.Context) int
}

// Service is the member directory. Borrowed-set changes are only made on
// behalf of the lending workflow.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddMember registers a member, stamping RegisteredAt with the request time.
func (s *Service) AddMember(ctx context.Context, name, email, phone, address string) (*models.Member, error) {
	member, err := models.NewMember(name, email, phone, address, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateIfEmailAvailable(ctx, member); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Wrap(models.ErrDuplicateEmail, dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add member")
	}

	s.logger.InfoContext(ctx, "member registered",
		"member_id", member.ID,
	)
	s.metrics.IncrementMembersRegistered()
	return member, nil
}

func (s *Service) GetMember(ctx context.Context, memberID id.MemberID) (*models.Member, error) {
	member, err := s.store.FindByID(ctx, memberID)
	if err != nil {
		return nil, translateLookup(err)
	}
	return member, nil
}

// GetMemberByEmail looks a member up by email, trimmed the same way
// NewMember trims it before storing.
func (s *Service) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	member, err := s.store.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, translateLookup(err)
	}
	return member, nil
}

// AddBorrowedBook appends bookID to the member's borrowed list. It does not
// enforce the borrowing cap; that is a lending rule.
func (s *Service) AddBorrowedBook(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Member, error) {
	member, err := s.store.Execute(ctx, memberID,
		func(m *models.Member) error { return m.CanAddBorrowed(bookID) },
		func(m *models.Member) { m.ApplyAddBorrowed(bookID) },
	)
	if err != nil {
		if errors.Is(err, models.ErrAlreadyBorrowed) {
			return nil, err
		}
		return nil, translateLookup(err)
	}
	return member, nil
}

// RemoveBorrowedBook drops bookID from the member's borrowed list.
func (s *Service) RemoveBorrowedBook(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Member, error) {
	member, err := s.store.Execute(ctx, memberID,
		func(m *models.Member) error { return m.CanRemoveBorrowed(bookID) },
		func(m *models.Member) { m.ApplyRemoveBorrowed(bookID) },
	)
	if err != nil {
		if errors.Is(err, models.ErrNotBorrowed) {
			return nil, err
		}
		return nil, translateLookup(err)
	}
	return member, nil
}

func (s *Service) ListMembers(ctx context.Context) []*models.Member {
	members := make([]*models.Member, 0, s.store.Count(ctx))
	for m := range s.store.All(ctx) {
		members = append(members, m)
	}
	return members
}

func translateLookup(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(models.ErrMemberNotFound, dErrors.CodeNotFound, "member not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load member")
}
