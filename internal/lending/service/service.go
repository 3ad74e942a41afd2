// Package service implements the lending workflow: borrow and return across
// the catalog and member directory, recorded in the transaction log.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	catalogModels "libraria/internal/catalog/models"
	"libraria/internal/lending/models"
	memberModels "libraria/internal/membership/models"
	"libraria/internal/platform/metrics"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/requestcontext"
)

const tracerName = "libraria/lending"

const (
	stepBookAvailability  = "book_availability"
	stepMemberBorrowedSet = "member_borrowed_set"
)

type Catalog interface {
	GetBook(ctx context.Context, bookID id.BookID) (*catalogModels.Book, error)
	AdjustAvailability(ctx context.Context, bookID id.BookID, delta int) (*catalogModels.Book, error)
	ListBooks(ctx context.Context) []catalogModels.Book
}

type Directory interface {
	GetMember(ctx context.Context, memberID id.MemberID) (*memberModels.Member, error)
	AddBorrowedBook(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*memberModels.Member, error)
	RemoveBorrowedBook(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*memberModels.Member, error)
	ListMembers(ctx context.Context) []*memberModels.Member
}

type TransactionLog interface {
	Append(ctx context.Context, memberID id.MemberID, bookID id.BookID, txType models.Type, status models.Status, at time.Time) (models.Transaction, error)
	List(ctx context.Context) []models.Transaction
	ListByMember(ctx context.Context, memberID id.MemberID) []models.Transaction
	Count(ctx context.Context) int
}

// Service is the only component that changes a book and a member together.
// Each borrow or return runs under the locks of its book and member, and any
// step that fails undoes the steps before it.
type Service struct {
	catalog Catalog
	members Directory
	log     TransactionLog
	tx      *shardedLendingTx
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
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

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// WithTxTimeout bounds how long a borrow or return may wait for the book and
// member locks before failing with a timeout code. It does not bound the work
// done once the locks are held.
func WithTxTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.tx.timeout = d
	}
}

func New(catalog Catalog, members Directory, log TransactionLog, opts ...Option) *Service {
	s := &Service{
		catalog: catalog,
		members: members,
		log:     log,
		tx:      newShardedLendingTx(),
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Borrow lends one copy of bookID to memberID and records an active borrow
// transaction.
func (s *Service) Borrow(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error) {
	return s.run(ctx, models.TypeBorrow, memberID, bookID, s.borrow)
}

// Return takes a copy of bookID back from memberID and records a completed
// return transaction.
func (s *Service) Return(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error) {
	return s.run(ctx, models.TypeReturn, memberID, bookID, s.returnBook)
}

type workflow func(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error)

func (s *Service) run(ctx context.Context, txType models.Type, memberID id.MemberID, bookID id.BookID, fn workflow) (*models.Transaction, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "lending."+string(txType), trace.WithAttributes(
		attribute.Int64("member_id", int64(memberID)),
		attribute.Int64("book_id", int64(bookID)),
	))
	defer span.End()

	var result *models.Transaction
	err := s.tx.RunInTx(ctx, memberID, bookID, func(ctx context.Context) error {
		var err error
		result, err = fn(ctx, memberID, bookID)
		return err
	})
	s.metrics.ObserveLending(string(txType), start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, dErrors.MessageOf(err))
		s.metrics.IncrementLendingOutcome(string(txType), outcome(err))
		s.logger.InfoContext(ctx, "lending request rejected",
			"type", txType,
			"member_id", memberID,
			"book_id", bookID,
			"error", err.Error(),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("transaction_id", int64(result.ID)))
	s.metrics.IncrementLendingOutcome(string(txType), "success")
	s.logger.InfoContext(ctx, "lending request completed",
		"type", txType,
		"member_id", memberID,
		"book_id", bookID,
		"transaction_id", result.ID,
	)
	return result, nil
}

func (s *Service) borrow(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error) {
	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	book, err := s.catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsAvailable() {
		return nil, dErrors.Wrap(models.ErrBookUnavailable, dErrors.CodeConflict, "book is not available for borrowing")
	}
	if member.HasBorrowed(bookID) {
		return nil, dErrors.Wrap(memberModels.ErrAlreadyBorrowed, dErrors.CodeConflict, "member already borrowed this book")
	}
	if member.BorrowedCount() >= models.BorrowLimit {
		return nil, dErrors.Wrap(models.ErrBorrowLimitReached, dErrors.CodeConflict, "member has reached the borrow limit of 3 books")
	}

	var comp compensations
	if _, err := s.catalog.AdjustAvailability(ctx, bookID, -1); err != nil {
		return nil, err
	}
	comp.push(stepBookAvailability, func(ctx context.Context) error {
		_, err := s.catalog.AdjustAvailability(ctx, bookID, 1)
		return err
	})

	if _, err := s.members.AddBorrowedBook(ctx, memberID, bookID); err != nil {
		return nil, comp.unwind(ctx, err, s.logger, s.metrics)
	}
	comp.push(stepMemberBorrowedSet, func(ctx context.Context) error {
		_, err := s.members.RemoveBorrowedBook(ctx, memberID, bookID)
		return err
	})

	tx, err := s.log.Append(ctx, memberID, bookID, models.TypeBorrow, models.StatusFor(models.TypeBorrow), requestcontext.Now(ctx))
	if err != nil {
		return nil, comp.unwind(ctx, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction"), s.logger, s.metrics)
	}
	return &tx, nil
}

func (s *Service) returnBook(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error) {
	member, err := s.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	if !member.HasBorrowed(bookID) {
		return nil, dErrors.Wrap(models.ErrNotBorrowedByMember, dErrors.CodeConflict, "member has not borrowed this book")
	}

	var comp compensations
	if _, err := s.catalog.AdjustAvailability(ctx, bookID, 1); err != nil {
		return nil, err
	}
	comp.push(stepBookAvailability, func(ctx context.Context) error {
		_, err := s.catalog.AdjustAvailability(ctx, bookID, -1)
		return err
	})

	if _, err := s.members.RemoveBorrowedBook(ctx, memberID, bookID); err != nil {
		return nil, comp.unwind(ctx, err, s.logger, s.metrics)
	}
	comp.push(stepMemberBorrowedSet, func(ctx context.Context) error {
		_, err := s.members.AddBorrowedBook(ctx, memberID, bookID)
		return err
	})

	tx, err := s.log.Append(ctx, memberID, bookID, models.TypeReturn, models.StatusFor(models.TypeReturn), requestcontext.Now(ctx))
	if err != nil {
		return nil, comp.unwind(ctx, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction"), s.logger, s.metrics)
	}
	return &tx, nil
}

// Statistics derives library totals. It reads each repository in turn and
// takes no locks of its own, so a concurrent borrow may land between reads.
func (s *Service) Statistics(ctx context.Context) models.Stats {
	var stats models.Stats
	for _, b := range s.catalog.ListBooks(ctx) {
		stats.TotalBooks += b.Stock
		stats.AvailableBooks += b.Available
		stats.BorrowedBooks += b.OnLoan()
	}

	members := s.members.ListMembers(ctx)
	stats.TotalMembers = len(members)
	for _, m := range members {
		if m.BorrowedCount() > 0 {
			stats.ActiveMembers++
		}
	}
	stats.TotalTransactions = s.log.Count(ctx)
	return stats
}

func (s *Service) History(ctx context.Context) []models.Transaction {
	return s.log.List(ctx)
}

// MemberHistory returns memberID's transactions, failing if the member is
// unknown.
func (s *Service) MemberHistory(ctx context.Context, memberID id.MemberID) ([]models.Transaction, error) {
	if _, err := s.members.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.log.ListByMember(ctx, memberID), nil
}

// outcome labels a rejected request for metrics.
func outcome(err error) string {
	switch {
	case errors.Is(err, memberModels.ErrMemberNotFound):
		return "member_not_found"
	case errors.Is(err, catalogModels.ErrBookNotFound):
		return "book_not_found"
	case errors.Is(err, models.ErrBookUnavailable):
		return "book_unavailable"
	case errors.Is(err, memberModels.ErrAlreadyBorrowed):
		return "already_borrowed"
	case errors.Is(err, models.ErrBorrowLimitReached):
		return "borrow_limit_reached"
	case errors.Is(err, models.ErrNotBorrowedByMember):
		return "not_borrowed"
	case errors.Is(err, catalogModels.ErrInvalidAdjustment):
		return "invalid_adjustment"
	default:
		return string(dErrors.CodeOf(err))
	}
}
