package service

import (
	"context"
	"errors"
	"iter"
	"log/slog"

	"libraria/internal/catalog/models"
	"libraria/internal/platform/metrics"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/platform/sentinel"
)

type Store interface {
	CreateIfISBNAvailable(ctx context.Context, book *models.Book) error
	FindByID(ctx context.Context, bookID id.BookID) (*models.Book, error)
	Execute(ctx context.Context, bookID id.BookID, validate func(*models.Book) error, mutate func(*models.Book)) (*models.Book, error)
	All(ctx context.Context) iter.Seq[models.Book]
	Count(ctx context.Context) int
}

// Service is the book catalog. It is the only writer of book availability;
// the lending workflow goes through AdjustAvailability.
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

// AddBook validates and registers a new title with all copies available.
func (s *Service) AddBook(ctx context.Context, title, author, isbn string, year, stock int) (*models.Book, error) {
	book, err := models.NewBook(title, author, isbn, year, stock)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateIfISBNAvailable(ctx, book); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Wrap(models.ErrDuplicateISBN, dErrors.CodeConflict, "a book with this ISBN already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add book")
	}

	s.logger.InfoContext(ctx, "book added",
		"book_id", book.ID,
		"isbn", book.ISBN,
		"stock", book.Stock,
	)
	s.metrics.IncrementBooksAdded()
	return book, nil
}

func (s *Service) GetBook(ctx context.Context, bookID id.BookID) (*models.Book, error) {
	book, err := s.store.FindByID(ctx, bookID)
	if err != nil {
		return nil, translateLookup(err)
	}
	return book, nil
}

// SearchByTitle lazily yields books whose title contains substring, ignoring
// case. An empty substring matches every book.
func (s *Service) SearchByTitle(ctx context.Context, substring string) iter.Seq[models.Book] {
	all := s.store.All(ctx)
	return func(yield func(models.Book) bool) {
		for b := range all {
			if !b.MatchesTitle(substring) {
				continue
			}
			if !yield(b) {
				return
			}
		}
	}
}

// AdjustAvailability moves the available count of a book by delta. The
// result must stay within [0, stock] or nothing changes.
func (s *Service) AdjustAvailability(ctx context.Context, bookID id.BookID, delta int) (*models.Book, error) {
	book, err := s.store.Execute(ctx, bookID,
		func(b *models.Book) error { return b.CanAdjust(delta) },
		func(b *models.Book) { b.ApplyAdjustment(delta) },
	)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAdjustment) {
			return nil, err
		}
		return nil, translateLookup(err)
	}
	return book, nil
}

func (s *Service) ListBooks(ctx context.Context) []models.Book {
	books := make([]models.Book, 0, s.store.Count(ctx))
	for b := range s.store.All(ctx) {
		books = append(books, b)
	}
	return books
}

func translateLookup(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(models.ErrBookNotFound, dErrors.CodeNotFound, "book not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load book")
}
