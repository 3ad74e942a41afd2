package handler

import (
	"context"
	"iter"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libraria/internal/catalog/models"
	"libraria/internal/platform/middleware"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/platform/httputil"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	AddBook(ctx context.Context, title, author, isbn string, year, stock int) (*models.Book, error)
	GetBook(ctx context.Context, bookID id.BookID) (*models.Book, error)
	SearchByTitle(ctx context.Context, substring string) iter.Seq[models.Book]
	ListBooks(ctx context.Context) []models.Book
}

// Handler serves the /books endpoints.
type Handler struct {
	catalog Service
	logger  *slog.Logger
}

func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/books", h.handleAddBook)
	r.Get("/books", h.handleListBooks)
	r.Get("/books/{id}", h.handleGetBook)
}

type AddBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
	Year   int    `json:"year"`
	Stock  int    `json:"stock"`
}

type BookResponse struct {
	httputil.Result
	Book *models.Book `json:"book,omitempty"`
}

type BookListResponse struct {
	Books []models.Book `json:"books"`
	Total int           `json:"total"`
}

func (h *Handler) handleAddBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req AddBookRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid add book request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	book, err := h.catalog.AddBook(ctx, req.Title, req.Author, req.ISBN, req.Year, req.Stock)
	if err != nil {
		h.logFailure(ctx, "failed to add book", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, BookResponse{
		Result: httputil.OK("book added"),
		Book:   book,
	})
}

func (h *Handler) handleGetBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID, err := id.ParseBookID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	book, err := h.catalog.GetBook(ctx, bookID)
	if err != nil {
		h.logFailure(ctx, "failed to get book", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, BookResponse{
		Result: httputil.OK("book found"),
		Book:   book,
	})
}

// handleListBooks lists the catalog, or searches it when ?title= is present.
func (h *Handler) handleListBooks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var books []models.Book
	if r.URL.Query().Has("title") {
		books = []models.Book{}
		for b := range h.catalog.SearchByTitle(ctx, r.URL.Query().Get("title")) {
			books = append(books, b)
		}
	} else {
		books = h.catalog.ListBooks(ctx)
	}

	httputil.WriteJSON(w, http.StatusOK, BookListResponse{Books: books, Total: len(books)})
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error) {
	level := slog.LevelWarn
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
