package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libraria/internal/lending/models"
	"libraria/internal/platform/middleware"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/platform/httputil"
)

// Service defines the lending workflow operations the handler needs.
type Service interface {
	Borrow(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error)
	Return(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error)
	Statistics(ctx context.Context) models.Stats
	History(ctx context.Context) []models.Transaction
	MemberHistory(ctx context.Context, memberID id.MemberID) ([]models.Transaction, error)
}

// Handler serves loans, the transaction log and library statistics.
type Handler struct {
	lending Service
	logger  *slog.Logger
}

func New(lending Service, logger *slog.Logger) *Handler {
	return &Handler{lending: lending, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/loans/borrow", h.handleBorrow)
	r.Post("/loans/return", h.handleReturn)
	r.Get("/transactions", h.handleHistory)
	r.Get("/members/{id}/transactions", h.handleMemberHistory)
	r.Get("/stats", h.handleStatistics)
}

type LoanRequest struct {
	MemberID id.MemberID `json:"member_id"`
	BookID   id.BookID   `json:"book_id"`
}

// Validate rejects missing or non-positive identifiers.
func (r *LoanRequest) Validate() error {
	if r.MemberID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "member_id is required")
	}
	if r.BookID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "book_id is required")
	}
	return nil
}

type TransactionResponse struct {
	httputil.Result
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
}

type StatsResponse struct {
	Stats models.Stats `json:"stats"`
}

func (h *Handler) handleBorrow(w http.ResponseWriter, r *http.Request) {
	h.handleLoan(w, r, h.lending.Borrow, "book borrowed")
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	h.handleLoan(w, r, h.lending.Return, "book returned")
}

type loanFunc func(ctx context.Context, memberID id.MemberID, bookID id.BookID) (*models.Transaction, error)

func (h *Handler) handleLoan(w http.ResponseWriter, r *http.Request, fn loanFunc, message string) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req LoanRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid loan request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	tx, err := fn(ctx, req.MemberID, req.BookID)
	if err != nil {
		level := slog.LevelWarn
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, "loan request failed",
			"request_id", requestID,
			"member_id", req.MemberID,
			"book_id", req.BookID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, TransactionResponse{
		Result:      httputil.OK(message),
		Transaction: tx,
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	txs := h.lending.History(r.Context())
	httputil.WriteJSON(w, http.StatusOK, TransactionListResponse{Transactions: txs, Total: len(txs)})
}

func (h *Handler) handleMemberHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, err := id.ParseMemberID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	txs, err := h.lending.MemberHistory(ctx, memberID)
	if err != nil {
		h.logger.WarnContext(ctx, "member history failed",
			"request_id", middleware.GetRequestID(ctx),
			"member_id", memberID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TransactionListResponse{Transactions: txs, Total: len(txs)})
}

func (h *Handler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatsResponse{Stats: h.lending.Statistics(r.Context())})
}
