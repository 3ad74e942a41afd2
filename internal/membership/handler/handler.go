package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"libraria/internal/membership/models"
	"libraria/internal/platform/middleware"
	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
	"libraria/pkg/platform/httputil"
)

// Service defines the member directory operations the handler needs.
type Service interface {
	AddMember(ctx context.Context, name, email, phone, address string) (*models.Member, error)
	GetMember(ctx context.Context, memberID id.MemberID) (*models.Member, error)
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	ListMembers(ctx context.Context) []*models.Member
}

// Handler serves the /members endpoints.
type Handler struct {
	members Service
	logger  *slog.Logger
}

func New(members Service, logger *slog.Logger) *Handler {
	return &Handler{members: members, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/members", h.handleAddMember)
	r.Get("/members", h.handleListMembers)
	r.Get("/members/{id}", h.handleGetMember)
}

type AddMemberRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type MemberResponse struct {
	httputil.Result
	Member *models.Member `json:"member,omitempty"`
}

type MemberListResponse struct {
	Members []*models.Member `json:"members"`
	Total   int              `json:"total"`
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddMemberRequest
	if err := httputil.DecodeJSON(r.Body, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid add member request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	member, err := h.members.AddMember(ctx, req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		h.logFailure(ctx, "failed to add member", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, MemberResponse{
		Result: httputil.OK("member added"),
		Member: member,
	})
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	memberID, err := id.ParseMemberID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	member, err := h.members.GetMember(ctx, memberID)
	if err != nil {
		h.logFailure(ctx, "failed to get member", err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, MemberResponse{
		Result: httputil.OK("member found"),
		Member: member,
	})
}

// handleListMembers lists the directory, or looks up one member by ?email=.
func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if email := r.URL.Query().Get("email"); email != "" {
		member, err := h.members.GetMemberByEmail(ctx, email)
		if err != nil {
			h.logFailure(ctx, "failed to find member by email", err)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, MemberResponse{
			Result: httputil.OK("member found"),
			Member: member,
		})
		return
	}

	members := h.members.ListMembers(ctx)
	httputil.WriteJSON(w, http.StatusOK, MemberListResponse{Members: members, Total: len(members)})
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
