package request

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/request"
)

type Handler struct {
	svc *request.Service
}

func NewHandler(svc *request.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.inbox)
	r.Post("/{id}/forward", h.forward)
	r.Post("/{id}/decline", h.decline)
}

// PublicRoutes accept visitor submissions without a session.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Post("/", h.create)
}

type createRequest struct {
	ProfileOwnerID uuid.UUID `json:"profile_owner_id"`
	PartnerUserID  uuid.UUID `json:"partner_user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Message        string    `json:"message,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rr, err := h.svc.Create(r.Context(), req.ProfileOwnerID, req.PartnerUserID, request.Requester{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rr)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) inbox(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	rows, err := h.svc.Inbox(r.Context(), actor.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(rows)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Forward)
}

func (h *Handler) decline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.Decline)
}

type decisionFunc func(ctx context.Context, actor identity.Actor, id uuid.UUID) (*request.ReferralRequest, error)

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, apply decisionFunc) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rr, err := apply(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rr)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, request.ErrNotFound), errors.Is(err, party.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, request.ErrMissingRequester),
		errors.Is(err, request.ErrSamePartner),
		errors.Is(err, referral.ErrMissingClient),
		errors.Is(err, referral.ErrSelfReferral):
		http.Error(w, err.Error(), http.StatusBadRequest)
	// Forward surfaces routing errors: a request can name a partner the
	// owner never accepted, since create does not check the partnership.
	case errors.Is(err, request.ErrNotOwner),
		errors.Is(err, referral.ErrNotPartnered):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, request.ErrNotPending):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
