package referral

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
)

type Handler struct {
	svc *referral.Service
}

func NewHandler(svc *referral.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.send)
	r.Get("/", h.list)
	r.Patch("/{id}/status", h.updateStatus)
}

type sendRequest struct {
	ReceiverIDs []uuid.UUID `json:"receiver_ids"`
	Client      struct {
		Name  string `json:"name"`
		Email string `json:"email,omitempty"`
		Phone string `json:"phone,omitempty"`
		Notes string `json:"notes,omitempty"`
	} `json:"client"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	refs, err := h.svc.Send(r.Context(), actor, referral.Client{
		Name:  req.Client.Name,
		Email: req.Client.Email,
		Phone: req.Client.Phone,
		Notes: req.Client.Notes,
	}, req.ReceiverIDs)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponseList(refs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var (
		refs []*referral.Referral
		err  error
	)

	switch direction := r.URL.Query().Get("direction"); direction {
	case "", "received":
		refs, err = h.svc.Received(r.Context(), actor.ID)
	case "sent":
		refs, err = h.svc.Sent(r.Context(), actor.ID)
	default:
		http.Error(w, "direction must be sent or received", http.StatusBadRequest)
		return
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(refs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateStatusRequest struct {
	Status referral.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref, err := h.svc.UpdateStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ref)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, referral.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, referral.ErrMissingClient),
		errors.Is(err, referral.ErrNoReceivers),
		errors.Is(err, referral.ErrSelfReferral),
		errors.Is(err, referral.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, referral.ErrNotPartnered),
		errors.Is(err, referral.ErrNotParticipant):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
