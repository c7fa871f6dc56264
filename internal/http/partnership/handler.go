package partnership

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/importer"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/partnership"
)

type Handler struct {
	svc       *partnership.Service
	importSvc *importer.Service
}

func NewHandler(svc *partnership.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.invite)
	r.Post("/import", h.importContacts)
	r.Get("/", h.partners)
	r.Get("/pending", h.pending)
	r.Post("/{id}/respond", h.respond)
}

// PublicRoutes are reachable without a session.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/{id}", h.get)
}

type inviteRequest struct {
	Email    string `json:"email"`
	Category string `json:"category"`
	Notes    string `json:"notes,omitempty"`
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Invite(r.Context(), actor, partnership.InviteParams{
		TargetEmail: req.Email,
		Category:    req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toInviteResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) importContacts(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := h.importSvc.Import(r.Context(), actor, file)
	if err != nil {
		if errors.Is(err, importer.ErrNoHeader) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toImportResponse(report)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) partners(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	partners, err := h.svc.Partners(r.Context(), actor.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPartnerList(partners)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	direction := partnership.Direction(r.URL.Query().Get("direction"))
	if direction == "" {
		direction = partnership.DirectionReceived
	}

	rows, err := h.svc.Pending(r.Context(), actor, direction)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(rows)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type respondRequest struct {
	Decision partnership.Status `json:"decision"`
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
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

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Respond(r.Context(), actor, id, req.Decision)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, partnership.ErrNotFound) {
			http.Error(w, "partnership not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain sentinels to status codes. Anything unmapped is an
// internal error with no detail leaked.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, partnership.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, partnership.ErrInvalidEmail),
		errors.Is(err, partnership.ErrSelfInvite),
		errors.Is(err, partnership.ErrInvalidDecision):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, partnership.ErrNotParticipant):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, partnership.ErrDuplicatePending),
		errors.Is(err, partnership.ErrDuplicateActive),
		errors.Is(err, partnership.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
