package request

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamzaalie/spotlight-circle-sub000/internal/identity"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/notify"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/party"
	"github.com/hamzaalie/spotlight-circle-sub000/internal/referral"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=request
type Repository interface {
	CreateRequest(ctx context.Context, r *ReferralRequest) error
	GetRequest(ctx context.Context, id uuid.UUID) (*ReferralRequest, error)
	MarkForwarded(ctx context.Context, id uuid.UUID, at time.Time) (*ReferralRequest, error)
	MarkDeclined(ctx context.Context, id uuid.UUID) (*ReferralRequest, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ReferralRequest, error)
	ExpirePending(ctx context.Context, olderThan time.Time) (int64, error)
}

// ReferralSender bridges forwarded requests into the routing engine. Keeping
// it an interface lets the forwarder be tested without the router's
// partnership machinery.
type ReferralSender interface {
	Send(ctx context.Context, actor identity.Actor, client referral.Client, receiverIDs []uuid.UUID) ([]*referral.Referral, error)
}

// Directory resolves parties for validation and notification payloads.
type Directory interface {
	Get(ctx context.Context, id uuid.UUID) (*party.Party, error)
}

type Service struct {
	repo       Repository
	sender     ReferralSender
	directory  Directory
	dispatcher notify.Dispatcher
	mailer     *notify.Mailer
}

func NewService(repo Repository, sender ReferralSender, directory Directory, dispatcher notify.Dispatcher, mailer *notify.Mailer) *Service {
	return &Service{
		repo:       repo,
		sender:     sender,
		directory:  directory,
		dispatcher: dispatcher,
		mailer:     mailer,
	}
}

type Requester struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Create records a visitor's introduction request against a profile owner and
// one of the owner's listed partners. No authentication is required; the
// owner decides later whether to forward.
func (s *Service) Create(ctx context.Context, profileOwnerID, partnerUserID uuid.UUID, requester Requester) (*ReferralRequest, error) {
	requester.Name = strings.TrimSpace(requester.Name)
	requester.Email = party.NormalizeEmail(requester.Email)

	if requester.Name == "" || requester.Email == "" {
		return nil, ErrMissingRequester
	}

	if profileOwnerID == partnerUserID {
		return nil, ErrSamePartner
	}

	owner, err := s.directory.Get(ctx, profileOwnerID)
	if err != nil {
		return nil, fmt.Errorf("resolving profile owner: %w", err)
	}

	if _, err := s.directory.Get(ctx, partnerUserID); err != nil {
		return nil, fmt.Errorf("resolving partner: %w", err)
	}

	r := &ReferralRequest{
		ProfileOwnerID:   profileOwnerID,
		PartnerUserID:    partnerUserID,
		RequesterName:    requester.Name,
		RequesterEmail:   requester.Email,
		RequesterPhone:   strings.TrimSpace(requester.Phone),
		RequesterMessage: strings.TrimSpace(requester.Message),
		Status:           StatusPending,
	}

	if err := s.repo.CreateRequest(ctx, r); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	msg := s.mailer.RequestReceived(owner.Email, r.RequesterName, r.ID)
	if _, err := s.dispatcher.Send(ctx, msg); err != nil {
		slog.Warn("failed to send request-received email",
			"request_id", r.ID, "error", err)
	}

	return r, nil
}

// Forward turns a pending request into exactly one referral addressed to the
// request's partner, then stamps the request forwarded. The referral is
// routed first: a forwarded stamp without a referral would break the
// pipeline, while a routed referral on a still-pending request is visible and
// recoverable.
func (s *Service) Forward(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ReferralRequest, error) {
	r, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.ProfileOwnerID != actor.ID {
		return nil, ErrNotOwner
	}

	if r.Status != StatusPending {
		return nil, ErrNotPending
	}

	client := referral.Client{
		Name:  r.RequesterName,
		Email: r.RequesterEmail,
		Phone: r.RequesterPhone,
		Notes: r.RequesterMessage,
	}

	if _, err := s.sender.Send(ctx, actor, client, []uuid.UUID{r.PartnerUserID}); err != nil {
		return nil, fmt.Errorf("routing forwarded request: %w", err)
	}

	updated, err := s.repo.MarkForwarded(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("mark forwarded: %w", err)
	}

	return updated, nil
}

// Decline ends a pending request without routing anything.
func (s *Service) Decline(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ReferralRequest, error) {
	r, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.ProfileOwnerID != actor.ID {
		return nil, ErrNotOwner
	}

	if r.Status != StatusPending {
		return nil, ErrNotPending
	}

	updated, err := s.repo.MarkDeclined(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark declined: %w", err)
	}

	return updated, nil
}

// Inbox lists the owner's requests, newest first.
func (s *Service) Inbox(ctx context.Context, ownerID uuid.UUID) ([]*ReferralRequest, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// ExpireStale moves pending requests older than the given age to expired.
// Invoked by the operator sweep, never by the core itself.
func (s *Service) ExpireStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	n, err := s.repo.ExpirePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire pending requests: %w", err)
	}

	return n, nil
}
